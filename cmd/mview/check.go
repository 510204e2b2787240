package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mview/internal/diagfmt"
	"mview/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.mv|directory]",
	Short: "Run the full pipeline without writing output",
	Long: `Check lexes, parses, validates, and lowers .mv files, reporting every
diagnostic but never touching the filesystem.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	opts, views, err := expandOptions(cmd, maxDiagnostics)
	if err != nil {
		return err
	}

	path := views
	if len(args) == 1 {
		path = args[0]
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if !st.IsDir() {
		res, err := driver.Expand(path, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		if err := renderCheck(cmd, format, res, res.File.Path, quiet); err != nil {
			return err
		}
		if res.Bag.HasErrors() {
			return fmt.Errorf("check: %s has errors", path)
		}
		return nil
	}

	_, results, err := driver.ExpandDir(cmd.Context(), path, opts, jobs)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	var failed int
	for _, r := range results {
		if r.LoadErr != nil {
			failed++
			fmt.Fprintf(os.Stderr, "check: %s: %v\n", r.Path, r.LoadErr)
			continue
		}
		res := r.Result
		if err := renderCheck(cmd, format, res, r.Path, quiet); err != nil {
			return err
		}
		if res.Bag.HasErrors() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("check: %d of %d files failed", failed, len(results))
	}
	return nil
}

func renderCheck(cmd *cobra.Command, format string, res *driver.ExpandResult, path string, quiet bool) error {
	switch format {
	case "pretty":
		reportBag(cmd, res.Bag, res.FileSet)
		if !quiet && !res.Bag.HasErrors() {
			fmt.Fprintf(os.Stdout, "%s: ok\n", path)
		}
		return nil
	case "json":
		return diagfmt.JSON(os.Stdout, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	}
	return fmt.Errorf("unknown format: %s", format)
}
