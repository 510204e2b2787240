package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mview/internal/codegen"
	"mview/internal/driver"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] [file.mv|directory]",
	Short: "Expand .mv view files into generated Go source",
	Long: `Expand compiles .mv markup into .mv.go files next to their sources.
With no argument the views directory from mview.toml is expanded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().String("target", "", "lowering target (named|generic), overrides mview.toml")
	expandCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	expandCmd.Flags().Bool("stdout", false, "print generated code to stdout instead of writing files")
}

func runExpand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

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
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
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
			return fmt.Errorf("expansion failed: %w", err)
		}
		reportBag(cmd, res.Bag, res.FileSet)
		if res.Bag.HasErrors() {
			return fmt.Errorf("expand: %s has errors", path)
		}
		return writeExpanded(res, toStdout, quiet)
	}

	if toStdout {
		return fmt.Errorf("expand: --stdout is only supported for single files")
	}

	fileSet, results, err := driver.ExpandDir(cmd.Context(), path, opts, jobs)
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	var failed int
	for _, r := range results {
		if r.LoadErr != nil {
			failed++
			fmt.Fprintf(os.Stderr, "expand: %s: %v\n", r.Path, r.LoadErr)
			continue
		}
		reportBag(cmd, r.Result.Bag, fileSet)
		if r.Result.Bag.HasErrors() {
			failed++
			continue
		}
		if err := writeExpanded(r.Result, false, quiet); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("expand: %d of %d files failed", failed, len(results))
	}
	return nil
}

// expandOptions builds the driver options from mview.toml in the working
// directory, letting the --target flag win over the manifest.
func expandOptions(cmd *cobra.Command, maxDiagnostics int) (driver.ExpandOptions, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return driver.ExpandOptions{}, "", err
	}
	manifest, err := driver.LoadManifest(wd)
	if err != nil {
		return driver.ExpandOptions{}, "", err
	}

	target, err := manifest.TargetFor()
	if err != nil {
		return driver.ExpandOptions{}, "", err
	}
	if flagTarget, _ := cmd.Flags().GetString("target"); flagTarget != "" {
		switch flagTarget {
		case "named":
			target = codegen.TargetNamed
		case "generic":
			target = codegen.TargetGeneric
		default:
			return driver.ExpandOptions{}, "", fmt.Errorf("unknown target %q (must be named or generic)", flagTarget)
		}
	}

	opts := driver.ExpandOptions{
		MaxDiagnostics: maxDiagnostics,
		Target:         target,
		Package:        manifest.Project.Package,
	}
	return opts, manifest.Project.Views, nil
}

func writeExpanded(res *driver.ExpandResult, toStdout, quiet bool) error {
	if toStdout {
		_, err := os.Stdout.Write(res.Code)
		return err
	}
	if err := os.WriteFile(res.OutPath, res.Code, 0o644); err != nil {
		return fmt.Errorf("expand: write %s: %w", res.OutPath, err)
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "%s -> %s\n", res.File.Path, res.OutPath)
	}
	return nil
}
