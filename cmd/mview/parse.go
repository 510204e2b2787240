package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mview/internal/ast"
	"mview/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.mv",
	Short: "Parse a view file and output its tree",
	Long:  `Parse analyzes a view file and prints the canonical form or the raw tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(filePath, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	reportBag(cmd, result.Bag, result.FileSet)
	if result.Bag.HasErrors() {
		return fmt.Errorf("parse: %s has errors", filePath)
	}

	switch format {
	case "pretty":
		_, err = os.Stdout.WriteString(ast.Print(result.Doc))
		return err
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Doc)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
