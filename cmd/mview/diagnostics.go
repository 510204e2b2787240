package main

import (
	"os"

	"github.com/spf13/cobra"

	"mview/internal/diag"
	"mview/internal/diagfmt"
	"mview/internal/source"
)

// reportBag pretty-prints any collected diagnostics to stderr.
func reportBag(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
		ShowFixes: true,
	}
	diagfmt.Pretty(os.Stderr, bag, fs, opts)
}
