package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/typeview/typeview/internal/checker"
	"github.com/typeview/typeview/internal/model"
	"github.com/typeview/typeview/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review [path]",
	Short: "Open the interactive results panel",
	Long: `Scan a project and browse the diagnostics in an interactive tree.
Problems are grouped per file; toggle severities with e/w/n, press
enter on a problem to open it in your editor, and r to rescan.

Examples:
  typeview review                  # scan the current directory
  typeview review services/api     # scan a subtree
  typeview review --changed        # scan only files changed since HEAD`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().Bool("changed", false, "scan only files changed since HEAD")
	reviewCmd.Flags().String("editor", "", "editor used to open problems (defaults to $EDITOR)")
}

func runReview(cmd *cobra.Command, args []string) error {
	root := scanRoot(args)

	cfg, err := resolveConfig(cmd, root)
	if err != nil {
		return err
	}

	changedOnly, _ := cmd.Flags().GetBool("changed")
	editor, _ := cmd.Flags().GetString("editor")
	if editor == "" {
		editor = cfg.Editor
	}

	// File discovery happens inside the scan function so a rescan
	// picks up files added or removed since the panel opened.
	scan := func(fn checker.ProgressFunc) (model.Results, error) {
		targets, err := collectFiles(root, cfg, changedOnly)
		if err != nil {
			return nil, err
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("no Python files found under %s", root)
		}
		r := checker.New(checker.Options{
			Command: cfg.Checker,
			Args:    cfg.Args,
			Batch:   cfg.Batch,
		})
		return r.Run(context.Background(), targets, fn)
	}

	return tui.Run(tui.Options{
		Title:  root,
		Scan:   scan,
		Editor: editor,
	})
}
