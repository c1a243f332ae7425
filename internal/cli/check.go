package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/typeview/typeview/internal/checker"
	"github.com/typeview/typeview/internal/model"
	"github.com/typeview/typeview/internal/report"
	"golang.org/x/term"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Scan and print a report (non-interactive)",
	Long: `Run the type checker and print the diagnostics as a table or JSON.
Useful for CI, pre-commit hooks, and piping into other tools.

Exit codes:
  0 — clean, no problems found
  1 — warnings or notes found
  2 — errors found`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringP("format", "f", "text", "output format: text, json")
	checkCmd.Flags().Bool("changed", false, "scan only files changed since HEAD")
	checkCmd.Flags().Bool("no-progress", false, "suppress the progress bar")
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := scanRoot(args)

	cfg, err := resolveConfig(cmd, root)
	if err != nil {
		return err
	}

	changedOnly, _ := cmd.Flags().GetBool("changed")
	targets, err := collectFiles(root, cfg, changedOnly)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Println("No Python files to check.")
		return nil
	}

	noProgress, _ := cmd.Flags().GetBool("no-progress")
	var fn checker.ProgressFunc
	var bar *progressbar.ProgressBar
	if showProgress(noProgress) {
		fn = func(done, total int) {
			if bar == nil {
				bar = progressBar(total)
			}
			_ = bar.Set(done)
		}
	}

	r := checker.New(checker.Options{
		Command: cfg.Checker,
		Args:    cfg.Args,
		Batch:   cfg.Batch,
	})
	results, err := r.Run(context.Background(), targets, fn)
	if bar != nil {
		_ = bar.Clear()
	}
	if err != nil {
		return errors.New(checker.FriendlyMessage(err))
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		if err := report.WriteJSON(os.Stdout, results); err != nil {
			return err
		}
	case "text":
		if err := report.WriteTable(os.Stdout, results); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	if worst, ok := results.Worst(); ok {
		if worst == model.SeverityError {
			os.Exit(2)
		}
		os.Exit(1)
	}
	return nil
}

// showProgress reports whether the scan should draw a progress bar:
// only when stderr is a terminal and --no-progress was not given.
func showProgress(noProgress bool) bool {
	if noProgress {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// progressBar writes to stderr so the report stays pipeable.
func progressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetDescription("checking"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
