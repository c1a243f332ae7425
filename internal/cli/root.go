// Package cli wires the typeview commands together.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/typeview/typeview/internal/config"
	"github.com/typeview/typeview/internal/files"
)

var rootCmd = &cobra.Command{
	Use:   "typeview",
	Short: "Terminal results viewer for Python type checkers",
	Long: `typeview runs a Python type checker (mypy by default) over a project
and presents the diagnostics in a navigable file → problem tree, with
severity toggles and jump-to-editor navigation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(reviewCmd, checkCmd, versionCmd)

	rootCmd.PersistentFlags().String("checker", "", `checker executable (default "mypy")`)
	rootCmd.PersistentFlags().StringSlice("checker-arg", nil, "extra argument passed to the checker (repeatable)")
	rootCmd.PersistentFlags().String("config", "", "path to a configuration file")
}

// Execute runs the root command, printing any error to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// scanRoot resolves the optional positional path argument.
func scanRoot(args []string) string {
	if len(args) == 1 && args[0] != "" {
		return args[0]
	}
	return "."
}

// resolveConfig loads the configuration for root and layers the
// persistent flags on top of it.
func resolveConfig(cmd *cobra.Command, root string) (config.Config, error) {
	var cfg config.Config
	var err error

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, _, err = config.Discover(root)
	}
	if err != nil {
		return cfg, err
	}

	if c, _ := cmd.Flags().GetString("checker"); c != "" {
		cfg.Checker = c
	}
	if extra, _ := cmd.Flags().GetStringSlice("checker-arg"); len(extra) > 0 {
		cfg.Args = append(cfg.Args, extra...)
	}
	return cfg, nil
}

// collectFiles lists the Python sources to check. Paths are returned
// relative to the current directory so checker output, the results
// tree, and editor navigation all agree on them.
func collectFiles(root string, cfg config.Config, changedOnly bool) ([]string, error) {
	var targets []string
	var err error

	if changedOnly {
		targets, err = files.Changed(root)
	} else {
		targets, err = files.Discover(files.Options{
			Root:    root,
			Include: cfg.Include,
			Exclude: cfg.Exclude,
		})
	}
	if err != nil {
		return nil, err
	}

	if root != "." {
		for i := range targets {
			targets[i] = filepath.Join(root, targets[i])
		}
	}
	return targets, nil
}
