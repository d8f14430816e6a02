// Package commands implements the planner CLI subcommands.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benvon/quest-planner/internal/app"
	"github.com/benvon/quest-planner/internal/config"
	"github.com/benvon/quest-planner/internal/logger"
)

var (
	jsonOutput bool
	verbose    bool
)

// AddGlobalFlags registers flags shared by every subcommand
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log planner events to stderr")
}

// withApp loads configuration, opens storage and runs fn with a ready planner
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := zap.NewNop()
	if verbose {
		if log, err = logger.NewDevelopmentLogger(true); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() {
			_ = logger.Sync(log)
		}()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()
	return fn(ctx, a)
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// output prints v as JSON when --json is set, otherwise calls text
func output(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), v)
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

func check(done bool) string {
	if done {
		return "x"
	}
	return " "
}
