package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/benvon/quest-planner/internal/app"
	"github.com/benvon/quest-planner/internal/models"
)

// NewPlanCmd prints today's plan and the smart context
func NewPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show today's plan, the priority matrix and suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				plan := a.Planner.Plan(ctx)
				return output(cmd, plan, func(w io.Writer) {
					section := func(name string, tasks []models.Task) {
						fmt.Fprintf(w, "%s (%d)\n", name, len(tasks))
						for _, t := range tasks {
							fmt.Fprintf(w, "  [%s]\t%d xp\t%s\n", check(t.Completed), t.XP, t.Title)
						}
					}
					section("Today", plan.Today)
					section("Backlog", plan.Backlog)
					section("Do now", plan.Matrix.DoNow)
					section("Schedule", plan.Matrix.Schedule)
					section("Delegate", plan.Matrix.Delegate)
					section("Drop", plan.Matrix.Drop)

					c := plan.Context
					fmt.Fprintf(w, "\n%s, %s energy (%d completions in the last day)\n", c.TimeOfDay, c.Energy, c.Completions)
					for _, s := range c.Suggestions {
						fmt.Fprintf(w, "  try:\t%d xp\t%s\n", s.XP, s.Title)
					}
				})
			})
		},
	}
}

// NewResetCmd clears all planner data and backups
func NewResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data including backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all data without --yes")
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Planner.ClearAll(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All data cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting everything")
	return cmd
}
