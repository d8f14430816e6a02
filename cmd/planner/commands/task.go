package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/benvon/quest-planner/internal/app"
	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/planner"
	"github.com/benvon/quest-planner/internal/store"
	"github.com/benvon/quest-planner/internal/validation"
)

// NewTaskCmd creates the task command with its subcommands
func NewTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskCompleteCmd())
	cmd.AddCommand(newTaskDeleteCmd())
	cmd.AddCommand(newTaskClearCmd())
	cmd.AddCommand(newTaskTemplateCmd())
	return cmd
}

func printTasks(cmd *cobra.Command, tasks []models.Task) error {
	return output(cmd, tasks, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tDONE\tXP\tFLAGS\tCATEGORY\tTITLE")
		for _, t := range tasks {
			flags := ""
			if t.Important {
				flags += "!"
			}
			if t.Urgent {
				flags += "u"
			}
			fmt.Fprintf(w, "%s\t[%s]\t%d\t%s\t%s\t%s\n", t.ID, check(t.Completed), t.XP, flags, t.Category, t.Title)
		}
	})
}

func newTaskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return printTasks(cmd, a.Planner.Tasks(ctx))
			})
		},
	}
}

func newTaskAddCmd() *cobra.Command {
	var (
		xp        int
		category  string
		important bool
		urgent    bool
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateTaskCategory(category); err != nil {
				return err
			}
			title := validation.SanitizeText(strings.Join(args, " "))
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				task, ok, err := a.Planner.AddTask(ctx, store.NewTask{
					Title:     title,
					XP:        xp,
					Category:  models.TaskCategory(category),
					Important: important,
					Urgent:    urgent,
				})
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("title cannot be empty")
				}
				return printTasks(cmd, []models.Task{task})
			})
		},
	}
	cmd.Flags().IntVar(&xp, "xp", models.DefaultTaskXP, "XP awarded on completion")
	cmd.Flags().StringVar(&category, "category", "", "General, Health, Work, Learning or Routine")
	cmd.Flags().BoolVar(&important, "important", false, "Mark the task important")
	cmd.Flags().BoolVar(&urgent, "urgent", false, "Mark the task urgent")
	return cmd
}

func newTaskCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete a task and collect its xp",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				res, err := a.Planner.CompleteTask(ctx, id)
				if err != nil {
					return err
				}
				return output(cmd, res, func(w io.Writer) {
					fmt.Fprintf(w, "Completed %q: +%d xp\n", res.Task.Title, res.XPAwarded)
					for _, up := range res.LevelUps {
						fmt.Fprintf(w, "Level up! %d -> %d\n", up.From, up.To)
					}
				})
			})
		},
	}
}

func newTaskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id: %w", err)
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.Planner.DeleteTask(ctx, id)
			})
		},
	}
}

func newTaskClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove completed tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				n, err := a.Planner.ClearCompleted(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d completed tasks\n", n)
				return nil
			})
		},
	}
}

func newTaskTemplateCmd() *cobra.Command {
	ids := make([]string, 0, 3)
	for _, t := range planner.Templates() {
		ids = append(ids, t.ID)
	}
	return &cobra.Command{
		Use:       "template <id>",
		Short:     "Add the tasks of a routine template",
		Long:      "Templates: " + strings.Join(ids, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: ids,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				added, err := a.Planner.ApplyTemplate(ctx, args[0])
				if err != nil {
					return err
				}
				return printTasks(cmd, added)
			})
		},
	}
}
