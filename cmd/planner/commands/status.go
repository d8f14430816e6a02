package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/benvon/quest-planner/internal/app"
)

// NewStatusCmd prints the profile summary
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, xp and skill points",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				p := a.Planner.Profile(ctx)
				return output(cmd, p, func(w io.Writer) {
					fmt.Fprintf(w, "Level:\t%d\n", p.Level)
					fmt.Fprintf(w, "XP:\t%d / %d (%d to go)\n", p.XP, p.XPForNextLevel, p.XPRemaining)
					fmt.Fprintf(w, "Skill points:\t%d\n", p.SkillPoints)
					fmt.Fprintf(w, "Tasks completed:\t%d\n", p.TasksCompleted)
					fmt.Fprintf(w, "Words:\t%d\n", p.Words)
					fmt.Fprintf(w, "Dark mode:\t%v\n", p.DarkMode)
				})
			})
		},
	}
}
