package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/benvon/quest-planner/internal/app"
)

// NewQuestCmd creates the quest command
func NewQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Inspect and claim quests",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List quests with their progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				quests, err := a.Planner.Quests(ctx)
				if err != nil {
					return err
				}
				return output(cmd, quests, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tPERIOD\tSTATUS\tPROGRESS\tREWARD\tTITLE")
					for _, q := range quests {
						fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d\t%s\n", q.ID, q.Period, q.Status, q.Progress, q.BaseTarget, q.RewardXP, q.Title)
					}
				})
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "claim <id>",
		Short: "Claim the reward of a completed quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				claim, err := a.Planner.ClaimQuest(ctx, args[0])
				if err != nil {
					return err
				}
				return output(cmd, claim, func(w io.Writer) {
					fmt.Fprintf(w, "Claimed %s: +%d xp\n", claim.Quest.ID, claim.RewardXP)
					for _, up := range claim.LevelUps {
						fmt.Fprintf(w, "Level up! %d -> %d\n", up.From, up.To)
					}
				})
			})
		},
	})
	return cmd
}

// NewSkillCmd creates the skill command
func NewSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Browse and unlock skills",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the skill tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				list := a.Planner.Skills(ctx)
				return output(cmd, list, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tBRANCH\tUNLOCKED\tTITLE")
					for _, s := range list {
						fmt.Fprintf(w, "%s\t%s\t[%s]\t%s\n", s.ID, s.Branch, check(s.Unlocked), s.Title)
					}
				})
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "unlock <id>",
		Short: "Spend a skill point on a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				p, err := a.Planner.UnlockSkill(ctx, args[0])
				if err != nil {
					return err
				}
				return output(cmd, p, func(w io.Writer) {
					fmt.Fprintf(w, "Unlocked %s, %d skill points left\n", args[0], p.SkillPoints)
				})
			})
		},
	})
	return cmd
}
