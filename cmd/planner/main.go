package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benvon/quest-planner/cmd/planner/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:           "planner",
		Short:         "Quest planner command line",
		Long:          "Manage tasks, the German dictionary, quests, skills and backups from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	commands.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(commands.NewStatusCmd())
	rootCmd.AddCommand(commands.NewTaskCmd())
	rootCmd.AddCommand(commands.NewWordCmd())
	rootCmd.AddCommand(commands.NewQuestCmd())
	rootCmd.AddCommand(commands.NewSkillCmd())
	rootCmd.AddCommand(commands.NewBackupCmd())
	rootCmd.AddCommand(commands.NewPlanCmd())
	rootCmd.AddCommand(commands.NewResetCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
