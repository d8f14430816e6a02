package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/benvon/quest-planner/internal/app"
	"github.com/benvon/quest-planner/internal/backup"
	"github.com/benvon/quest-planner/internal/models"
)

// NewBackupCmd creates the backup command
func NewBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage stored backups and export files",
	}
	cmd.AddCommand(newBackupListCmd())
	cmd.AddCommand(newBackupCreateCmd())
	cmd.AddCommand(newBackupRestoreCmd())
	cmd.AddCommand(newBackupDeleteCmd())
	cmd.AddCommand(newBackupExportCmd())
	cmd.AddCommand(newBackupImportCmd())
	return cmd
}

func printBackups(cmd *cobra.Command, list []models.Backup) error {
	return output(cmd, list, func(w io.Writer) {
		fmt.Fprintln(w, "KEY\tLEVEL\tXP\tTASKS\tWORDS")
		for _, b := range list {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", b.Key, b.Data.Level, b.Data.XP, len(b.Data.Tasks), len(b.Data.Dictionary))
		}
	})
}

func newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored backups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				list, err := a.Planner.ListBackups(ctx)
				if err != nil {
					return err
				}
				return printBackups(cmd, list)
			})
		},
	}
}

func newBackupCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Store a backup of the current state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				b, err := a.Planner.CreateBackup(ctx)
				if err != nil {
					return err
				}
				return printBackups(cmd, []models.Backup{b})
			})
		},
	}
}

func newBackupRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <key>",
		Short: "Replace the current state with a stored backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if _, err := a.Planner.RestoreBackup(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", args[0])
				return nil
			})
		},
	}
}

func newBackupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a stored backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.Planner.DeleteBackup(ctx, args[0])
			})
		},
	}
}

func newBackupExportCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current state to a dated JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				path, err := backup.ExportFile(dir, a.Planner.Snapshot(ctx), time.Now().In(a.Planner.Location()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory for the export file")
	return cmd
}

func newBackupImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the current state with an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := backup.ImportFile(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Planner.Restore(ctx, snap); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks and %d words\n", len(snap.Tasks), len(snap.Dictionary))
				return nil
			})
		},
	}
}
