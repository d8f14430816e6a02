package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/benvon/quest-planner/internal/app"
	"github.com/benvon/quest-planner/internal/importer"
	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/store"
)

// NewWordCmd creates the dictionary command
func NewWordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "word",
		Aliases: []string{"dict"},
		Short:   "Manage the German dictionary",
	}
	cmd.AddCommand(newWordListCmd())
	cmd.AddCommand(newWordAddCmd())
	cmd.AddCommand(newWordDeleteCmd())
	cmd.AddCommand(newWordImportCmd())
	cmd.AddCommand(newWordExportCmd())
	return cmd
}

func printWords(cmd *cobra.Command, words []models.DictionaryEntry) error {
	return output(cmd, words, func(w io.Writer) {
		fmt.Fprintln(w, "ID\tGERMAN\tENGLISH\tEXAMPLE")
		for _, e := range words {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.German, e.English, e.Example)
		}
	})
}

func newWordListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dictionary entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return printWords(cmd, a.Planner.Dictionary(ctx))
			})
		},
	}
}

func newWordAddCmd() *cobra.Command {
	var example string
	cmd := &cobra.Command{
		Use:   "add <german> <english>",
		Short: "Add a dictionary entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				entry, ok, err := a.Planner.AddWord(ctx, store.NewEntry{German: args[0], English: args[1], Example: example})
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("german and english cannot be empty")
				}
				return printWords(cmd, []models.DictionaryEntry{entry})
			})
		},
	}
	cmd.Flags().StringVar(&example, "example", "", "Example sentence")
	return cmd
}

func newWordDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a dictionary entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid word id: %w", err)
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.Planner.DeleteWord(ctx, id)
			})
		},
	}
}

func newWordImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Import words from a spreadsheet (A german, B english, C example, header row skipped)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := importer.ImportWords(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				added, err := a.Planner.ImportWords(ctx, res.Entries)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d words (%d rows processed)\n", len(added), res.Processed)
				for _, e := range res.Errors {
					fmt.Fprintln(out, "  "+e)
				}
				return nil
			})
		},
	}
}

func newWordExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Export the dictionary to an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("create %s: %w", args[0], err)
				}
				if err := importer.ExportWords(f, a.Planner.Dictionary(ctx)); err != nil {
					_ = f.Close()
					return err
				}
				return f.Close()
			})
		},
	}
}
