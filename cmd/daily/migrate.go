package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entrhq/daily/pkg/diary"
	"github.com/entrhq/daily/pkg/logging"
)

func newMigrateCmd(a *app) *cobra.Command {
	var (
		from      string
		format    string
		nested    bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Import entries from another diary directory",
		Long: `Import every entry from another diary directory into the configured diary.

The default source is the legacy layout: flat <YYYY-MM-DD>.json files holding
arrays of {content, datetime, created_at, tags} records. Days that already
hold entries in the target are skipped unless --overwrite is given, so the
command is safe to re-run.`,
		Example: `  daily migrate --from ~/.daily-mcp/data/diary
  daily migrate --from ~/old-journal --format markdown --nested`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := diary.CodecByName(format)
			if err != nil {
				return err
			}
			target, err := a.openStore()
			if err != nil {
				return err
			}

			opts := []diary.Option{
				diary.WithCodec(codec),
				diary.WithLocation(target.Location()),
				diary.WithLogger(logging.NewLogger("migrate")),
			}
			if !nested {
				opts = append(opts, diary.WithFlatLayout())
			}
			source, err := diary.NewFileStore(from, opts...)
			if err != nil {
				return err
			}
			if source.Root() == target.Root() && codec.Name() == target.Codec().Name() && nested {
				return fmt.Errorf("source and target are the same diary: %s", source.Root())
			}

			report, err := diary.Migrate(cmd.Context(), source, target, diary.MigrateOptions{Overwrite: overwrite})
			a.print(cmd, formatMigration(report))
			if err != nil {
				return fmt.Errorf("migration finished with errors: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source diary directory")
	cmd.Flags().StringVar(&format, "format", "json", "source file format: json or markdown")
	cmd.Flags().BoolVar(&nested, "nested", false, "source uses YYYY/MM subdirectories")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "append into days that already have entries")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func formatMigration(r diary.MigrationReport) string {
	text := fmt.Sprintf("Migrated %d entries from %d days", r.Entries, r.Days)
	if len(r.Skipped) > 0 {
		text += fmt.Sprintf("\n  ... skipped %d days that already have entries", len(r.Skipped))
	}
	if r.Failed > 0 {
		text += fmt.Sprintf("\nError: %d entries could not be migrated", r.Failed)
	}
	return text
}
