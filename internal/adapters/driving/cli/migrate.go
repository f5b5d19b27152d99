package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
)

var migrateTarget int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the forecast database schema",
	Long: `Moves the database schema to the target version, applying one
migration per transaction. Downgrades run the same chain in reverse.
A failed step rolls back and leaves the database at the last completed
version.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current schema version and migration chain",
	Args:  cobra.NoArgs,
	RunE:  runMigrateStatus,
}

func init() {
	migrateCmd.Flags().IntVar(&migrateTarget, "target", domain.CurrentSchemaVersion, "schema version to migrate to")
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if migrationService == nil {
		return errors.New("migration service not configured")
	}
	ctx := cmd.Context()

	current, err := migrationService.CurrentVersion(ctx)
	if err != nil {
		return err
	}
	if current == migrateTarget {
		cmd.Printf("Database already at version %d.\n", current)
		return nil
	}

	if err := migrationService.MigrateTo(ctx, migrateTarget); err != nil {
		return err
	}

	cmd.Printf("Migrated from version %d to %d.\n", current, migrateTarget)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	if migrationService == nil {
		return errors.New("migration service not configured")
	}
	ctx := cmd.Context()

	current, err := migrationService.CurrentVersion(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Schema version: %d (latest %d)\n", current, domain.CurrentSchemaVersion)
	cmd.Println()
	for _, step := range migrationService.Steps() {
		marker := " "
		if step.To <= current {
			marker = "*"
		}
		cmd.Printf("  [%s] %s: %s\n", marker, step, step.Description)
	}
	return nil
}
