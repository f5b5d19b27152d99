package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached forecasts",
	Long: `Wipes the forecast cache. The next sync rebuilds it from the remote
service; configuration and schema version are untouched.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}
	ctx := cmd.Context()
	if err := ensureSchema(ctx); err != nil {
		return err
	}

	if err := syncService.Clear(ctx); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	cmd.Println("Forecast cache cleared.")
	return nil
}
