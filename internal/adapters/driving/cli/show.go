package cli

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
)

var (
	showFrom string
	showTo   string
	showJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show cached forecasts without refreshing",
	Long: `Prints the cached forecasts exactly as stored. The network is never
touched; run sync or refresh to update the cache first.

Dates are given as YYYY-MM-DD. With --from and/or --to, only records
inside the inclusive range are shown.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFrom, "from", "", "earliest date to include (YYYY-MM-DD)")
	showCmd.Flags().StringVar(&showTo, "to", "", "latest date to include (YYYY-MM-DD)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output records as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}
	ctx := cmd.Context()
	if err := ensureSchema(ctx); err != nil {
		return err
	}

	var (
		records []domain.ForecastRecord
		err     error
	)
	if showFrom == "" && showTo == "" {
		records, err = syncService.Cached(ctx)
	} else {
		var from, to domain.ForecastDate
		from, to, err = parseDateRange(showFrom, showTo)
		if err != nil {
			return err
		}
		records, err = syncService.CachedRange(ctx, from, to)
	}
	if err != nil {
		return fmt.Errorf("reading cache: %w", err)
	}

	if showJSON {
		return outputForecastJSON(cmd, records)
	}
	outputForecastTable(cmd, records, currentUnits())
	return nil
}

// parseDateRange converts the flag strings to an inclusive date range.
// A missing bound is left open.
func parseDateRange(fromStr, toStr string) (domain.ForecastDate, domain.ForecastDate, error) {
	from := domain.ForecastDate(math.MinInt32)
	to := domain.ForecastDate(math.MaxInt32)

	if fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid --from date %q: expected YYYY-MM-DD", fromStr)
		}
		from = domain.DateOf(t)
	}
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid --to date %q: expected YYYY-MM-DD", toStr)
		}
		to = domain.DateOf(t)
	}
	if from > to {
		return 0, 0, fmt.Errorf("--from %s is after --to %s", fromStr, toStr)
	}
	return from, to, nil
}
