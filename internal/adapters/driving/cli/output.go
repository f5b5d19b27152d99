package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
)

func outputForecastJSON(cmd *cobra.Command, records []domain.ForecastRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal forecasts: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputForecastTable(cmd *cobra.Command, records []domain.ForecastRecord, unit domain.TemperatureUnit) {
	if len(records) == 0 {
		cmd.Println("No cached forecasts.")
		return
	}

	sym := unit.Symbol()
	for i := range records {
		r := &records[i]
		cmd.Printf("  %s  %-22s high %.1f%s  low %.1f%s  now %.1f%s  humidity %d%%\n",
			r.Date, r.Description,
			r.HighTemp, sym, r.LowTemp, sym, r.CurrentTemp, sym, r.Humidity)
		if detail := formatReadings(r); detail != "" {
			cmd.Printf("      %s\n", detail)
		}
	}
}

// formatReadings renders whichever optional readings the record carries.
func formatReadings(r *domain.ForecastRecord) string {
	parts := make([]string, 0, 4)
	if r.Pressure != nil {
		parts = append(parts, fmt.Sprintf("pressure %.0f hPa", *r.Pressure))
	}
	if r.WindSpeed != nil {
		parts = append(parts, fmt.Sprintf("wind %.1f km/h", *r.WindSpeed))
	}
	if r.UVIndex != nil {
		parts = append(parts, fmt.Sprintf("uv %.1f", *r.UVIndex))
	}
	if r.Precipitation != nil {
		parts = append(parts, fmt.Sprintf("precipitation %.1f mm", *r.Precipitation))
	}
	return strings.Join(parts, ", ")
}
