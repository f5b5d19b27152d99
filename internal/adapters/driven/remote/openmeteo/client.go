package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driven"
	"github.com/skycast-labs/skycast-cli/internal/logger"
)

// Ensure Client implements the source port.
var _ driven.ForecastSource = (*Client)(nil)

const (
	// DefaultBaseURL is the Open-Meteo forecast endpoint.
	DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// ForecastDays is how many days each fetch requests.
	ForecastDays = 7

	// requestsPerSecond is the proactive throttle rate. Open-Meteo's
	// free tier allows far more; the limiter guards against tight
	// retry loops, not quota.
	requestsPerSecond = 1
	burstSize         = 2
)

// dailyParams and currentParams select the series each fetch requests.
var (
	dailyParams = strings.Join([]string{
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"relative_humidity_2m_mean",
		"surface_pressure_mean",
		"wind_speed_10m_max",
		"uv_index_max",
		"precipitation_sum",
	}, ",")

	currentParams = strings.Join([]string{
		"temperature_2m",
		"relative_humidity_2m",
		"surface_pressure",
		"wind_speed_10m",
	}, ",")
)

// Client fetches daily forecasts from the Open-Meteo API. A circuit
// breaker sheds load while the service is failing and a token bucket
// keeps request bursts polite.
type Client struct {
	baseURL    string
	httpClient *http.Client
	config     driven.ConfigProvider
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
}

// NewClient creates an Open-Meteo client. The config provider supplies
// the temperature unit for each fetch. A nil httpClient gets a default
// with DefaultTimeout.
func NewClient(config driven.ConfigProvider, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: httpClient,
		config:     config,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openmeteo",
			MaxRequests: 5,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// Name identifies the source in logs.
func (c *Client) Name() string {
	return "openmeteo"
}

// Fetch returns the ForecastDays-day forecast for a "lat,lon" location key.
func (c *Client) Fetch(ctx context.Context, locationKey string) ([]domain.ForecastRecord, error) {
	lat, lon, err := parseLocation(locationKey)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := c.fetchForecast(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	records, err := mapRecords(payload)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetched %d day(s) from %s for %s", len(records), c.Name(), locationKey)
	return records, nil
}

// fetchForecast performs one API request through the breaker.
func (c *Client) fetchForecast(ctx context.Context, lat, lon float64) (*forecastResponse, error) {
	units := c.config.CacheConfig().Units

	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("daily", dailyParams)
	values.Set("current", currentParams)
	values.Set("forecast_days", strconv.Itoa(ForecastDays))
	values.Set("timezone", "UTC")
	values.Set("temperature_unit", units.String())

	reqURL := c.baseURL + "?" + values.Encode()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, apiError(resp)
		}

		var payload forecastResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decoding forecast response: %w", err)
		}
		return &payload, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("open-meteo circuit open: %w", err)
		}
		return nil, err
	}

	return result.(*forecastResponse), nil
}

// apiError extracts the reason Open-Meteo returns as a JSON body on
// failed requests.
func apiError(resp *http.Response) error {
	var payload struct {
		Error  bool   `json:"error"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Reason != "" {
		return fmt.Errorf("open-meteo: %s (status %d)", payload.Reason, resp.StatusCode)
	}
	return fmt.Errorf("open-meteo: unexpected status %d", resp.StatusCode)
}

// parseLocation splits a "lat,lon" location key.
func parseLocation(key string) (lat, lon float64, err error) {
	parts := strings.Split(key, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid location key %q: want \"lat,lon\"", key)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in %q: %w", key, err)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in %q: %w", key, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("location %q out of range", key)
	}
	return lat, lon, nil
}

// forecastResponse mirrors the subset of the Open-Meteo response the
// client reads. Optional daily series decode as pointer slices so API
// nulls survive as nils.
type forecastResponse struct {
	Current struct {
		Time             string  `json:"time"`
		Temperature      float64 `json:"temperature_2m"`
		RelativeHumidity int     `json:"relative_humidity_2m"`
		SurfacePressure  float64 `json:"surface_pressure"`
		WindSpeed        float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Time             []string   `json:"time"`
		WeatherCode      []int      `json:"weather_code"`
		TemperatureMax   []float64  `json:"temperature_2m_max"`
		TemperatureMin   []float64  `json:"temperature_2m_min"`
		HumidityMean     []*float64 `json:"relative_humidity_2m_mean"`
		PressureMean     []*float64 `json:"surface_pressure_mean"`
		WindSpeedMax     []*float64 `json:"wind_speed_10m_max"`
		UVIndexMax       []*float64 `json:"uv_index_max"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// mapRecords converts an API payload into date-keyed forecast records.
// The day containing the current observation carries the live readings;
// other days approximate CurrentTemp as the high/low midpoint.
func mapRecords(payload *forecastResponse) ([]domain.ForecastRecord, error) {
	daily := payload.Daily
	n := len(daily.Time)
	if len(daily.WeatherCode) != n || len(daily.TemperatureMax) != n || len(daily.TemperatureMin) != n {
		return nil, fmt.Errorf("daily series length mismatch: %d dates, %d codes", n, len(daily.WeatherCode))
	}

	today := currentDate(payload.Current.Time)

	records := make([]domain.ForecastRecord, 0, n)
	for i, day := range daily.Time {
		t, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("parsing daily time %q: %w", day, err)
		}

		code := daily.WeatherCode[i]
		cond := conditionFor(code)

		record := domain.ForecastRecord{
			Date:          domain.DateOf(t),
			ConditionCode: code,
			HighTemp:      daily.TemperatureMax[i],
			LowTemp:       daily.TemperatureMin[i],
			CurrentTemp:   (daily.TemperatureMax[i] + daily.TemperatureMin[i]) / 2,
			Icon:          cond.Icon,
			Description:   cond.Description,
			Pressure:      optAt(daily.PressureMean, i),
			WindSpeed:     optAt(daily.WindSpeedMax, i),
			UVIndex:       optAt(daily.UVIndexMax, i),
			Precipitation: optAt(daily.PrecipitationSum, i),
		}

		if h := optAt(daily.HumidityMean, i); h != nil {
			record.Humidity = int(math.Round(*h))
		}

		if record.Date == today {
			record.CurrentTemp = payload.Current.Temperature
			record.Humidity = payload.Current.RelativeHumidity
			record.Pressure = ptr(payload.Current.SurfacePressure)
			record.WindSpeed = ptr(payload.Current.WindSpeed)
		}

		records = append(records, record)
	}

	return records, nil
}

// currentDate extracts the date of the current observation. A missing
// or malformed stamp falls back to the wall clock so today still gets
// live readings.
func currentDate(stamp string) domain.ForecastDate {
	t, err := time.Parse("2006-01-02T15:04", stamp)
	if err != nil {
		return domain.DateOf(time.Now().UTC())
	}
	return domain.DateOf(t)
}

// optAt reads an optional series that may be absent or hold nulls.
func optAt(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

func ptr(v float64) *float64 {
	return &v
}
