package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/skycast-labs/skycast-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/skycast-labs/skycast-cli/internal/core/domain"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driven"
)

// forecastColumns is the column list shared by every forecast query.
const forecastColumns = `date, condition_code, high_temp, low_temp, current_temp,
	humidity, icon, description, pressure, wind_speed, uv_index, precipitation, cached_at`

// Store is SQLite-backed storage for the forecast cache. One Store owns
// one database handle; wrapper types expose the driven interfaces.
type Store struct {
	db       *sql.DB
	path     string
	clock    driven.Clock
	migrator *Migrator
}

// Open opens (creating if needed) the forecast database without
// migrating it. Callers that read or write forecasts use NewStore,
// which migrates to the current version first; Open exists for the
// migration workflow, where the target version is the caller's choice.
// If dataDir is empty, defaults to ~/.skycast/data.
func Open(dataDir string, clock driven.Clock) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".skycast", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "forecast.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	migrator, err := NewMigrator(db, migrations.All())
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:       db,
		path:     dbPath,
		clock:    clock,
		migrator: migrator,
	}, nil
}

// NewStore opens the forecast database and migrates it to
// domain.CurrentSchemaVersion. An unmigrated store is never handed to
// callers.
func NewStore(dataDir string, clock driven.Clock) (*Store, error) {
	s, err := Open(dataDir, clock)
	if err != nil {
		return nil, err
	}

	if err := s.migrator.MigrateTo(context.Background(), domain.CurrentSchemaVersion); err != nil {
		s.db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ForecastStore returns a ForecastStore interface backed by this store.
func (s *Store) ForecastStore() driven.ForecastStore {
	return &forecastStore{store: s}
}

// Migrator returns the migration engine bound to this database.
func (s *Store) Migrator() *Migrator {
	return s.migrator
}

// ==================== Forecast Store ====================

// forecastStore implements driven.ForecastStore.
type forecastStore struct {
	store *Store
}

var _ driven.ForecastStore = (*forecastStore)(nil)

// UpsertAll writes the batch in a single transaction, one CachedAt
// stamp for all records.
func (f *forecastStore) UpsertAll(ctx context.Context, records []domain.ForecastRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := f.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op once committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO forecasts (date, condition_code, high_temp, low_temp, current_temp,
			humidity, icon, description, pressure, wind_speed, uv_index, precipitation, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			condition_code = excluded.condition_code,
			high_temp = excluded.high_temp,
			low_temp = excluded.low_temp,
			current_temp = excluded.current_temp,
			humidity = excluded.humidity,
			icon = excluded.icon,
			description = excluded.description,
			pressure = excluded.pressure,
			wind_speed = excluded.wind_speed,
			uv_index = excluded.uv_index,
			precipitation = excluded.precipitation,
			cached_at = excluded.cached_at
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	stamp := domain.UnixMillis(f.store.clock.Now())
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			int64(r.Date), r.ConditionCode, r.HighTemp, r.LowTemp, r.CurrentTemp,
			r.Humidity, r.Icon, r.Description,
			nullFloat(r.Pressure), nullFloat(r.WindSpeed),
			nullFloat(r.UVIndex), nullFloat(r.Precipitation),
			stamp); err != nil {
			return fmt.Errorf("upserting forecast %s: %w", r.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing forecasts: %w", err)
	}
	return nil
}

// SelectAll returns all records ordered by date ascending.
func (f *forecastStore) SelectAll(ctx context.Context) ([]domain.ForecastRecord, error) {
	rows, err := f.store.db.QueryContext(ctx,
		`SELECT `+forecastColumns+` FROM forecasts ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("selecting forecasts: %w", err)
	}
	defer rows.Close()

	return collectForecasts(rows)
}

// SelectByDate returns the record for one date, or domain.ErrNotFound.
func (f *forecastStore) SelectByDate(ctx context.Context, date domain.ForecastDate) (*domain.ForecastRecord, error) {
	row := f.store.db.QueryRowContext(ctx,
		`SELECT `+forecastColumns+` FROM forecasts WHERE date = ?`, int64(date))
	return scanForecastRow(row)
}

// SelectRange returns records with from <= date <= to, date ascending.
func (f *forecastStore) SelectRange(ctx context.Context, from, to domain.ForecastDate) ([]domain.ForecastRecord, error) {
	rows, err := f.store.db.QueryContext(ctx,
		`SELECT `+forecastColumns+` FROM forecasts WHERE date >= ? AND date <= ? ORDER BY date ASC`,
		int64(from), int64(to))
	if err != nil {
		return nil, fmt.Errorf("selecting forecast range: %w", err)
	}
	defer rows.Close()

	return collectForecasts(rows)
}

// IsValid reports whether any record is fresher than the threshold.
func (f *forecastStore) IsValid(ctx context.Context, thresholdMillis int64) (bool, error) {
	var n int
	err := f.store.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM forecasts WHERE cached_at > ?)`, thresholdMillis).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking cache validity: %w", err)
	}
	return n == 1, nil
}

// DeleteOlderThan evicts records with CachedAt at or below the threshold.
func (f *forecastStore) DeleteOlderThan(ctx context.Context, thresholdMillis int64) (int64, error) {
	res, err := f.store.db.ExecContext(ctx,
		`DELETE FROM forecasts WHERE cached_at <= ?`, thresholdMillis)
	if err != nil {
		return 0, fmt.Errorf("deleting stale forecasts: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted forecasts: %w", err)
	}
	return n, nil
}

// ClearAll wipes the cache.
func (f *forecastStore) ClearAll(ctx context.Context) error {
	if _, err := f.store.db.ExecContext(ctx, `DELETE FROM forecasts`); err != nil {
		return fmt.Errorf("clearing forecasts: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scanForecast scans a forecast from *sql.Rows.
func scanForecast(rows *sql.Rows) (*domain.ForecastRecord, error) {
	var (
		rec                    domain.ForecastRecord
		date                   int64
		pressure, windSpeed    sql.NullFloat64
		uvIndex, precipitation sql.NullFloat64
	)
	if err := rows.Scan(&date, &rec.ConditionCode, &rec.HighTemp, &rec.LowTemp,
		&rec.CurrentTemp, &rec.Humidity, &rec.Icon, &rec.Description,
		&pressure, &windSpeed, &uvIndex, &precipitation, &rec.CachedAt); err != nil {
		return nil, fmt.Errorf("scanning forecast: %w", err)
	}

	rec.Date = domain.ForecastDate(date)
	rec.Pressure = floatPtr(pressure)
	rec.WindSpeed = floatPtr(windSpeed)
	rec.UVIndex = floatPtr(uvIndex)
	rec.Precipitation = floatPtr(precipitation)
	return &rec, nil
}

// scanForecastRow scans a single forecast row.
func scanForecastRow(row *sql.Row) (*domain.ForecastRecord, error) {
	var (
		rec                    domain.ForecastRecord
		date                   int64
		pressure, windSpeed    sql.NullFloat64
		uvIndex, precipitation sql.NullFloat64
	)
	if err := row.Scan(&date, &rec.ConditionCode, &rec.HighTemp, &rec.LowTemp,
		&rec.CurrentTemp, &rec.Humidity, &rec.Icon, &rec.Description,
		&pressure, &windSpeed, &uvIndex, &precipitation, &rec.CachedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning forecast: %w", err)
	}

	rec.Date = domain.ForecastDate(date)
	rec.Pressure = floatPtr(pressure)
	rec.WindSpeed = floatPtr(windSpeed)
	rec.UVIndex = floatPtr(uvIndex)
	rec.Precipitation = floatPtr(precipitation)
	return &rec, nil
}

// collectForecasts drains rows into a record list.
func collectForecasts(rows *sql.Rows) ([]domain.ForecastRecord, error) {
	records := []domain.ForecastRecord{}
	for rows.Next() {
		rec, err := scanForecast(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating forecasts: %w", err)
	}
	return records, nil
}

// nullFloat boxes an optional metric for storage.
func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// floatPtr unboxes an optional metric.
func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
