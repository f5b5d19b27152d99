// Package migrations defines the versioned schema migration chain for
// the forecast cache. Each migration is Go code executed inside the
// transaction the Migrator opens for its step; the (From, To,
// Description) projection feeds the domain-level chain validation and
// path planning.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
)

// Migration is one executable schema transformation. Apply moves the
// schema from version From to version To inside the step's transaction;
// Rollback undoes it. A migration without Rollback cannot be crossed by
// a downgrade path. A nil Validate skips the precondition check.
type Migration struct {
	// From is the version this migration upgrades from.
	From int

	// To is the version this migration upgrades to.
	To int

	// Description is the summary logged when the step runs.
	Description string

	// Validate checks preconditions before Apply. Runs in the step's
	// transaction; a failure aborts the step without side effects.
	Validate func(ctx context.Context, tx *sql.Tx) error

	// Apply performs the forward transformation.
	Apply func(ctx context.Context, tx *sql.Tx) error

	// Rollback undoes the transformation on downgrade.
	Rollback func(ctx context.Context, tx *sql.Tx) error
}

// Step returns the metadata projection used for chain validation and
// path planning.
func (m Migration) Step() domain.MigrationStep {
	return domain.MigrationStep{From: m.From, To: m.To, Description: m.Description}
}

// Steps projects a migration list to its metadata.
func Steps(migrations []Migration) []domain.MigrationStep {
	steps := make([]domain.MigrationStep, len(migrations))
	for i, m := range migrations {
		steps[i] = m.Step()
	}
	return steps
}

// All returns the registered migration chain in ascending order. The
// chain is contiguous from domain.MinSchemaVersion to
// domain.CurrentSchemaVersion; the Migrator rejects anything else at
// construction.
func All() []Migration {
	return []Migration{
		createForecastsTable(),
		addExtendedMetrics(),
		indexCachedAt(),
	}
}

// createForecastsTable is migration 0 -> 1: the initial forecast table,
// one row per calendar date.
func createForecastsTable() Migration {
	return Migration{
		From:        0,
		To:          1,
		Description: "create forecasts table",
		Validate: func(ctx context.Context, tx *sql.Tx) error {
			exists, err := tableExists(ctx, tx, "forecasts")
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("forecasts table already exists")
			}
			return nil
		},
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
				CREATE TABLE forecasts (
					date INTEGER PRIMARY KEY,
					condition_code INTEGER NOT NULL,
					high_temp REAL NOT NULL,
					low_temp REAL NOT NULL,
					current_temp REAL NOT NULL,
					humidity INTEGER NOT NULL,
					icon TEXT NOT NULL,
					description TEXT NOT NULL,
					cached_at INTEGER NOT NULL
				)
			`)
			return err
		},
		Rollback: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS forecasts`)
			return err
		},
	}
}

// addExtendedMetrics is migration 1 -> 2: nullable columns for the
// extended metrics newer payloads carry. Existing rows keep NULL, which
// the store reads back as absent.
func addExtendedMetrics() Migration {
	return Migration{
		From:        1,
		To:          2,
		Description: "add extended metric columns",
		Validate: func(ctx context.Context, tx *sql.Tx) error {
			exists, err := tableExists(ctx, tx, "forecasts")
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("forecasts table missing")
			}
			has, err := columnExists(ctx, tx, "forecasts", "pressure")
			if err != nil {
				return err
			}
			if has {
				return fmt.Errorf("extended metric columns already present")
			}
			return nil
		},
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			columns := []string{
				"pressure REAL",
				"wind_speed REAL",
				"uv_index REAL",
				"precipitation REAL",
			}
			for _, col := range columns {
				if _, err := tx.ExecContext(ctx, "ALTER TABLE forecasts ADD COLUMN "+col); err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(ctx context.Context, tx *sql.Tx) error {
			columns := []string{"precipitation", "uv_index", "wind_speed", "pressure"}
			for _, col := range columns {
				if _, err := tx.ExecContext(ctx, "ALTER TABLE forecasts DROP COLUMN "+col); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// indexCachedAt is migration 2 -> 3: an index for expiry scans. The
// precondition guards against out-of-range humidity values left behind
// by payloads written before validation moved into the fetch path.
func indexCachedAt() Migration {
	return Migration{
		From:        2,
		To:          3,
		Description: "index cached_at for expiry scans",
		Validate: func(ctx context.Context, tx *sql.Tx) error {
			var n int
			err := tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM forecasts WHERE humidity < 0 OR humidity > 100`,
			).Scan(&n)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%d rows with humidity out of range", n)
			}
			return nil
		},
		Apply: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx,
				`CREATE INDEX idx_forecasts_cached_at ON forecasts (cached_at)`)
			return err
		},
		Rollback: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_forecasts_cached_at`)
			return err
		},
	}
}

// tableExists reports whether a table is present in the schema.
func tableExists(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// columnExists reports whether a table has a named column.
func columnExists(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
