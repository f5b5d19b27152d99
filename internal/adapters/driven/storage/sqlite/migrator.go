package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/skycast-labs/skycast-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/skycast-labs/skycast-cli/internal/core/domain"
	"github.com/skycast-labs/skycast-cli/internal/core/ports/driving"
	"github.com/skycast-labs/skycast-cli/internal/logger"
)

// Ensure Migrator implements the interface.
var _ driving.MigrationService = (*Migrator)(nil)

// Migrator moves the persisted schema between versions by running
// registered migrations, one transaction per step. The version row is
// updated inside the same transaction as the step body, so a failed
// step never advances the counter.
type Migrator struct {
	db    *sql.DB
	chain []migrations.Migration
	steps []domain.MigrationStep
}

// NewMigrator creates a migrator over the given chain. The chain is
// validated up front; a gap, duplicate, or malformed version pair is a
// configuration bug and fails construction.
func NewMigrator(db *sql.DB, chain []migrations.Migration) (*Migrator, error) {
	steps := migrations.Steps(chain)
	if err := domain.ValidateMigrationSequence(steps); err != nil {
		return nil, domain.NewSyncError(domain.ErrorKindMigration, "invalid migration chain", err)
	}
	return &Migrator{db: db, chain: chain, steps: steps}, nil
}

// CurrentVersion reads the persisted schema version. A fresh database
// reports domain.MinSchemaVersion.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}

	var version int
	err := m.db.QueryRowContext(ctx,
		`SELECT version FROM schema_version WHERE id = 0`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MinSchemaVersion, nil
	}
	if err != nil {
		return 0, domain.NewSyncError(domain.ErrorKindStorage, "reading schema version", err)
	}
	return version, nil
}

// Steps returns the registered migration chain in ascending order.
func (m *Migrator) Steps() []domain.MigrationStep {
	steps := make([]domain.MigrationStep, len(m.steps))
	copy(steps, m.steps)
	return steps
}

// MigrateTo moves the schema from the current version to target,
// committing one transaction per step. current == target is a no-op.
// A missing path fails before any storage is touched; a failing step
// rolls back and aborts the remaining path, leaving the version at the
// last committed step.
func (m *Migrator) MigrateTo(ctx context.Context, target int) error {
	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return err
	}
	if current == target {
		return nil
	}

	plan, err := domain.PlanMigrationPath(current, target, m.steps)
	if err != nil {
		return domain.NewSyncError(domain.ErrorKindMigration,
			fmt.Sprintf("planning migration from v%d to v%d", current, target), err)
	}

	backward := domain.PathDirection(current, target) == domain.MigrationBackward
	if backward {
		for _, step := range plan {
			mig, ok := m.find(step)
			if !ok || mig.Rollback == nil {
				return domain.NewSyncError(domain.ErrorKindMigration,
					step.String(), domain.ErrRollbackUnsupported)
			}
		}
	}

	for _, step := range plan {
		if err := m.runStep(ctx, step, backward); err != nil {
			return err
		}
	}
	return nil
}

// runStep executes one migration step in its own transaction: the
// precondition check, the body, and the version update commit together
// or not at all.
func (m *Migrator) runStep(ctx context.Context, step domain.MigrationStep, backward bool) error {
	mig, ok := m.find(step)
	if !ok {
		return domain.NewSyncError(domain.ErrorKindMigration, step.String(), domain.ErrNoMigrationPath)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewSyncError(domain.ErrorKindStorage, "beginning migration transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op once committed

	body := mig.Apply
	version := mig.To
	if backward {
		body = mig.Rollback
		version = mig.From
	} else if mig.Validate != nil {
		if err := mig.Validate(ctx, tx); err != nil {
			return domain.NewSyncError(domain.ErrorKindValidation,
				fmt.Sprintf("validating migration %s", step), err)
		}
	}

	if err := body(ctx, tx); err != nil {
		return domain.NewSyncError(domain.ErrorKindMigration,
			fmt.Sprintf("applying migration %s", step), err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO schema_version (id, version) VALUES (0, ?)
		ON CONFLICT(id) DO UPDATE SET version = excluded.version
	`, version); err != nil {
		return domain.NewSyncError(domain.ErrorKindStorage, "updating schema version", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewSyncError(domain.ErrorKindStorage, "committing migration", err)
	}

	if backward {
		logger.Info("Rolled back migration %s: %s", step, step.Description)
	} else {
		logger.Info("Applied migration %s: %s", step, step.Description)
	}
	return nil
}

// find returns the executable migration with the given version pair.
func (m *Migrator) find(step domain.MigrationStep) (migrations.Migration, bool) {
	for _, mig := range m.chain {
		if mig.From == step.From && mig.To == step.To {
			return mig, true
		}
	}
	return migrations.Migration{}, false
}

// ensureVersionTable creates the singleton version table on first use.
func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			id INTEGER PRIMARY KEY CHECK (id = 0),
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return domain.NewSyncError(domain.ErrorKindStorage, "creating schema_version table", err)
	}
	return nil
}
