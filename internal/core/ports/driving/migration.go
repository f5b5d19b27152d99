package driving

import (
	"context"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
)

// MigrationService moves the persisted schema between versions.
// A failed step rolls back transactionally; the version counter never
// reflects a partially applied migration.
type MigrationService interface {
	// CurrentVersion reads the persisted schema version. A fresh
	// database reports domain.MinSchemaVersion.
	CurrentVersion(ctx context.Context) (int, error)

	// MigrateTo applies the contiguous migration path from the current
	// version to target, one transaction per step. current == target is
	// a no-op success. Fails before touching storage when no path exists.
	MigrateTo(ctx context.Context, target int) error

	// Steps returns the registered migration chain in ascending order,
	// for display.
	Steps() []domain.MigrationStep
}
