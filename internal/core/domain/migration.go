package domain

import (
	"fmt"
	"sort"
)

// Schema version bounds for the forecast cache.
const (
	// MinSchemaVersion is the version of an empty database before any
	// migration has run.
	MinSchemaVersion = 0

	// CurrentSchemaVersion is the target version of the registered
	// migration chain. New stores are migrated to this version before use.
	CurrentSchemaVersion = 3
)

// MigrationDirection says which way a planned path moves the schema.
type MigrationDirection string

// Available migration directions.
const (
	// MigrationForward applies forward transformations (upgrade).
	MigrationForward MigrationDirection = "forward"

	// MigrationBackward applies rollback procedures (downgrade).
	MigrationBackward MigrationDirection = "backward"
)

// String returns the string representation.
func (d MigrationDirection) String() string {
	return string(d)
}

// MigrationStep describes one schema transformation by its version
// pair. It is the pure metadata projection of an executable migration,
// so chain validation and path planning stay testable without storage.
type MigrationStep struct {
	// From is the version the step upgrades from.
	From int

	// To is the version the step upgrades to.
	To int

	// Description is the human-readable summary logged when the step
	// is applied.
	Description string
}

// String formats the step's version pair.
func (s MigrationStep) String() string {
	return fmt.Sprintf("v%d -> v%d", s.From, s.To)
}

// ValidateMigrationSequence checks that steps form a contiguous chain:
// sorted by From, every step starts where the previous one ended, no
// duplicate (From, To) pairs, no step moving backwards or to itself.
// A broken chain is a configuration bug and must fail before any
// migration runs.
func ValidateMigrationSequence(steps []MigrationStep) error {
	if len(steps) == 0 {
		return nil
	}

	sorted := make([]MigrationStep, len(steps))
	copy(sorted, steps)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})

	for i, s := range sorted {
		if s.To <= s.From {
			return fmt.Errorf("%w: %s", ErrInvalidMigration, s)
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if s.From == prev.From && s.To == prev.To {
			return fmt.Errorf("%w: %s", ErrDuplicateMigration, s)
		}
		if s.From != prev.To {
			return fmt.Errorf("%w: %s does not continue %s", ErrMigrationGap, s, prev)
		}
	}
	return nil
}

// PlanMigrationPath returns the steps that move the schema from current
// to target, in execution order. Forward plans select steps with
// From >= current and To <= target, ascending; backward plans mirror
// the filter and order, and each returned step is meant to be undone
// via its rollback procedure. An empty plan with current == target is
// a valid no-op. Any hole between current and target fails with
// ErrNoMigrationPath before storage is touched.
func PlanMigrationPath(current, target int, steps []MigrationStep) ([]MigrationStep, error) {
	if current == target {
		return nil, nil
	}

	noPath := fmt.Errorf("%w: from version %d to version %d", ErrNoMigrationPath, current, target)

	//nolint:prealloc // plan size depends on the filter
	var plan []MigrationStep

	if target > current {
		for _, s := range steps {
			if s.From >= current && s.To <= target {
				plan = append(plan, s)
			}
		}
		sort.Slice(plan, func(i, j int) bool { return plan[i].From < plan[j].From })

		cursor := current
		for _, s := range plan {
			if s.From != cursor {
				return nil, noPath
			}
			cursor = s.To
		}
		if cursor != target {
			return nil, noPath
		}
		return plan, nil
	}

	// Downgrade: a forward step (From, To) is undone at version To,
	// landing back on From.
	for _, s := range steps {
		if s.To <= current && s.From >= target {
			plan = append(plan, s)
		}
	}
	sort.Slice(plan, func(i, j int) bool { return plan[i].To > plan[j].To })

	cursor := current
	for _, s := range plan {
		if s.To != cursor {
			return nil, noPath
		}
		cursor = s.From
	}
	if cursor != target {
		return nil, noPath
	}
	return plan, nil
}

// PathDirection returns the direction a (current, target) pair implies.
func PathDirection(current, target int) MigrationDirection {
	if target < current {
		return MigrationBackward
	}
	return MigrationForward
}
