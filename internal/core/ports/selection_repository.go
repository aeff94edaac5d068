package ports

import (
	"context"
	"time"

	"github.com/quarterlane/networking-api/internal/core/domain"
)

// SelectionRepository defines persistence operations for selections and their
// per-quarter claim markers.
type SelectionRepository interface {
	// ClaimEvent inserts the claim marker for (userName, location,
	// quarterStart). It returns domain.ErrAlreadyChosen when the marker
	// already exists; the unique index underneath makes this a single
	// conditional write, so two concurrent requests cannot both succeed.
	ClaimEvent(ctx context.Context, event domain.SelectionEvent) error
	// ReleaseEvent removes a previously claimed marker so the quarter can be
	// chosen again. Used to roll back a claim whose batch insert failed.
	ReleaseEvent(ctx context.Context, event domain.SelectionEvent) error
	// InsertBatch stores one selection batch in a single bulk write.
	InsertBatch(ctx context.Context, selections []domain.Selection) error
	// FindByQuarter returns all selections whose quarterStart equals the
	// given value exactly.
	FindByQuarter(ctx context.Context, quarterStart time.Time) ([]domain.Selection, error)
	// DistinctQuarters returns the distinct quarterStart values present.
	DistinctQuarters(ctx context.Context) ([]time.Time, error)
	// RenameEmployee updates the employee field on every selection matching
	// (location, employee=oldName) and returns the number touched.
	RenameEmployee(ctx context.Context, location, oldName, newName string) (int64, error)
	// DeleteAll wipes selections and claim markers; the returned count covers
	// selections only.
	DeleteAll(ctx context.Context) (int64, error)
	// DeleteByUserAndLocation removes selections (and claim markers) for the
	// given user and location, returning the selection count.
	DeleteByUserAndLocation(ctx context.Context, userName, location string) (int64, error)
}
