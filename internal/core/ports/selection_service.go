package ports

import (
	"context"
	"time"

	"github.com/quarterlane/networking-api/internal/core/domain"
)

// ChooseInput carries the parameters of one choose-and-store request.
type ChooseInput struct {
	UserName string
	Location string
	Count    int
}

// ChooseResult is returned by ChooseAndStore. When AlreadyChosen is true the
// request was an idempotent replay and Selections is nil.
type ChooseResult struct {
	Selections    []domain.Selection
	QuarterStart  time.Time
	AlreadyChosen bool
}

// SelectionService covers the quarterly selection use cases.
type SelectionService interface {
	// ChooseAndStore draws min(Count, available) employees uniformly at
	// random without replacement from the roster at Location and persists one
	// selection per drawn employee, all keyed to the current quarter. At most
	// one batch per (UserName, Location, quarter) is ever created.
	ChooseAndStore(ctx context.Context, input ChooseInput) (*ChooseResult, error)
	// ListByQuarter returns the selections stored with exactly this
	// quarterStart.
	ListByQuarter(ctx context.Context, quarterStart time.Time) ([]domain.Selection, error)
	// ListQuarters returns the distinct quarter start dates, formatted
	// YYYY-MM-DD in ascending order.
	ListQuarters(ctx context.Context) ([]string, error)
	// DeleteAllSelections wipes selections and returns the removed count.
	DeleteAllSelections(ctx context.Context) (int64, error)
}
