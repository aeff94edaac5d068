package ports

import (
	"context"

	"github.com/quarterlane/networking-api/internal/core/domain"
)

// EmployeeRepository defines persistence operations for the employee roster.
type EmployeeRepository interface {
	// FindAll returns every employee document.
	FindAll(ctx context.Context) ([]domain.Employee, error)
	// FindByLocation returns all employees at the given location.
	FindByLocation(ctx context.Context, location string) ([]domain.Employee, error)
	// Exists reports whether an employee with this exact (name, location)
	// pair is already stored.
	Exists(ctx context.Context, name, location string) (bool, error)
	Insert(ctx context.Context, e domain.Employee) error
	// DistinctLocations returns the distinct location values in the roster.
	DistinctLocations(ctx context.Context) ([]string, error)
	// Rename sets the name of the employee matching (location, oldName).
	Rename(ctx context.Context, location, oldName, newName string) error
	// DeleteAll wipes the roster and returns the number of removed documents.
	DeleteAll(ctx context.Context) (int64, error)
	// DeleteByNameAndLocation removes employees matching exactly and returns
	// the number of removed documents.
	DeleteByNameAndLocation(ctx context.Context, name, location string) (int64, error)
}
