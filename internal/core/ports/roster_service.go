package ports

import (
	"context"

	"github.com/quarterlane/networking-api/internal/core/domain"
)

// UploadResult summarises one CSV ingestion run.
type UploadResult struct {
	// Inserted counts rows stored as new employees.
	Inserted int
	// Duplicates counts rows skipped because the (name, location) pair
	// already existed, either in the store or earlier in the same file.
	Duplicates int
	// Skipped counts malformed rows (fewer than two fields) and blank lines.
	Skipped int
}

// RenameEmployeeInput identifies one employee and its new name.
type RenameEmployeeInput struct {
	Location string
	OldName  string
	NewName  string
}

// RenameEmployeeResult reports how many documents each step touched.
type RenameEmployeeResult struct {
	SelectionsUpdated int64
}

// TargetedDeleteResult carries the per-collection counts of a
// delete-by-username-and-location run.
type TargetedDeleteResult struct {
	SelectionsDeleted int64
	EmployeesDeleted  int64
}

// RosterService covers employee roster management: listing, CSV ingestion,
// rename with propagation and the destructive maintenance operations.
type RosterService interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	ListLocations(ctx context.Context) ([]string, error)
	// IngestCSV parses raw CSV content (header line plus name,location rows)
	// and inserts rows not already present. The choice parameter only takes
	// effect with the value "Set"; any other value is a no-op.
	IngestCSV(ctx context.Context, content, choice string) (*UploadResult, error)
	// RenameEmployee renames the matching employee and propagates the new
	// name to every selection referencing the old one.
	RenameEmployee(ctx context.Context, input RenameEmployeeInput) (*RenameEmployeeResult, error)
	// DeleteAllEmployees wipes the roster and returns the removed count.
	DeleteAllEmployees(ctx context.Context) (int64, error)
	// DeleteByUserAndLocation removes the user's selections at a location and
	// any employee whose name equals that username at that location.
	DeleteByUserAndLocation(ctx context.Context, username, location string) (*TargetedDeleteResult, error)
}
