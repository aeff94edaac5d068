package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quarterlane/networking-api/internal/core/domain"
	"github.com/quarterlane/networking-api/internal/core/ports"
)

// choiceIngest is the only upload choice that triggers ingestion; anything
// else is accepted and ignored, matching the behaviour the frontend relies on.
const choiceIngest = "Set"

type rosterService struct {
	employees  ports.EmployeeRepository
	selections ports.SelectionRepository
	log        zerolog.Logger
}

// NewRosterService returns a RosterService backed by the given repositories.
func NewRosterService(
	employees ports.EmployeeRepository,
	selections ports.SelectionRepository,
	log zerolog.Logger,
) ports.RosterService {
	return &rosterService{employees: employees, selections: selections, log: log}
}

func (s *rosterService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.employees.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (s *rosterService) ListLocations(ctx context.Context) ([]string, error) {
	locations, err := s.employees.DistinctLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

// IngestCSV parses the uploaded content line by line: the first line is a
// header and is discarded, each remaining line contributes its first two
// comma-separated fields as (name, location). Rows already present are
// skipped silently; rows with fewer than two fields are counted and skipped.
func (s *rosterService) IngestCSV(ctx context.Context, content, choice string) (*ports.UploadResult, error) {
	result := &ports.UploadResult{}

	if choice != choiceIngest {
		s.log.Debug().Str("choice", choice).Msg("upload choice does not trigger ingestion")
		return result, nil
	}

	lines := strings.Split(strings.TrimRight(content, "\r\n"), "\n")
	if len(lines) <= 1 {
		return result, nil
	}

	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			result.Skipped++
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			s.log.Warn().Str("row", line).Msg("skipping malformed csv row")
			result.Skipped++
			continue
		}

		name := strings.TrimSpace(fields[0])
		location := strings.TrimSpace(fields[1])

		exists, err := s.employees.Exists(ctx, name, location)
		if err != nil {
			return nil, fmt.Errorf("check employee: %w", err)
		}
		if exists {
			result.Duplicates++
			continue
		}

		if err := s.employees.Insert(ctx, domain.Employee{Name: name, Location: location}); err != nil {
			return nil, fmt.Errorf("insert employee: %w", err)
		}
		result.Inserted++
	}

	s.log.Info().
		Int("inserted", result.Inserted).
		Int("duplicates", result.Duplicates).
		Int("skipped", result.Skipped).
		Msg("csv ingested")

	return result, nil
}

// RenameEmployee updates the roster entry, then propagates the new name to
// every selection referencing the old one. The two updates are sequential and
// not transactional; when the second fails the error carries enough context
// to repair the selections by hand.
func (s *rosterService) RenameEmployee(ctx context.Context, in ports.RenameEmployeeInput) (*ports.RenameEmployeeResult, error) {
	if in.Location == "" || in.OldName == "" || in.NewName == "" {
		return nil, fmt.Errorf("%w: location, oldName, or newName is missing", domain.ErrInvalidRequest)
	}

	if err := s.employees.Rename(ctx, in.Location, in.OldName, in.NewName); err != nil {
		return nil, fmt.Errorf("rename employee: %w", err)
	}

	updated, err := s.selections.RenameEmployee(ctx, in.Location, in.OldName, in.NewName)
	if err != nil {
		s.log.Error().Err(err).
			Str("location", in.Location).
			Str("old_name", in.OldName).
			Str("new_name", in.NewName).
			Msg("employee renamed but selection propagation failed")
		return nil, fmt.Errorf("propagate rename to selections (employee already renamed): %w", err)
	}

	s.log.Info().
		Str("location", in.Location).
		Str("old_name", in.OldName).
		Str("new_name", in.NewName).
		Int64("selections_updated", updated).
		Msg("employee renamed")

	return &ports.RenameEmployeeResult{SelectionsUpdated: updated}, nil
}

func (s *rosterService) DeleteAllEmployees(ctx context.Context) (int64, error) {
	deleted, err := s.employees.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete employees: %w", err)
	}
	s.log.Info().Int64("deleted", deleted).Msg("roster wiped")
	return deleted, nil
}

// DeleteByUserAndLocation runs two independent deletes: selections keyed by
// (userName, location) and roster entries keyed by (name=username, location).
func (s *rosterService) DeleteByUserAndLocation(ctx context.Context, username, location string) (*ports.TargetedDeleteResult, error) {
	if username == "" || location == "" {
		return nil, fmt.Errorf("%w: username or location is missing", domain.ErrInvalidRequest)
	}

	selectionsDeleted, err := s.selections.DeleteByUserAndLocation(ctx, username, location)
	if err != nil {
		return nil, fmt.Errorf("delete selections: %w", err)
	}

	employeesDeleted, err := s.employees.DeleteByNameAndLocation(ctx, username, location)
	if err != nil {
		s.log.Error().Err(err).
			Str("username", username).
			Str("location", location).
			Int64("selections_deleted", selectionsDeleted).
			Msg("selections deleted but employee delete failed")
		return nil, fmt.Errorf("delete employees (selections already deleted): %w", err)
	}

	return &ports.TargetedDeleteResult{
		SelectionsDeleted: selectionsDeleted,
		EmployeesDeleted:  employeesDeleted,
	}, nil
}
