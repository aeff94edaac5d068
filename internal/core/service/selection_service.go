package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/quarterlane/networking-api/internal/core/domain"
	"github.com/quarterlane/networking-api/internal/core/ports"
)

// DefaultUserName is used when a choose request carries no user name.
const DefaultUserName = "admin"

type selectionService struct {
	selections ports.SelectionRepository
	employees  ports.EmployeeRepository
	now        func() time.Time
	log        zerolog.Logger
}

// NewSelectionService returns a SelectionService backed by the given
// repositories. The clock defaults to time.Now and is injectable for tests.
func NewSelectionService(
	selections ports.SelectionRepository,
	employees ports.EmployeeRepository,
	log zerolog.Logger,
) ports.SelectionService {
	return &selectionService{
		selections: selections,
		employees:  employees,
		now:        time.Now,
		log:        log,
	}
}

// ChooseAndStore draws a uniform random sample of employees at a location and
// persists it keyed by (userName, location, quarterStart). Repeated calls
// within the same quarter are no-ops: the claim marker insert below is the
// single conditional write that decides the winner.
func (s *selectionService) ChooseAndStore(ctx context.Context, in ports.ChooseInput) (*ports.ChooseResult, error) {
	userName := in.UserName
	if userName == "" {
		userName = DefaultUserName
	}
	if in.Location == "" || in.Count <= 0 {
		return nil, fmt.Errorf("%w: user name, location, or number of employees to choose is missing or invalid", domain.ErrInvalidRequest)
	}

	quarterStart := domain.QuarterStart(s.now())

	// The roster is checked before anything is written: a request that fails
	// here must leave the quarter open so a retry can succeed.
	available, err := s.employees.FindByLocation(ctx, in.Location)
	if err != nil {
		return nil, fmt.Errorf("fetch employees: %w", err)
	}
	if len(available) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoEmployeesAtLocation, in.Location)
	}

	event := domain.SelectionEvent{
		UserName:     userName,
		Location:     in.Location,
		QuarterStart: quarterStart,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.selections.ClaimEvent(ctx, event); err != nil {
		if errors.Is(err, domain.ErrAlreadyChosen) {
			s.log.Info().
				Str("user", userName).
				Str("location", in.Location).
				Time("quarter_start", quarterStart).
				Msg("selection replay, quarter already claimed")
			return &ports.ChooseResult{QuarterStart: quarterStart, AlreadyChosen: true}, nil
		}
		return nil, fmt.Errorf("claim quarter: %w", err)
	}

	chosen := sample(available, in.Count)

	batch := make([]domain.Selection, 0, len(chosen))
	for _, e := range chosen {
		batch = append(batch, domain.Selection{
			UserName:     userName,
			Location:     in.Location,
			Employee:     e.Name,
			QuarterStart: quarterStart,
		})
	}

	if err := s.selections.InsertBatch(ctx, batch); err != nil {
		s.log.Error().Err(err).Str("user", userName).Str("location", in.Location).Msg("failed to store selection batch")
		// Give the claim back so a retry can produce the batch.
		if relErr := s.selections.ReleaseEvent(ctx, event); relErr != nil {
			s.log.Error().Err(relErr).
				Str("user", userName).
				Str("location", in.Location).
				Time("quarter_start", quarterStart).
				Msg("claim marker left behind after failed batch insert")
		}
		return nil, fmt.Errorf("store selections: %w", err)
	}

	s.log.Info().
		Str("user", userName).
		Str("location", in.Location).
		Int("chosen", len(batch)).
		Time("quarter_start", quarterStart).
		Msg("selection batch stored")

	return &ports.ChooseResult{Selections: batch, QuarterStart: quarterStart}, nil
}

// sample returns min(count, len(pool)) employees drawn uniformly at random
// without replacement.
func sample(pool []domain.Employee, count int) []domain.Employee {
	shuffled := make([]domain.Employee, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

func (s *selectionService) ListByQuarter(ctx context.Context, quarterStart time.Time) ([]domain.Selection, error) {
	selections, err := s.selections.FindByQuarter(ctx, quarterStart)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return selections, nil
}

func (s *selectionService) ListQuarters(ctx context.Context) ([]string, error) {
	quarters, err := s.selections.DistinctQuarters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quarters: %w", err)
	}

	formatted := make([]string, 0, len(quarters))
	for _, q := range quarters {
		formatted = append(formatted, q.UTC().Format(domain.QuarterDateFormat))
	}
	sort.Strings(formatted)
	return formatted, nil
}

func (s *selectionService) DeleteAllSelections(ctx context.Context) (int64, error) {
	deleted, err := s.selections.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete selections: %w", err)
	}
	s.log.Info().Int64("deleted", deleted).Msg("selections wiped")
	return deleted, nil
}
