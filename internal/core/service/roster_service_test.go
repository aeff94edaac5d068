package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quarterlane/networking-api/internal/core/domain"
	"github.com/quarterlane/networking-api/internal/core/ports"
)

func newTestRosterService(emp *stubEmployeeRepo, sel *stubSelectionRepo) ports.RosterService {
	return NewRosterService(emp, sel, discardLogger)
}

// ---------------------------------------------------------------------------
// CSV ingestion
// ---------------------------------------------------------------------------

func TestIngestCSV_InsertsRows(t *testing.T) {
	emp := &stubEmployeeRepo{}
	svc := newTestRosterService(emp, newStubSelectionRepo())

	csv := "name,location\nAlice,NYC\nBob,SF\n"
	result, err := svc.IngestCSV(context.Background(), csv, "Set")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", result.Inserted)
	}
	if len(emp.employees) != 2 {
		t.Fatalf("expected 2 stored employees, got %d", len(emp.employees))
	}
	if emp.employees[0].Name != "Alice" || emp.employees[0].Location != "NYC" {
		t.Errorf("unexpected first employee: %+v", emp.employees[0])
	}
}

func TestIngestCSV_SkipsExistingDuplicates(t *testing.T) {
	emp := &stubEmployeeRepo{employees: []domain.Employee{{Name: "Alice", Location: "NYC"}}}
	svc := newTestRosterService(emp, newStubSelectionRepo())

	result, err := svc.IngestCSV(context.Background(), "name,location\nAlice,NYC\n", "Set")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 0 || result.Duplicates != 1 {
		t.Fatalf("expected 0 inserted / 1 duplicate, got %d / %d", result.Inserted, result.Duplicates)
	}
	if len(emp.employees) != 1 {
		t.Fatalf("duplicate row must not create a second record, have %d", len(emp.employees))
	}
}

func TestIngestCSV_DedupesWithinFile(t *testing.T) {
	emp := &stubEmployeeRepo{}
	svc := newTestRosterService(emp, newStubSelectionRepo())

	csv := "name,location\nAlice,NYC\nAlice,NYC\n"
	result, err := svc.IngestCSV(context.Background(), csv, "Set")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 1 || result.Duplicates != 1 {
		t.Fatalf("expected 1 inserted / 1 duplicate, got %d / %d", result.Inserted, result.Duplicates)
	}
	if len(emp.employees) != 1 {
		t.Fatalf("expected at most one stored record, got %d", len(emp.employees))
	}
}

func TestIngestCSV_SameNameDifferentLocation(t *testing.T) {
	emp := &stubEmployeeRepo{}
	svc := newTestRosterService(emp, newStubSelectionRepo())

	result, err := svc.IngestCSV(context.Background(), "name,location\nAlice,NYC\nAlice,SF\n", "Set")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 2 {
		t.Fatalf("distinct (name, location) pairs must both insert, got %d", result.Inserted)
	}
}

func TestIngestCSV_SkipsMalformedAndBlankRows(t *testing.T) {
	emp := &stubEmployeeRepo{}
	svc := newTestRosterService(emp, newStubSelectionRepo())

	csv := "name,location\nAlice,NYC\njustonefield\n\nBob,SF,extra\n"
	result, err := svc.IngestCSV(context.Background(), csv, "Set")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 2 {
		t.Fatalf("expected 2 inserted (extra fields ignored), got %d", result.Inserted)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped (short row + blank line), got %d", result.Skipped)
	}
}

func TestIngestCSV_OtherChoiceIsNoOp(t *testing.T) {
	emp := &stubEmployeeRepo{}
	svc := newTestRosterService(emp, newStubSelectionRepo())

	result, err := svc.IngestCSV(context.Background(), "name,location\nAlice,NYC\n", "Preview")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 0 || len(emp.employees) != 0 {
		t.Fatalf("choice other than Set must not ingest, got %+v", result)
	}
}

// ---------------------------------------------------------------------------
// Rename propagation
// ---------------------------------------------------------------------------

func TestRenameEmployee_PropagatesToSelections(t *testing.T) {
	emp := &stubEmployeeRepo{employees: []domain.Employee{
		{Name: "Alice", Location: "NYC"},
		{Name: "Alice", Location: "SF"},
	}}
	sel := newStubSelectionRepo()
	q := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	sel.selections = []domain.Selection{
		{UserName: "u1", Location: "NYC", Employee: "Alice", QuarterStart: q},
		{UserName: "u2", Location: "NYC", Employee: "Alice", QuarterStart: q},
		{UserName: "u1", Location: "SF", Employee: "Alice", QuarterStart: q},
	}
	svc := newTestRosterService(emp, sel)

	result, err := svc.RenameEmployee(context.Background(), ports.RenameEmployeeInput{
		Location: "NYC", OldName: "Alice", NewName: "Alicia",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SelectionsUpdated != 2 {
		t.Fatalf("expected 2 selections updated, got %d", result.SelectionsUpdated)
	}

	if emp.employees[0].Name != "Alicia" {
		t.Errorf("NYC roster entry not renamed: %+v", emp.employees[0])
	}
	if emp.employees[1].Name != "Alice" {
		t.Errorf("SF roster entry must stay untouched: %+v", emp.employees[1])
	}
	for _, s := range sel.selections {
		if s.Location == "NYC" && s.Employee != "Alicia" {
			t.Errorf("NYC selection not propagated: %+v", s)
		}
		if s.Location == "SF" && s.Employee != "Alice" {
			t.Errorf("SF selection must stay untouched: %+v", s)
		}
	}
}

func TestRenameEmployee_MissingFields(t *testing.T) {
	svc := newTestRosterService(&stubEmployeeRepo{}, newStubSelectionRepo())

	_, err := svc.RenameEmployee(context.Background(), ports.RenameEmployeeInput{Location: "NYC", OldName: "Alice"})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Deletes and listings
// ---------------------------------------------------------------------------

func TestDeleteByUserAndLocation_ReturnsBothCounts(t *testing.T) {
	emp := &stubEmployeeRepo{employees: []domain.Employee{
		{Name: "pedro", Location: "NYC"},
		{Name: "ana", Location: "NYC"},
	}}
	sel := newStubSelectionRepo()
	q := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	sel.selections = []domain.Selection{
		{UserName: "pedro", Location: "NYC", Employee: "ana", QuarterStart: q},
		{UserName: "pedro", Location: "SF", Employee: "ana", QuarterStart: q},
	}
	svc := newTestRosterService(emp, sel)

	result, err := svc.DeleteByUserAndLocation(context.Background(), "pedro", "NYC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SelectionsDeleted != 1 || result.EmployeesDeleted != 1 {
		t.Fatalf("expected 1/1 deleted, got %d/%d", result.SelectionsDeleted, result.EmployeesDeleted)
	}
	if len(sel.selections) != 1 || sel.selections[0].Location != "SF" {
		t.Errorf("only the NYC selection should be removed: %+v", sel.selections)
	}
}

func TestDeleteByUserAndLocation_MissingFields(t *testing.T) {
	svc := newTestRosterService(&stubEmployeeRepo{}, newStubSelectionRepo())
	if _, err := svc.DeleteByUserAndLocation(context.Background(), "", "NYC"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestListLocations_Distinct(t *testing.T) {
	emp := &stubEmployeeRepo{employees: []domain.Employee{
		{Name: "a", Location: "NYC"},
		{Name: "b", Location: "NYC"},
		{Name: "c", Location: "SF"},
	}}
	svc := newTestRosterService(emp, newStubSelectionRepo())

	locations, err := svc.ListLocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("expected 2 distinct locations, got %v", locations)
	}
}
