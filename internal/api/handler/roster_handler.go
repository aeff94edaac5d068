package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quarterlane/networking-api/internal/api/metrics"
	"github.com/quarterlane/networking-api/internal/core/ports"
)

// RosterHandler serves the employee roster endpoints.
type RosterHandler struct {
	roster ports.RosterService
}

func NewRosterHandler(roster ports.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// List handles GET /getEmployee.
//
// @Summary      List all employees
// @Tags         roster
// @Produce      json
// @Success      200  {array}   domain.Employee
// @Failure      500  {object}  errorResponse
// @Router       /getEmployee [get]
func (h *RosterHandler) List(c echo.Context) error {
	employees, err := h.roster.ListEmployees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employees)
}

// Locations handles GET /getLocations.
//
// @Summary      List distinct employee locations
// @Tags         roster
// @Produce      json
// @Success      200  {array}   string
// @Failure      500  {object}  errorResponse
// @Router       /getLocations [get]
func (h *RosterHandler) Locations(c echo.Context) error {
	locations, err := h.roster.ListLocations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locations)
}

// Upload handles POST /upload: multipart form with a "file" part holding the
// CSV and a "choice" field; only choice=Set triggers ingestion.
//
// @Summary      Upload an employee CSV
// @Tags         roster
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true  "CSV file, header line plus name,location rows"
// @Param        choice  formData  string  true  "Ingestion mode; only Set stores rows"
// @Success      200  {object}  uploadResponse
// @Failure      400  {object}  errorResponse
// @Router       /upload [post]
func (h *RosterHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request: file is missing")
	}
	choice := c.FormValue("choice")
	if choice == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request: choice is missing")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	result, err := h.roster.IngestCSV(c.Request().Context(), string(content), choice)
	if err != nil {
		return err
	}

	metrics.RowsIngestedTotal.WithLabelValues("inserted").Add(float64(result.Inserted))
	metrics.RowsIngestedTotal.WithLabelValues("duplicate").Add(float64(result.Duplicates))
	metrics.RowsIngestedTotal.WithLabelValues("skipped").Add(float64(result.Skipped))

	return c.JSON(http.StatusOK, uploadResponse{
		Message:    "CSV data uploaded successfully",
		Inserted:   result.Inserted,
		Duplicates: result.Duplicates,
		Skipped:    result.Skipped,
	})
}

// Update handles POST /updateEmployee: renames an employee and propagates
// the new name to stored selections.
//
// @Summary      Rename an employee
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        body  body      updateEmployeeRequest  true  "Rename request"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Router       /updateEmployee [post]
func (h *RosterHandler) Update(c echo.Context) error {
	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.roster.RenameEmployee(c.Request().Context(), ports.RenameEmployeeInput{
		Location: req.Location,
		OldName:  req.OldName,
		NewName:  req.NewName,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Employee updated successfully"})
}

// DeleteAll handles DELETE /deleteAll: wipes the employees collection.
//
// @Summary      Delete all employees
// @Tags         roster
// @Produce      json
// @Success      200  {object}  deleteAllResponse
// @Router       /deleteAll [delete]
func (h *RosterHandler) DeleteAll(c echo.Context) error {
	deleted, err := h.roster.DeleteAllEmployees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteAllResponse{
		Message: fmt.Sprintf("Deleted %d documents from 'employees' collection", deleted),
		Deleted: deleted,
	})
}

// DeleteByUserAndLocation handles DELETE /deleteByUsernameAndLocation.
//
// @Summary      Delete a user's selections and roster entry at a location
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        body  body      deleteByUserRequest  true  "Target user and location"
// @Success      200  {object}  deleteByUserResponse
// @Failure      400  {object}  errorResponse
// @Router       /deleteByUsernameAndLocation [delete]
func (h *RosterHandler) DeleteByUserAndLocation(c echo.Context) error {
	var req deleteByUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.roster.DeleteByUserAndLocation(c.Request().Context(), req.Username, req.Location)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteByUserResponse{
		Message: fmt.Sprintf(
			"Deleted %d documents from 'selections' collection and %d documents from 'employees' collection for username: %s and location: %s",
			result.SelectionsDeleted, result.EmployeesDeleted, req.Username, req.Location,
		),
		SelectionsDeleted: result.SelectionsDeleted,
		EmployeesDeleted:  result.EmployeesDeleted,
	})
}
