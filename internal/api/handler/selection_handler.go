package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quarterlane/networking-api/internal/api/metrics"
	"github.com/quarterlane/networking-api/internal/core/domain"
	"github.com/quarterlane/networking-api/internal/core/ports"
)

// SelectionHandler serves the quarterly selection endpoints.
type SelectionHandler struct {
	selections ports.SelectionService
}

func NewSelectionHandler(selections ports.SelectionService) *SelectionHandler {
	return &SelectionHandler{selections: selections}
}

// Choose handles POST /chooseAndStoreEmployees: draws a random selection for
// the current quarter. Replays within the same quarter answer 200 without
// creating records; a fresh batch answers 201 with the created selections.
//
// @Summary      Choose and store employees for the current quarter
// @Tags         selections
// @Accept       json
// @Produce      json
// @Param        body  body      chooseRequest  true  "Selection request"
// @Success      200  {object}  messageResponse
// @Success      201  {array}   selectionResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /chooseAndStoreEmployees [post]
func (h *SelectionHandler) Choose(c echo.Context) error {
	var req chooseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	count := 1
	if req.NumEmployeesToChoose != nil {
		count = *req.NumEmployeesToChoose
	}

	userName := req.UserName
	if userName == "" {
		// Fall back to the session identity when the caller is logged in.
		userName, _ = c.Get("username").(string)
	}

	result, err := h.selections.ChooseAndStore(c.Request().Context(), ports.ChooseInput{
		UserName: userName,
		Location: req.Location,
		Count:    count,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			metrics.ChooseRequestsTotal.WithLabelValues("invalid").Inc()
		case errors.Is(err, domain.ErrNoEmployeesAtLocation):
			metrics.ChooseRequestsTotal.WithLabelValues("no_employees").Inc()
		}
		return err
	}

	if result.AlreadyChosen {
		metrics.ChooseRequestsTotal.WithLabelValues("already_chosen").Inc()
		return c.JSON(http.StatusOK, messageResponse{
			Message: "You have already chosen for this quarter and location",
		})
	}

	metrics.ChooseRequestsTotal.WithLabelValues("created").Inc()
	metrics.SelectionsCreatedTotal.Add(float64(len(result.Selections)))

	return c.JSON(http.StatusCreated, toSelectionResponses(result.Selections))
}

// ListByQuarter handles GET /getListedEmployee?quarter=YYYY-MM-DD.
//
// @Summary      List selections for a quarter
// @Tags         selections
// @Produce      json
// @Param        quarter  query     string  true  "Quarter start date, YYYY-MM-DD"
// @Success      200  {array}   selectionResponse
// @Failure      400  {object}  errorResponse
// @Router       /getListedEmployee [get]
func (h *SelectionHandler) ListByQuarter(c echo.Context) error {
	quarter := c.QueryParam("quarter")
	if quarter == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request: quarter is missing")
	}

	quarterStart, err := domain.ParseQuarter(quarter)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid quarter %q, expected YYYY-MM-DD", quarter))
	}

	selections, err := h.selections.ListByQuarter(c.Request().Context(), quarterStart)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSelectionResponses(selections))
}

// Quarters handles GET /getDistinctQuarters.
//
// @Summary      List distinct quarter start dates
// @Tags         selections
// @Produce      json
// @Success      200  {array}   string
// @Failure      500  {object}  errorResponse
// @Router       /getDistinctQuarters [get]
func (h *SelectionHandler) Quarters(c echo.Context) error {
	quarters, err := h.selections.ListQuarters(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quarters)
}

// DeleteAll handles DELETE /deleteAllNetworking: wipes stored selections.
//
// @Summary      Delete all selections
// @Tags         selections
// @Produce      json
// @Success      200  {object}  deleteAllResponse
// @Router       /deleteAllNetworking [delete]
func (h *SelectionHandler) DeleteAll(c echo.Context) error {
	deleted, err := h.selections.DeleteAllSelections(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteAllResponse{
		Message: fmt.Sprintf("Deleted %d documents from 'selections' collection", deleted),
		Deleted: deleted,
	})
}

func toSelectionResponses(selections []domain.Selection) []selectionResponse {
	out := make([]selectionResponse, 0, len(selections))
	for _, s := range selections {
		out = append(out, selectionResponse{
			UserName:     s.UserName,
			Location:     s.Location,
			Employee:     s.Employee,
			QuarterStart: s.QuarterStart.UTC().Format(domain.QuarterDateFormat),
		})
	}
	return out
}
