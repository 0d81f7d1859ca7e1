package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lifetrack/stress-tracking-api/internal/core/domain"
	"github.com/lifetrack/stress-tracking-api/internal/core/ports"
)

// EntryHandler handles HTTP requests for daily entry operations.
type EntryHandler struct {
	service ports.EntryService
}

func NewEntryHandler(service ports.EntryService) *EntryHandler {
	return &EntryHandler{service: service}
}

// Create handles POST /v1/entries — the orchestrated create.
//
// @Summary      Submit a daily entry and request a stress prediction
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      entryRequest  true  "Daily observation"
// @Success      201   {object}  createEntryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/entries [post]
func (h *EntryHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input, err := toEntryInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "date must be a valid calendar date")
	}

	result, err := h.service.Create(c.Request().Context(), userID, input)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, ve.Error())
		}
		return err
	}

	return c.JSON(http.StatusCreated, createEntryResponse{
		Entry:            toEntryResponse(result.Entry),
		Prediction:       toPredictionResponse(result.Prediction),
		PredictionStatus: result.PredictionStatus,
	})
}

// List handles GET /v1/entries — all entries of the caller, insertion order.
//
// @Summary      List the caller's entries
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listEntriesResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/entries [get]
func (h *EntryHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	entries, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	data := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, toEntryResponse(e))
	}
	return c.JSON(http.StatusOK, listEntriesResponse{Data: data})
}

// Get handles GET /v1/entries/:id.
//
// @Summary      Get one entry by id
// @Tags         entries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry id"
// @Success      200  {object}  entryResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/entries/{id} [get]
func (h *EntryHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	entry, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return mapEntryError(c, err)
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Update handles PUT /v1/entries/:id — full replacement of the entry fields.
//
// @Summary      Replace an entry
// @Tags         entries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Entry id"
// @Param        body  body      entryRequest  true  "Replacement observation"
// @Success      200   {object}  entryResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/entries/{id} [put]
func (h *EntryHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req entryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input, err := toEntryInput(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "date must be a valid calendar date")
	}

	entry, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), input)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, ve.Error())
		}
		return mapEntryError(c, err)
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Delete handles DELETE /v1/entries/:id.
//
// @Summary      Delete an entry
// @Tags         entries
// @Security     BearerAuth
// @Param        id  path  string  true  "Entry id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/entries/{id} [delete]
func (h *EntryHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return mapEntryError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// mapEntryError renders the ownership/existence outcomes. Forbidden and
// not-found stay distinct: a non-owner probing a real id must see 403.
func mapEntryError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrEntryNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "entry not found"})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
	}
	return err
}

// toEntryInput maps the HTTP request to the service DTO.
func toEntryInput(r entryRequest) (ports.EntryInput, error) {
	date, err := time.ParseInLocation(dateLayout, r.Date, time.UTC)
	if err != nil {
		return ports.EntryInput{}, err
	}
	return ports.EntryInput{
		Date:             date,
		SleepHours:       r.SleepHours,
		WorkoutIntensity: r.WorkoutIntensity,
		SupplementIntake: r.SupplementIntake,
		ScreenTime:       r.ScreenTime,
		StressLevel:      r.StressLevel,
	}, nil
}
