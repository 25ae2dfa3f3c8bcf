package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// gateRecycleRef rejects recycle writes that reference a missing schedule.
// Returns false after writing the response when the request must not proceed.
func (h *RecyclingHandler) gateRecycleRef(c echo.Context, scheduleID string) bool {
	ok, err := h.Schedules.Exists(c.Request().Context(), scheduleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		return false
	}
	if !ok {
		c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		return false
	}
	return true
}

// CreateRecycle handles POST /recycles.
func (h *RecyclingHandler) CreateRecycle(c echo.Context) error {
	var body struct {
		Type       string    `json:"type"`
		Quantity   float64   `json:"quantity"`
		Date       time.Time `json:"date"`
		ScheduleID string    `json:"schedule_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Type) == "" || strings.TrimSpace(body.ScheduleID) == "" || body.Date.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type, date and schedule_id are required"})
	}
	if !h.gateRecycleRef(c, body.ScheduleID) {
		return nil
	}
	rec := &repository.Recycle{
		Type:       body.Type,
		Quantity:   body.Quantity,
		Date:       body.Date,
		ScheduleID: body.ScheduleID,
	}
	if err := h.Recycles.Create(c.Request().Context(), rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create recycling log"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// ListRecycles handles GET /recycles.
func (h *RecyclingHandler) ListRecycles(c echo.Context) error {
	items, err := h.Recycles.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// ListRecyclesPaged handles GET /recycles/all?skip=&limit=.
func (h *RecyclingHandler) ListRecyclesPaged(c echo.Context) error {
	skip, limit := pageParams(c)
	ctx := c.Request().Context()
	total, err := h.Recycles.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.Recycles.ListPage(ctx, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total})
}

// GetRecycle handles GET /recycles/:id.
func (h *RecyclingHandler) GetRecycle(c echo.Context) error {
	rec, err := h.Recycles.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRecycleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recycling log not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, rec)
}

// UpdateRecycle handles PUT /recycles/:id. When the patch moves the log to a
// different schedule the new schedule must exist.
func (h *RecyclingHandler) UpdateRecycle(c echo.Context) error {
	var body struct {
		Type       *string    `json:"type"`
		Quantity   *float64   `json:"quantity"`
		Date       *time.Time `json:"date"`
		ScheduleID *string    `json:"schedule_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ScheduleID != nil && !h.gateRecycleRef(c, *body.ScheduleID) {
		return nil
	}
	rec, err := h.Recycles.Update(c.Request().Context(), c.Param("id"), repository.RecyclePatch{
		Type:       body.Type,
		Quantity:   body.Quantity,
		Date:       body.Date,
		ScheduleID: body.ScheduleID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrRecycleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recycling log not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, rec)
}

// DeleteRecycle handles DELETE /recycles/:id, echoing the deleted row.
func (h *RecyclingHandler) DeleteRecycle(c echo.Context) error {
	rec, err := h.Recycles.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRecycleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recycling log not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, rec)
}

// DeleteAllRecycles handles DELETE /recycles.
func (h *RecyclingHandler) DeleteAllRecycles(c echo.Context) error {
	if err := h.Recycles.DeleteAll(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
