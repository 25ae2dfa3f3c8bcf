package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// CreateSchedule handles POST /schedules for the recycling subsystem.
func (h *RecyclingHandler) CreateSchedule(c echo.Context) error {
	var body struct {
		Day       string    `json:"day"`
		Time      time.Time `json:"time"`
		Frequency string    `json:"frequency"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Day) == "" || strings.TrimSpace(body.Frequency) == "" || body.Time.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day, time and frequency are required"})
	}
	s := &repository.Schedule{Day: body.Day, Time: body.Time, Frequency: body.Frequency}
	if err := h.Schedules.Create(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create schedule"})
	}
	return c.JSON(http.StatusCreated, s)
}

// ListSchedules handles GET /schedules.
func (h *RecyclingHandler) ListSchedules(c echo.Context) error {
	items, err := h.Schedules.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// ListSchedulesPaged handles GET /schedules/all?skip=&limit=. Total is a
// full-table count taken as a separate statement from the page fetch.
func (h *RecyclingHandler) ListSchedulesPaged(c echo.Context) error {
	skip, limit := pageParams(c)
	ctx := c.Request().Context()
	total, err := h.Schedules.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items, err := h.Schedules.ListPage(ctx, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": total})
}

// GetSchedule handles GET /schedules/:id.
func (h *RecyclingHandler) GetSchedule(c echo.Context) error {
	s, err := h.Schedules.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, s)
}

// UpdateSchedule handles PUT /schedules/:id with partial semantics.
func (h *RecyclingHandler) UpdateSchedule(c echo.Context) error {
	var body struct {
		Day       *string    `json:"day"`
		Time      *time.Time `json:"time"`
		Frequency *string    `json:"frequency"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s, err := h.Schedules.Update(c.Request().Context(), c.Param("id"), repository.SchedulePatch{
		Day:       body.Day,
		Time:      body.Time,
		Frequency: body.Frequency,
	})
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteSchedule handles DELETE /schedules/:id. The recycling subsystem
// echoes deleted rows in the response and writes no audit entry.
func (h *RecyclingHandler) DeleteSchedule(c echo.Context) error {
	s, err := h.Schedules.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteAllSchedules handles DELETE /schedules.
func (h *RecyclingHandler) DeleteAllSchedules(c echo.Context) error {
	if err := h.Schedules.DeleteAll(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
