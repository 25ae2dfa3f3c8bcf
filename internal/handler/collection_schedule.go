package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// gateScheduleRefs verifies that both rows a collection schedule references
// are present. It writes the 404 response itself and reports whether the
// caller may proceed. Collection schedules carry two foreign keys and the
// gate applies at create, update and delete time.
func (h *CollectionHandler) gateScheduleRefs(c echo.Context, wasteTypeID, pointID int64) (ok bool, err error) {
	ctx := c.Request().Context()
	found, err := h.WasteTypes.Exists(ctx, wasteTypeID)
	if err != nil {
		return false, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !found {
		return false, c.JSON(http.StatusNotFound, echo.Map{"error": "waste type not found"})
	}
	found, err = h.Points.Exists(ctx, pointID)
	if err != nil {
		return false, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !found {
		return false, c.JSON(http.StatusNotFound, echo.Map{"error": "collection point not found"})
	}
	return true, nil
}

// CreateCollectionSchedule handles POST /collection-schedules. Both
// referenced rows must exist before the insert runs.
func (h *CollectionHandler) CreateCollectionSchedule(c echo.Context) error {
	var body struct {
		CollectionPointID int64  `json:"collection_point_id"`
		WasteTypeID       int64  `json:"waste_type_id"`
		Schedule          string `json:"schedule"`
		StartDate         string `json:"start_date"`
		EndDate           string `json:"end_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Schedule) == "" || body.StartDate == "" || body.EndDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "schedule, start_date and end_date are required"})
	}
	if ok, err := h.gateScheduleRefs(c, body.WasteTypeID, body.CollectionPointID); !ok {
		return err
	}
	s := &repository.CollectionSchedule{
		CollectionPointID: body.CollectionPointID,
		WasteTypeID:       body.WasteTypeID,
		Schedule:          body.Schedule,
		StartDate:         body.StartDate,
		EndDate:           body.EndDate,
	}
	if err := h.Schedules.Create(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create collection schedule"})
	}
	return c.JSON(http.StatusCreated, s)
}

// ListCollectionSchedules handles GET /collection-schedules.
func (h *CollectionHandler) ListCollectionSchedules(c echo.Context) error {
	items, err := h.Schedules.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetCollectionSchedule handles GET /collection-schedules/:id.
func (h *CollectionHandler) GetCollectionSchedule(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, err := h.Schedules.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, s)
}

// UpdateCollectionSchedule handles PUT /collection-schedules/:id. The
// effective foreign keys after the patch (supplied values, else current
// ones) must both resolve to existing rows.
func (h *CollectionHandler) UpdateCollectionSchedule(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		CollectionPointID *int64  `json:"collection_point_id"`
		WasteTypeID       *int64  `json:"waste_type_id"`
		Schedule          *string `json:"schedule"`
		StartDate         *string `json:"start_date"`
		EndDate           *string `json:"end_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	current, err := h.Schedules.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	wasteTypeID := current.WasteTypeID
	if body.WasteTypeID != nil {
		wasteTypeID = *body.WasteTypeID
	}
	pointID := current.CollectionPointID
	if body.CollectionPointID != nil {
		pointID = *body.CollectionPointID
	}
	if ok, err := h.gateScheduleRefs(c, wasteTypeID, pointID); !ok {
		return err
	}
	s, err := h.Schedules.Update(c.Request().Context(), id, repository.CollectionSchedulePatch{
		CollectionPointID: body.CollectionPointID,
		WasteTypeID:       body.WasteTypeID,
		Schedule:          body.Schedule,
		StartDate:         body.StartDate,
		EndDate:           body.EndDate,
	})
	if err != nil {
		if errors.Is(err, repository.ErrCollectionScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteCollectionSchedule handles DELETE /collection-schedules/:id. Both
// referenced rows are gated here too, then the repository writes the audit
// snapshot and removes the row in one transaction.
func (h *CollectionHandler) DeleteCollectionSchedule(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, err := h.Schedules.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if ok, err := h.gateScheduleRefs(c, s.WasteTypeID, s.CollectionPointID); !ok {
		return err
	}
	if err := h.Schedules.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCollectionScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	publishDeleted(c, "CollectionSchedule", strconv.FormatInt(id, 10), s)
	return c.NoContent(http.StatusNoContent)
}

// DeleteAllCollectionSchedules handles DELETE /collection-schedules.
func (h *CollectionHandler) DeleteAllCollectionSchedules(c echo.Context) error {
	if err := h.Schedules.DeleteAll(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
