package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// gateRecordRef verifies the collection schedule a record references
// exists. Applies at create, update and get time.
func (h *CollectionHandler) gateRecordRef(c echo.Context, scheduleID int64) (ok bool, err error) {
	found, err := h.Schedules.Exists(c.Request().Context(), scheduleID)
	if err != nil {
		return false, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !found {
		return false, c.JSON(http.StatusNotFound, echo.Map{"error": "collection schedule not found"})
	}
	return true, nil
}

// CreateCollectionRecord handles POST /collection-records.
func (h *CollectionHandler) CreateCollectionRecord(c echo.Context) error {
	var body struct {
		CollectionScheduleID int64   `json:"collection_schedule_id"`
		CollectionDate       string  `json:"collection_date"`
		QuantityCollected    int64   `json:"quantity_collected"`
		RecycleRate          float64 `json:"recycle_rate"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.CollectionDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "collection_date is required"})
	}
	if ok, err := h.gateRecordRef(c, body.CollectionScheduleID); !ok {
		return err
	}
	rec := &repository.CollectionRecord{
		CollectionScheduleID: body.CollectionScheduleID,
		CollectionDate:       body.CollectionDate,
		QuantityCollected:    body.QuantityCollected,
		RecycleRate:          body.RecycleRate,
	}
	if err := h.Records.Create(c.Request().Context(), rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create collection record"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// ListCollectionRecords handles GET /collection-records.
func (h *CollectionHandler) ListCollectionRecords(c echo.Context) error {
	items, err := h.Records.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetCollectionRecord handles GET /collection-records/:id. The referenced
// schedule is gated on reads as well.
func (h *CollectionHandler) GetCollectionRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rec, err := h.Records.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if ok, err := h.gateRecordRef(c, rec.CollectionScheduleID); !ok {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// UpdateCollectionRecord handles PUT /collection-records/:id with partial
// semantics; the effective schedule reference must exist.
func (h *CollectionHandler) UpdateCollectionRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		CollectionScheduleID *int64   `json:"collection_schedule_id"`
		CollectionDate       *string  `json:"collection_date"`
		QuantityCollected    *int64   `json:"quantity_collected"`
		RecycleRate          *float64 `json:"recycle_rate"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	current, err := h.Records.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	scheduleID := current.CollectionScheduleID
	if body.CollectionScheduleID != nil {
		scheduleID = *body.CollectionScheduleID
	}
	if ok, err := h.gateRecordRef(c, scheduleID); !ok {
		return err
	}
	rec, err := h.Records.Update(c.Request().Context(), id, repository.CollectionRecordPatch{
		CollectionScheduleID: body.CollectionScheduleID,
		CollectionDate:       body.CollectionDate,
		QuantityCollected:    body.QuantityCollected,
		RecycleRate:          body.RecycleRate,
	})
	if err != nil {
		if errors.Is(err, repository.ErrCollectionRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, rec)
}

// DeleteCollectionRecord handles DELETE /collection-records/:id with an
// audit snapshot written in the delete transaction.
func (h *CollectionHandler) DeleteCollectionRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rec, err := h.Records.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Records.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCollectionRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	publishDeleted(c, "CollectionRecord", strconv.FormatInt(id, 10), rec)
	return c.NoContent(http.StatusNoContent)
}

// DeleteAllCollectionRecords handles DELETE /collection-records.
func (h *CollectionHandler) DeleteAllCollectionRecords(c echo.Context) error {
	if err := h.Records.DeleteAll(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
