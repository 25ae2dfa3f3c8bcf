package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// CreateReport handles POST /reports.
func (h *RecyclingHandler) CreateReport(c echo.Context) error {
	var body struct {
		Type string    `json:"type"`
		Time time.Time `json:"time"`
		Data string    `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Type) == "" || body.Time.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type and time are required"})
	}
	rep := &repository.Report{Type: body.Type, Time: body.Time, Data: body.Data}
	if err := h.Reports.Create(c.Request().Context(), rep); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create report"})
	}
	return c.JSON(http.StatusCreated, rep)
}

// ListReports handles GET /reports.
func (h *RecyclingHandler) ListReports(c echo.Context) error {
	items, err := h.Reports.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetReport handles GET /reports/:id.
func (h *RecyclingHandler) GetReport(c echo.Context) error {
	rep, err := h.Reports.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, rep)
}

// UpdateReport handles PUT /reports/:id with partial semantics.
func (h *RecyclingHandler) UpdateReport(c echo.Context) error {
	var body struct {
		Type *string    `json:"type"`
		Time *time.Time `json:"time"`
		Data *string    `json:"data"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	rep, err := h.Reports.Update(c.Request().Context(), c.Param("id"), repository.ReportPatch{
		Type: body.Type,
		Time: body.Time,
		Data: body.Data,
	})
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, rep)
}

// DeleteReport handles DELETE /reports/:id, echoing the deleted row.
func (h *RecyclingHandler) DeleteReport(c echo.Context) error {
	rep, err := h.Reports.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "report not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, rep)
}

// DeleteAllReports handles DELETE /reports.
func (h *RecyclingHandler) DeleteAllReports(c echo.Context) error {
	if err := h.Reports.DeleteAll(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
