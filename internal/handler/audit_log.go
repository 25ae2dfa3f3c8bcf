package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// AuditLogHandler exposes the audit trail written by the delete operations.
type AuditLogHandler struct {
	Logs *repository.AuditLogRepo
}

func NewAuditLogHandler(logs *repository.AuditLogRepo) *AuditLogHandler {
	if logs == nil {
		panic("nil repository passed to NewAuditLogHandler")
	}
	return &AuditLogHandler{Logs: logs}
}

// List handles GET /logs, newest entries first.
func (h *AuditLogHandler) List(c echo.Context) error {
	entries, err := h.Logs.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, entries)
}
