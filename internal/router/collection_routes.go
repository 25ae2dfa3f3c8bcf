package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/handler"
	"github.com/ecotrack/waste-collection-api/internal/middleware"
	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// RegisterCollection registers the waste-collection subsystem: waste types,
// collection points, collection schedules and collection records. Reads are
// public; mutations require a valid JWT, and waste-type mutations are
// restricted to admins.
func RegisterCollection(e *echo.Echo, h *handler.CollectionHandler, jwtSecret string, users *repository.UserRepo) {
	// ---- Public reads ----
	e.GET("/waste-types", h.ListWasteTypes)
	e.GET("/waste-types/:id", h.GetWasteType)
	e.GET("/collection-points", h.ListCollectionPoints)
	e.GET("/collection-points/:id", h.GetCollectionPoint)
	e.GET("/collection-schedules", h.ListCollectionSchedules)
	e.GET("/collection-schedules/:id", h.GetCollectionSchedule)
	e.GET("/collection-records", h.ListCollectionRecords)
	e.GET("/collection-records/:id", h.GetCollectionRecord)

	// ---- Waste types: admin only ----
	admin := e.Group(
		"/waste-types",
		middleware.JWTAuth(jwtSecret, users),
		middleware.RequireRole("admin"),
	)
	admin.POST("", h.CreateWasteType)
	admin.PUT("/:id", h.UpdateWasteType)
	admin.DELETE("/:id", h.DeleteWasteType)
	admin.DELETE("", h.DeleteAllWasteTypes)

	// ---- Remaining mutations: any authenticated role ----
	g := e.Group(
		"",
		middleware.JWTAuth(jwtSecret, users),
		middleware.RequireRole("admin", "staff", "user"),
	)
	g.POST("/collection-points", h.CreateCollectionPoint)
	g.PUT("/collection-points/:id", h.UpdateCollectionPoint)
	g.DELETE("/collection-points/:id", h.DeleteCollectionPoint)
	g.DELETE("/collection-points", h.DeleteAllCollectionPoints)

	g.POST("/collection-schedules", h.CreateCollectionSchedule)
	g.PUT("/collection-schedules/:id", h.UpdateCollectionSchedule)
	g.DELETE("/collection-schedules/:id", h.DeleteCollectionSchedule)
	g.DELETE("/collection-schedules", h.DeleteAllCollectionSchedules)

	g.POST("/collection-records", h.CreateCollectionRecord)
	g.PUT("/collection-records/:id", h.UpdateCollectionRecord)
	g.DELETE("/collection-records/:id", h.DeleteCollectionRecord)
	g.DELETE("/collection-records", h.DeleteAllCollectionRecords)
}

// RegisterAuditLog exposes the audit trail for admins.
func RegisterAuditLog(e *echo.Echo, h *handler.AuditLogHandler, jwtSecret string, users *repository.UserRepo) {
	g := e.Group("/logs", middleware.JWTAuth(jwtSecret, users), middleware.RequireRole("admin"))
	g.GET("", h.List)
}
