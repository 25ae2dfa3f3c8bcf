package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/handler"
	"github.com/ecotrack/waste-collection-api/internal/middleware"
	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// RegisterRecycling registers the recycling subsystem: schedules, recycle
// logs and reports. Reads are public, mutations require a valid JWT. The
// /all variants page through the table and include a total count.
func RegisterRecycling(e *echo.Echo, h *handler.RecyclingHandler, jwtSecret string, users *repository.UserRepo) {
	// ---- Public reads ----
	// The static /all routes must not be swallowed by the :id matcher;
	// Echo prefers static segments so both can coexist.
	e.GET("/schedules", h.ListSchedules)
	e.GET("/schedules/all", h.ListSchedulesPaged)
	e.GET("/schedules/:id", h.GetSchedule)
	e.GET("/recycles", h.ListRecycles)
	e.GET("/recycles/all", h.ListRecyclesPaged)
	e.GET("/recycles/:id", h.GetRecycle)
	e.GET("/reports", h.ListReports)
	e.GET("/reports/:id", h.GetReport)

	g := e.Group(
		"",
		middleware.JWTAuth(jwtSecret, users),
		middleware.RequireRole("admin", "staff", "user"),
	)

	g.POST("/schedules", h.CreateSchedule)
	g.PUT("/schedules/:id", h.UpdateSchedule)
	g.DELETE("/schedules/:id", h.DeleteSchedule)
	g.DELETE("/schedules", h.DeleteAllSchedules)

	g.POST("/recycles", h.CreateRecycle)
	g.PUT("/recycles/:id", h.UpdateRecycle)
	g.DELETE("/recycles/:id", h.DeleteRecycle)
	g.DELETE("/recycles", h.DeleteAllRecycles)

	g.POST("/reports", h.CreateReport)
	g.PUT("/reports/:id", h.UpdateReport)
	g.DELETE("/reports/:id", h.DeleteReport)
	g.DELETE("/reports", h.DeleteAllReports)
}
