package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/handler"
	"github.com/ecotrack/waste-collection-api/internal/middleware"
	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems probe this endpoint to verify
	// that the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication surface and user management.
// Register, login and logout live under /users and need no session; the
// remaining user routes follow the read-public / write-authenticated split
// used across the API.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, jwtSecret string, users *repository.UserRepo) {
	e.POST("/users/register", a.Register)
	e.POST("/users/login", a.Login)
	e.POST("/users/logout", a.Logout)

	e.GET("/users", u.List)
	e.GET("/users/:id", u.Get)

	// Any authenticated account may inspect its own identity.
	me := e.Group("/me", middleware.JWTAuth(jwtSecret, users), middleware.RequireRole("admin", "staff", "user"))
	me.GET("", a.Me)

	auth := e.Group(
		"/users",
		middleware.JWTAuth(jwtSecret, users),
		middleware.RequireRole("admin", "staff", "user"),
	)
	auth.PUT("/:id", u.Update)
	auth.DELETE("/:id", u.Delete)

	// Wiping the whole account table stays admin-only.
	admin := e.Group("/users", middleware.JWTAuth(jwtSecret, users), middleware.RequireRole("admin"))
	admin.DELETE("", u.DeleteAll)
}
