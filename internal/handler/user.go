package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// UserHandler exposes the administrative CRUD surface over users, separate
// from the register/login flow in AuthHandler.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler {
	if u == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: u}
}

type userPatchReq struct {
	Email  *string `json:"email"`
	Names  *string `json:"names"`
	Avatar *string `json:"avatar"`
	Role   *string `json:"role"`
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.Users.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, u)
}

// Update handles PUT /users/:id with partial semantics: only the fields
// present in the body change. Passwords are not updatable through this
// endpoint.
func (h *UserHandler) Update(c echo.Context) error {
	var req userPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Role != nil {
		role, ok := validRole(strings.ToLower(strings.TrimSpace(*req.Role)))
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
		}
		req.Role = &role
	}
	u, err := h.Users.Update(c.Request().Context(), c.Param("id"), repository.UserPatch{
		Email:  req.Email,
		Names:  req.Names,
		Avatar: req.Avatar,
		Role:   req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /users/:id. Users are not audited; the row is
// simply removed.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.Users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAll handles DELETE /users. Destructive administrative reset.
func (h *UserHandler) DeleteAll(c echo.Context) error {
	if err := h.Users.DeleteAll(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
