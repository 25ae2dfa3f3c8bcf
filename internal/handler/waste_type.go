package handler // handler package contains waste type handlers

import (
	"errors"   // errors matches repository sentinel values
	"net/http" // http provides status code constants
	"strconv"  // strconv formats identifiers for audit events
	"strings"  // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/ecotrack/waste-collection-api/internal/repository" // repository holds database models
)

// CreateWasteType handles POST /waste-types and creates a new waste category.
// The route is gated to the admin role by middleware.
func (h *CollectionHandler) CreateWasteType(c echo.Context) error {
	var body struct { // anonymous struct to bind incoming JSON
		Name string `json:"name"` // Name is the required category label
		Code *int64 `json:"code"` // Code is the optional numeric label code
	}
	if err := c.Bind(&body); err != nil { // attempt to bind the request body into the struct
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name) // trim spaces around the name
	if name == "" {                      // ensure the name is not empty after trimming
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	w := &repository.WasteType{Name: name, Code: body.Code}
	if err := h.WasteTypes.Create(c.Request().Context(), w); err != nil { // delegate creation to the repository
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create waste type"})
	}
	return c.JSON(http.StatusCreated, w) // return 201 and the created row on success
}

// ListWasteTypes handles GET /waste-types and returns all waste categories.
func (h *CollectionHandler) ListWasteTypes(c echo.Context) error {
	items, err := h.WasteTypes.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetWasteType handles GET /waste-types/:id.
func (h *CollectionHandler) GetWasteType(c echo.Context) error {
	id, err := parseID(c) // parse the waste type ID from the URL
	if err != nil {       // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	w, err := h.WasteTypes.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWasteTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "waste type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, w)
}

// UpdateWasteType handles PUT /waste-types/:id with partial semantics:
// fields omitted from the body are left unchanged.
func (h *CollectionHandler) UpdateWasteType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name *string `json:"name"`
		Code *int64  `json:"code"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name != nil { // an explicit empty name is still invalid
		n := strings.TrimSpace(*body.Name)
		if n == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
		}
		body.Name = &n
	}
	w, err := h.WasteTypes.Update(c.Request().Context(), id, repository.WasteTypePatch{
		Name: body.Name,
		Code: body.Code,
	})
	if err != nil {
		if errors.Is(err, repository.ErrWasteTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "waste type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, w)
}

// DeleteWasteType handles DELETE /waste-types/:id. The repository writes
// the audit snapshot and removes the row in one transaction; the broker
// event mirrors the committed log entry.
func (h *CollectionHandler) DeleteWasteType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	w, err := h.WasteTypes.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWasteTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "waste type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.WasteTypes.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrWasteTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "waste type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	publishDeleted(c, "WasteType", strconv.FormatInt(id, 10), w)
	return c.NoContent(http.StatusNoContent)
}

// DeleteAllWasteTypes handles DELETE /waste-types. No existence checks and
// no audit entries; this is the destructive administrative reset.
func (h *CollectionHandler) DeleteAllWasteTypes(c echo.Context) error {
	if err := h.WasteTypes.DeleteAll(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
