package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/repository"
)

// CreateCollectionPoint handles POST /collection-points.
func (h *CollectionHandler) CreateCollectionPoint(c echo.Context) error {
	var body struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	address := strings.TrimSpace(body.Address)
	if name == "" || address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and address are required"})
	}
	p := &repository.CollectionPoint{Name: name, Address: address}
	if err := h.Points.Create(c.Request().Context(), p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create collection point"})
	}
	return c.JSON(http.StatusCreated, p)
}

// ListCollectionPoints handles GET /collection-points.
func (h *CollectionHandler) ListCollectionPoints(c echo.Context) error {
	items, err := h.Points.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetCollectionPoint handles GET /collection-points/:id.
func (h *CollectionHandler) GetCollectionPoint(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Points.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionPointNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection point not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateCollectionPoint handles PUT /collection-points/:id with partial
// semantics.
func (h *CollectionHandler) UpdateCollectionPoint(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p, err := h.Points.Update(c.Request().Context(), id, repository.CollectionPointPatch{
		Name:    body.Name,
		Address: body.Address,
	})
	if err != nil {
		if errors.Is(err, repository.ErrCollectionPointNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection point not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteCollectionPoint handles DELETE /collection-points/:id with an audit
// snapshot written in the delete transaction.
func (h *CollectionHandler) DeleteCollectionPoint(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Points.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionPointNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection point not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Points.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCollectionPointNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "collection point not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	publishDeleted(c, "CollectionPoint", strconv.FormatInt(id, 10), p)
	return c.NoContent(http.StatusNoContent)
}

// DeleteAllCollectionPoints handles DELETE /collection-points.
func (h *CollectionHandler) DeleteAllCollectionPoints(c echo.Context) error {
	if err := h.Points.DeleteAll(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
