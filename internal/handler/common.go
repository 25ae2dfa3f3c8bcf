package handler // handler defines http handlers

import (
	"encoding/json" // json encodes delete snapshots for broker events
	"errors"        // errors provides sentinel values used in getUserID
	"strconv"       // strconv converts strings to numeric types
	"time"          // time stamps broker events

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/ecotrack/waste-collection-api/internal/queue"      // queue defines broker event payloads
	"github.com/ecotrack/waste-collection-api/internal/repository" // repository holds the data access layer
	queue_publisher "github.com/ecotrack/waste-collection-api/internal/service"
)

// CollectionHandler bundles the repositories of the waste-collection
// subsystem: waste types, collection points, collection schedules and
// collection records.
type CollectionHandler struct {
	WasteTypes *repository.WasteTypeRepo
	Points     *repository.CollectionPointRepo
	Schedules  *repository.CollectionScheduleRepo
	Records    *repository.CollectionRecordRepo
}

// NewCollectionHandler constructs a CollectionHandler and panics if any
// dependency is nil.
func NewCollectionHandler(wasteTypes *repository.WasteTypeRepo, points *repository.CollectionPointRepo, schedules *repository.CollectionScheduleRepo, records *repository.CollectionRecordRepo) *CollectionHandler {
	if wasteTypes == nil || points == nil || schedules == nil || records == nil {
		panic("nil repository passed to NewCollectionHandler")
	}
	return &CollectionHandler{
		WasteTypes: wasteTypes,
		Points:     points,
		Schedules:  schedules,
		Records:    records,
	}
}

// RecyclingHandler bundles the repositories of the recycling subsystem:
// schedules, recycle logs and reports.
type RecyclingHandler struct {
	Schedules *repository.ScheduleRepo
	Recycles  *repository.RecycleRepo
	Reports   *repository.ReportRepo
}

func NewRecyclingHandler(schedules *repository.ScheduleRepo, recycles *repository.RecycleRepo, reports *repository.ReportRepo) *RecyclingHandler {
	if schedules == nil || recycles == nil || reports == nil {
		panic("nil repository passed to NewRecyclingHandler")
	}
	return &RecyclingHandler{Schedules: schedules, Recycles: recycles, Reports: reports}
}

// getUserID extracts the user_id set by the JWT middleware. Subjects are
// UUID strings in this application.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("invalid user_id in context")
}

// parseID parses the :id path parameter of integer-keyed collections.
func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// publishDeleted mirrors an audited delete onto the message broker. The
// publish is best effort and its error ignored: the logs table row already
// committed and is the authoritative audit entry.
func publishDeleted(c echo.Context, entityType, entityID string, snapshot any) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	actor, _ := getUserID(c)
	_ = queue_publisher.PublishEntityDeleted(c.Request().Context(), queue.EntityDeletedEvent{
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		Snapshot:   data,
		DeletedAt:  time.Now().UTC().Format(time.RFC3339),
	})
}

// pageParams reads skip/limit query parameters for the paginated list
// endpoints, applying the subsystem's defaults (skip 0, limit 50).
func pageParams(c echo.Context) (skip, limit int) {
	skip, limit = 0, 50
	if v, err := strconv.Atoi(c.QueryParam("skip")); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	return skip, limit
}
