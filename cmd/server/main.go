package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ecotrack/waste-collection-api/internal/config"
	"github.com/ecotrack/waste-collection-api/internal/database"
	"github.com/ecotrack/waste-collection-api/internal/handler"
	"github.com/ecotrack/waste-collection-api/internal/logger"
	"github.com/ecotrack/waste-collection-api/internal/middleware"
	"github.com/ecotrack/waste-collection-api/internal/queue"
	"github.com/ecotrack/waste-collection-api/internal/repository"
	"github.com/ecotrack/waste-collection-api/internal/router"
)

func main() {
	// .env is optional; real deployments pass the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	lg, err := logger.New()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer lg.Sync()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, database.Pool{
		MaxOpen:     cfg.DBMaxOpen,
		MaxIdle:     cfg.DBMaxIdle,
		MaxLifetime: cfg.DBConnLife,
	})
	if err != nil {
		lg.Sugar().Fatalf("database connect: %v", err)
	}
	defer db.Close()

	// Repositories share the single pooled *sql.DB.
	auditLogs := repository.NewAuditLogRepo(db)
	users := repository.NewUserRepo(db)
	wasteTypes := repository.NewWasteTypeRepo(db, auditLogs)
	points := repository.NewCollectionPointRepo(db, auditLogs)
	colSchedules := repository.NewCollectionScheduleRepo(db, auditLogs)
	records := repository.NewCollectionRecordRepo(db, auditLogs)
	schedules := repository.NewScheduleRepo(db)
	recycles := repository.NewRecycleRepo(db)
	reports := repository.NewReportRepo(db)

	authH := handler.NewAuthHandler(cfg, users)
	userH := handler.NewUserHandler(users)
	collectionH := handler.NewCollectionHandler(wasteTypes, points, colSchedules, records)
	recyclingH := handler.NewRecyclingHandler(schedules, recycles, reports)
	auditH := handler.NewAuditLogHandler(auditLogs)

	e := echo.New()

	// Redis backs both the rate limiter and the GET cache. When the client
	// is nil (Redis down or unconfigured) both middlewares pass through.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, userH, cfg.JWTSecret, users)
	router.RegisterCollection(e, collectionH, cfg.JWTSecret, users)
	router.RegisterRecycling(e, recyclingH, cfg.JWTSecret, users)
	router.RegisterAuditLog(e, auditH, cfg.JWTSecret, users)

	// Mirrors audited deletes from the broker into logs/audit.log.
	go queue.StartDeletedConsumer(lg)

	addr := ":" + cfg.Port
	lg.Sugar().Infof("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		lg.Sugar().Fatalf("server stopped: %v", err)
	}
}
