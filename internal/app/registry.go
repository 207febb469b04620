package app

import (
	"database/sql"
	"path/filepath"

	"geoshift/internal/config"
	"geoshift/internal/geofence"
	"geoshift/internal/messaging/kafka"
	"geoshift/internal/orgpolicy"
	"geoshift/internal/outofrange"
	"geoshift/internal/rbac"
	"geoshift/internal/rbac/infra"
	rbachttp "geoshift/internal/rbac/rbac_http"
	"geoshift/internal/shift"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg config.Config,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	targetRepo := geofence.NewRepository(gormDB)
	policyRepo := orgpolicy.NewRepository(gormDB)
	outOfRangeRepo := outofrange.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	targetService := geofence.NewTargetService(targetRepo, rdb)
	policyResolver := orgpolicy.NewResolver(policyRepo, cfg)
	outOfRangeService := outofrange.NewService(db, outOfRangeRepo, policyResolver)
	// The out-of-range request service doubles as the override checker
	// consulted on out-of-range clock-ins.
	shiftService := shift.NewServiceWithOutbox(
		db,
		shiftRepo,
		targetService,
		policyResolver,
		outOfRangeService,
		outboxRepo,
	)

	// --- Handlers ---
	shiftHandler := shift.NewHandlerWithRedis(shiftService, rdb)
	outOfRangeHandler := outofrange.NewHandler(outOfRangeService)
	rbacHandler := rbac.NewHandler(rbacService, rbacRepo)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		shift.RegisterRoutes(api, shiftHandler, rbacService, rdb)
		outofrange.RegisterRoutes(api, outOfRangeHandler, rbacService)
		rbachttp.RegisterRoutes(api, rbacHandler, rbacService)
	}

	rbac.RegisterRoutes(router, rbacHandler)

	return nil
}
