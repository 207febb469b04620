package app

import (
	"geoshift/internal/config"
	"geoshift/internal/middleware"
	"geoshift/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp connects the infrastructure and registers every module on
// the router. The returned error is fatal; the process cannot serve
// without its database and redis.
func BuildApp(router *gin.Engine) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitRPS*2))

	return registerModules(router, sqlDB, gormDB, redisClient, cfg)
}
