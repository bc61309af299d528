package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go-hr-admin/internal/config"
	"go-hr-admin/internal/middleware"
	"go-hr-admin/internal/shared/audit"
	"go-hr-admin/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, installs the global middleware and
// registers every module on router. The returned cleanup closes the
// connections and must run after the server has stopped.
func BuildApp(ctx context.Context, cfg *config.Config, router *gin.Engine, auditLogger audit.Logger) (func(), error) {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.Name))

	// Redis opsional: tanpa REDIS_ADDR cache dan idempotency dimatikan
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis, 5)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established", zap.String("addr", cfg.Redis.Addr))
	} else {
		logger.Warn("REDIS_ADDR not set, running without cache and idempotency keys")
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}

	verifier, err := NewTokenVerifier(ctx, cfg.Auth)
	if err != nil {
		cleanup()
		return nil, err
	}

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimitByIP(20, 40),
	)
	router.GET("/health", healthHandler(sqlDB))

	// Register Modules & Routes
	if err := registerModules(router, cfg, sqlDB, gormDB, rdb, verifier, auditLogger, zap.L()); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

// healthHandler reports liveness plus a bounded database ping.
func healthHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
