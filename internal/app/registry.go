package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-hr-admin/internal/attendance"
	"go-hr-admin/internal/auth"
	"go-hr-admin/internal/config"
	"go-hr-admin/internal/employee"
	"go-hr-admin/internal/identity"
	"go-hr-admin/internal/leave"
	"go-hr-admin/internal/messaging/kafka"
	"go-hr-admin/internal/middleware"
	"go-hr-admin/internal/notification"
	"go-hr-admin/internal/rbac"
	"go-hr-admin/internal/report"
	"go-hr-admin/internal/shared/audit"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewTokenVerifier picks the verifier named by AUTH_PROVIDER.
func NewTokenVerifier(ctx context.Context, cfg config.AuthConfig) (identity.TokenVerifier, error) {
	switch cfg.Provider {
	case config.AuthProviderJWT:
		return identity.NewJWTVerifier(cfg.JWTSecret), nil
	case config.AuthProviderFirebase:
		return identity.NewFirebaseVerifier(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	verifier identity.TokenVerifier,
	auditLogger audit.Logger,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	identityRepo := identity.NewRepository(gormDB)
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	policy, err := rbac.LoadPolicy(cfg.RBACPolicyPath)
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(policy, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	resolver := identity.NewService(identityRepo, logger)
	authService := auth.NewService(rbacService)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb, logger)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, rbacService, auditLogger, cfg.Leave, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, cfg.Attendance, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	reportService := report.NewService(reportRepo, cfg.Attendance.Location, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	rbacHandler := rbac.NewHandler(rbacService, rbacRepo, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService)
	notificationHandler := notification.NewHandler(notificationService, logger)
	reportHandler := report.NewHandler(reportService)

	authenticate := middleware.Authenticate(verifier, resolver)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, authenticate)
		rbac.RegisterRoutes(api, rbacHandler, authenticate)
		employee.RegisterRoutes(api, employeeHandler, authenticate, rbacService, rdb)
		leave.RegisterRoutes(api, leaveHandler, authenticate, rbacService, rdb)
		attendance.RegisterRoutes(api, attendanceHandler, authenticate, rbacService)
		notification.RegisterRoutes(api, notificationHandler, authenticate, rbacService)
		report.RegisterRoutes(api, reportHandler, authenticate, rbacService)
	}

	return nil
}
