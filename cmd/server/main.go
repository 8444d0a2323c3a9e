package main

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkerrobotics/luckydraw-admin/internal/handler"
	"github.com/inkerrobotics/luckydraw-admin/internal/middleware"
	"github.com/inkerrobotics/luckydraw-admin/internal/model"
	"github.com/inkerrobotics/luckydraw-admin/internal/service"
	"github.com/inkerrobotics/luckydraw-admin/pkg/config"
	"github.com/inkerrobotics/luckydraw-admin/pkg/crypto"
	"github.com/inkerrobotics/luckydraw-admin/pkg/database"
	"github.com/inkerrobotics/luckydraw-admin/pkg/jwtutil"
	"github.com/inkerrobotics/luckydraw-admin/pkg/logger"
	"github.com/inkerrobotics/luckydraw-admin/pkg/mailer"
	"github.com/inkerrobotics/luckydraw-admin/prometheus"
)

const loginAttemptsPerMinute = 10

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting super admin console...", cfg.LogConfig()...)

	// Initialize database
	db, err := database.InitDB(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.MigrateModels(db,
		&model.User{},
		&model.Tenant{},
		&model.TenantStatusHistory{},
		&model.CustomRole{},
		&model.RolePermission{},
		&model.Session{},
		&model.ActivityLog{},
		&model.SystemSetting{},
		&model.SettingHistory{},
		&model.EmailTemplate{},
		&model.NotificationTemplate{},
		&model.Notification{},
		&model.Backup{},
	); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	if err := seedAdmin(db); err != nil {
		log.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// Shared utilities
	jwt := jwtutil.NewJWTUtil(&cfg.JWT)
	cipher := crypto.NewCipher(cfg.Encryption.Key)
	mail := mailer.NewMailer(&cfg.SMTP)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Services
	activity := service.NewActivityService(db)
	sessions := service.NewSessionService(db)
	auth := service.NewAuthService(db, jwt, sessions, activity)
	tenantAuth := service.NewTenantAuthService(db, jwt, activity)
	tenants := service.NewTenantService(db, cipher, activity)
	users := service.NewUserService(db, mail, activity)
	roles := service.NewRoleService(db, activity)
	settings := service.NewSettingService(db, activity)
	notifications := service.NewNotificationService(db, activity)
	templates := service.NewTemplateService(db, activity)
	backups := service.NewBackupService(db, activity, cfg.Backup.CompletionDelay)
	cleaning := service.NewCleaningService(db, activity)
	analytics := service.NewAnalyticsService(db)

	// Handlers
	healthHandler := handler.NewHealthHandler(cfg.Server.Env)
	authHandler := handler.NewAuthHandler(auth, cfg)
	tenantAuthHandler := handler.NewTenantAuthHandler(tenantAuth, cfg)
	tenantHandler := handler.NewTenantHandler(tenants)
	userHandler := handler.NewUserHandler(users)
	roleHandler := handler.NewRoleHandler(roles)
	sessionHandler := handler.NewSessionHandler(sessions)
	activityHandler := handler.NewActivityHandler(activity)
	settingHandler := handler.NewSettingHandler(settings)
	notificationHandler := handler.NewNotificationHandler(notifications)
	templateHandler := handler.NewTemplateHandler(templates)
	backupHandler := handler.NewBackupHandler(backups)
	dashboardHandler := handler.NewDashboardHandler(analytics, cleaning)

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.Server.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes
	e.GET("/api/health", healthHandler.Check)
	e.GET("/metrics", healthHandler.Metrics)

	loginLimit := middleware.LoginRateLimit(rdb, loginAttemptsPerMinute)
	e.POST("/api/auth/login", authHandler.Login, loginLimit)
	e.POST("/api/tenant-auth/login", tenantAuthHandler.Login, loginLimit)

	// Admin/user surface
	adminAuth := middleware.AdminAuth(jwt, sessions)

	authGroup := e.Group("/api/auth", adminAuth)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me)

	userGroup := e.Group("/api/users", adminAuth)
	userGroup.PUT("/change-password", userHandler.ChangePassword)
	userGroup.GET("", userHandler.List, middleware.RequirePermission(roles, "Users", service.ActionView))
	userGroup.POST("", userHandler.Create, middleware.RequirePermission(roles, "Users", service.ActionCreate))
	userGroup.GET("/:id", userHandler.Get, middleware.RequirePermission(roles, "Users", service.ActionView))
	userGroup.PUT("/:id", userHandler.Update, middleware.RequirePermission(roles, "Users", service.ActionEdit))
	userGroup.DELETE("/:id", userHandler.Delete, middleware.RequirePermission(roles, "Users", service.ActionDelete))

	tenantGroup := e.Group("/api/tenants", adminAuth)
	tenantGroup.GET("", tenantHandler.List, middleware.RequirePermission(roles, "Tenants", service.ActionView))
	tenantGroup.POST("", tenantHandler.Create, middleware.RequirePermission(roles, "Tenants", service.ActionCreate))
	tenantGroup.GET("/:id", tenantHandler.Get, middleware.RequirePermission(roles, "Tenants", service.ActionView))
	tenantGroup.PUT("/:id", tenantHandler.Update, middleware.RequirePermission(roles, "Tenants", service.ActionEdit))
	tenantGroup.DELETE("/:id", tenantHandler.Delete, middleware.RequirePermission(roles, "Tenants", service.ActionDelete))
	tenantGroup.PATCH("/:id/status", tenantHandler.UpdateStatus, middleware.RequirePermission(roles, "Tenants", service.ActionEdit))
	tenantGroup.POST("/bulk-status", tenantHandler.BulkUpdateStatus, middleware.RequirePermission(roles, "Tenants", service.ActionEdit))
	tenantGroup.GET("/:id/status-history", tenantHandler.StatusHistory, middleware.RequirePermission(roles, "Tenants", service.ActionView))
	tenantGroup.PUT("/:id/whatsapp", tenantHandler.SetWhatsAppCredentials, middleware.RequirePermission(roles, "Tenants", service.ActionEdit))
	tenantGroup.GET("/:id/whatsapp", tenantHandler.GetWhatsAppCredentials, middleware.RequirePermission(roles, "Tenants", service.ActionView))

	roleGroup := e.Group("/api/roles", adminAuth)
	roleGroup.GET("", roleHandler.List, middleware.RequirePermission(roles, "Roles", service.ActionView))
	roleGroup.POST("", roleHandler.Create, middleware.RequirePermission(roles, "Roles", service.ActionCreate))
	roleGroup.GET("/:id", roleHandler.Get, middleware.RequirePermission(roles, "Roles", service.ActionView))
	roleGroup.PUT("/:id", roleHandler.Update, middleware.RequirePermission(roles, "Roles", service.ActionEdit))
	roleGroup.DELETE("/:id", roleHandler.Delete, middleware.RequirePermission(roles, "Roles", service.ActionDelete))

	sessionGroup := e.Group("/api/sessions", adminAuth)
	sessionGroup.GET("", sessionHandler.List)
	sessionGroup.DELETE("/:id", sessionHandler.Revoke)
	sessionGroup.POST("/revoke-all", sessionHandler.RevokeAll, middleware.RequirePermission(roles, "Sessions", service.ActionEdit))
	sessionGroup.POST("/cleanup", sessionHandler.Cleanup, middleware.RequirePermission(roles, "Sessions", service.ActionEdit))

	logGroup := e.Group("/api/activity-logs", adminAuth)
	logGroup.GET("", activityHandler.List, middleware.RequirePermission(roles, "ActivityLogs", service.ActionView))
	logGroup.GET("/export", activityHandler.Export, middleware.RequirePermission(roles, "ActivityLogs", service.ActionView))

	settingGroup := e.Group("/api/settings", adminAuth)
	settingGroup.GET("", settingHandler.List, middleware.RequirePermission(roles, "Settings", service.ActionView))
	settingGroup.PUT("", settingHandler.Upsert, middleware.RequirePermission(roles, "Settings", service.ActionEdit))
	settingGroup.GET("/:id/history", settingHandler.History, middleware.RequirePermission(roles, "Settings", service.ActionView))

	notificationGroup := e.Group("/api/notifications", adminAuth)
	notificationGroup.GET("", notificationHandler.List, middleware.RequirePermission(roles, "Notifications", service.ActionView))
	notificationGroup.POST("", notificationHandler.Create, middleware.RequirePermission(roles, "Notifications", service.ActionCreate))
	notificationGroup.POST("/:id/send", notificationHandler.Send, middleware.RequirePermission(roles, "Notifications", service.ActionEdit))
	notificationGroup.DELETE("/:id", notificationHandler.Delete, middleware.RequirePermission(roles, "Notifications", service.ActionDelete))

	notificationTemplateGroup := e.Group("/api/notification-templates", adminAuth)
	notificationTemplateGroup.GET("", notificationHandler.ListTemplates, middleware.RequirePermission(roles, "Notifications", service.ActionView))
	notificationTemplateGroup.POST("", notificationHandler.CreateTemplate, middleware.RequirePermission(roles, "Notifications", service.ActionCreate))
	notificationTemplateGroup.PUT("/:id", notificationHandler.UpdateTemplate, middleware.RequirePermission(roles, "Notifications", service.ActionEdit))
	notificationTemplateGroup.DELETE("/:id", notificationHandler.DeleteTemplate, middleware.RequirePermission(roles, "Notifications", service.ActionDelete))

	templateGroup := e.Group("/api/email-templates", adminAuth)
	templateGroup.GET("", templateHandler.List, middleware.RequirePermission(roles, "EmailTemplates", service.ActionView))
	templateGroup.POST("", templateHandler.Create, middleware.RequirePermission(roles, "EmailTemplates", service.ActionCreate))
	templateGroup.GET("/:id", templateHandler.Get, middleware.RequirePermission(roles, "EmailTemplates", service.ActionView))
	templateGroup.PUT("/:id", templateHandler.Update, middleware.RequirePermission(roles, "EmailTemplates", service.ActionEdit))
	templateGroup.DELETE("/:id", templateHandler.Delete, middleware.RequirePermission(roles, "EmailTemplates", service.ActionDelete))

	backupGroup := e.Group("/api/backups", adminAuth)
	backupGroup.GET("", backupHandler.List, middleware.RequirePermission(roles, "Backups", service.ActionView))
	backupGroup.POST("", backupHandler.Create, middleware.RequirePermission(roles, "Backups", service.ActionCreate))
	backupGroup.DELETE("/:id", backupHandler.Delete, middleware.RequirePermission(roles, "Backups", service.ActionDelete))

	e.GET("/api/dashboard", dashboardHandler.Stats, adminAuth)
	e.GET("/api/analytics/login-trend", dashboardHandler.LoginTrend, adminAuth)
	e.GET("/api/analytics/tenant-growth", dashboardHandler.TenantGrowth, adminAuth)
	e.GET("/api/data-cleaning", dashboardHandler.CleaningStats, adminAuth, middleware.RequirePermission(roles, "DataCleaning", service.ActionView))
	e.POST("/api/data-cleaning/run", dashboardHandler.RunCleaning, adminAuth, middleware.RequirePermission(roles, "DataCleaning", service.ActionDelete))

	// Tenant surface
	tenantTokenAuth := middleware.TenantAuth(jwt)
	tenantAuthGroup := e.Group("/api/tenant-auth", tenantTokenAuth)
	tenantAuthGroup.POST("/logout", tenantAuthHandler.Logout)
	tenantAuthGroup.GET("/me", tenantAuthHandler.Me)

	// SPA catch-all: non-/api GETs fall through to the bundled frontend
	e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root:  cfg.Server.StaticDir,
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/api") || path == "/metrics"
		},
	}))

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

// seedAdmin creates the default super admin when no ADMIN user exists.
// The seeded password is stored as plaintext; the admin login path
// compares it directly.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := model.User{
		Name:     "Super Admin",
		Email:    "admin@example.com",
		Password: "Admin@123",
		Role:     model.RoleAdmin,
	}
	return db.Create(&admin).Error
}
