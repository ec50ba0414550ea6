package app

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"talentmatch_backend/database"
	"talentmatch_backend/internal/auth"
	"talentmatch_backend/internal/config"
	"talentmatch_backend/internal/email"
	"talentmatch_backend/internal/handlers"
	"talentmatch_backend/internal/logger"
	"talentmatch_backend/internal/middleware"
	"talentmatch_backend/internal/models"
	"talentmatch_backend/internal/ratelimit"
	"talentmatch_backend/internal/repositories"
	"talentmatch_backend/internal/routes"
	"talentmatch_backend/internal/services"
	"talentmatch_backend/internal/validator"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin account", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	emailProvider := initializeEmailProvider(cfg)
	serviceContainer := services.NewServiceContainer(cfg, emailProvider)
	limiter := ratelimit.New()

	appHandlers := initializeHandlers(serviceContainer, limiter)

	ginRouter := initializeGinRouter(gormDB, serviceContainer)

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Info("Email notifications disabled")
		return email.NoopProvider{}
	}

	provider, err := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		logger.Fatal("Failed to initialize SMTP provider", "error", err)
	}
	logger.Info("SMTP provider initialized", "host", cfg.Email.SMTPHost)
	return provider
}

func initializeHandlers(container *services.ServiceContainer, limiter *ratelimit.Limiter) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:   handlers.NewAuthHandler(baseHandler, container.Auth, limiter),
		AdminHandler:  handlers.NewAdminHandler(baseHandler, container.Auth, container.Registration, container.Tenant),
		HealthHandler: handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(db *gorm.DB, container *services.ServiceContainer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	tenantResolver := middleware.NewTenantResolver(container.Tokens, repositories.NewAccountRepository())
	router.Use(tenantResolver.Middleware())

	return router
}

// seedFirstAdmin creates the initial platform administrator when the
// configured email does not exist yet. Admin-created accounts carry no
// registration status and are never gated by the approval workflow.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdmin.Email
	adminPassword := cfg.FirstAdmin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("First admin credentials are not configured. Skipping admin seeding.")
		return nil
	}

	var existing models.Account
	result := db.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Admin account already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin account: %w", result.Error)
	}

	hasher := auth.NewPasswordHasher()
	hash, err := hasher.Hash(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.Account{
		Email:        adminEmail,
		PasswordHash: hash,
		FullName:     "Platform Administrator",
		UserType:     models.UserTypeSuperAdmin,
		Role:         models.UserRolePlatformAdmin,
		IsActive:     true,
		IsVerified:   true,
	}

	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info("First admin account created", "email", adminEmail)
	return nil
}
