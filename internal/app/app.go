package app

import (
	"errors"
	"fmt"

	"microjob_backend/database"
	"microjob_backend/internal/config"
	"microjob_backend/internal/email"
	"microjob_backend/internal/handlers"
	"microjob_backend/internal/logger"
	"microjob_backend/internal/middleware"
	"microjob_backend/internal/models"
	"microjob_backend/internal/repositories"
	"microjob_backend/internal/routes"
	"microjob_backend/internal/services"
	"microjob_backend/internal/validator"
	"microjob_backend/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
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
		logger.Fatal("AutoMigrate failed", "error", err)
	}
	logger.Info("AutoMigrate completed")

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg, gormDB)
	appHandlers, wsHandler := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.Enabled {
		emailProvider = email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		logger.Info("SMTP email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		emailProvider = email.NewNoopProvider()
		logger.Warn("Email sending disabled, using noop provider")
	}

	userRepo := repositories.NewUserRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	appRepo := repositories.NewApplicationRepository(gormDB)
	walletRepo := repositories.NewWalletRepository(gormDB)
	chatRepo := repositories.NewChatRepository(gormDB)
	settingsRepo := repositories.NewSettingsRepository(gormDB)

	walletService := services.NewWalletService(walletRepo, userRepo)

	return &services.ServiceContainer{
		AuthService:        services.NewAuthService(userRepo),
		UserService:        services.NewUserService(userRepo),
		JobService:         services.NewJobService(jobRepo, appRepo, userRepo),
		ApplicationService: services.NewApplicationService(appRepo, jobRepo, userRepo, walletService, emailProvider),
		WalletService:      walletService,
		ChatService:        services.NewChatService(chatRepo, userRepo),
		SettingsService:    services.NewSettingsService(settingsRepo),
		EmailProvider:      emailProvider,
	}
}

func initializeHandlers(svc *services.ServiceContainer) (*handlers.AppHandlers, *ws.Handler) {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	wsManager := ws.NewManager()
	go wsManager.Run()
	wsHandler := ws.NewHandler(wsManager)

	appHandlers := &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, svc.AuthService),
		UserHandler:        handlers.NewUserHandler(baseHandler, svc.UserService),
		JobHandler:         handlers.NewJobHandler(baseHandler, svc.JobService, svc.ApplicationService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, svc.ApplicationService),
		WalletHandler:      handlers.NewWalletHandler(baseHandler, svc.WalletService),
		ChatHandler:        handlers.NewChatHandler(baseHandler, svc.ChatService, wsManager),
		SettingsHandler:    handlers.NewSettingsHandler(baseHandler, svc.SettingsService),
	}
	return appHandlers, wsHandler
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin создает первого админа из конфига, если его еще нет
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin email or password is not configured. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		FullName:     "Administrator",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusApproved,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
