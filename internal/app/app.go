package app

import (
	"fmt"

	"jobvibes_backend/database"
	"jobvibes_backend/internal/config"
	"jobvibes_backend/internal/email"
	"jobvibes_backend/internal/handlers"
	"jobvibes_backend/internal/imageprocessor"
	"jobvibes_backend/internal/logger"
	"jobvibes_backend/internal/middleware"
	"jobvibes_backend/internal/push"
	"jobvibes_backend/internal/repositories"
	"jobvibes_backend/internal/routes"
	"jobvibes_backend/internal/services"
	"jobvibes_backend/internal/storage"
	"jobvibes_backend/internal/validator"
	"jobvibes_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
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

	ginRouter, cleanup := SetupRouter(cfg, gormDB)
	defer cleanup()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full DI graph and returns the router plus a cleanup
// function that stops the background workers.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, func()) {
	storageInstance, err := storage.NewStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer, cleanup := initializeServices(cfg, gormDB, storageInstance)
	appHandlers := initializeHandlers(serviceContainer)
	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter, cleanup
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) (*services.ServiceContainer, func()) {
	userRepo := repositories.NewUserRepository(gormDB)
	feedRepo := repositories.NewFeedRepository(gormDB)
	ledgerRepo := repositories.NewLedgerRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	catalogRepo := repositories.NewCatalogRepository(gormDB)
	uploadRepo := repositories.NewUploadRepository(gormDB)

	emailService := email.NewSMTPProvider(email.ConfigFromApp(cfg), email.NewTemplateManager())
	sender := push.NewFCMSender(userRepo)
	processor := imageprocessor.NewProcessor(cfg.Upload.ImageQuality)

	notificationService := services.NewNotificationService(notificationRepo, userRepo, sender)
	authService := services.NewAuthService(userRepo, emailService)
	userService := services.NewUserService(userRepo, catalogRepo)
	feedService := services.NewFeedService(feedRepo, ledgerRepo, userRepo, notificationService)
	ledgerService := services.NewLedgerService(ledgerRepo, feedRepo, userRepo, notificationService)
	catalogService := services.NewCatalogService(catalogRepo)
	uploadService := services.NewUploadService(uploadRepo, userRepo, storageInstance, processor)

	cleanupWorker := workers.NewCleanupWorker(userRepo)
	cleanupWorker.Start()

	cleanup := func() {
		cleanupWorker.Stop()
		notificationService.Shutdown()
	}

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		FeedService:         feedService,
		LedgerService:       ledgerService,
		NotificationService: notificationService,
		CatalogService:      catalogService,
		UploadService:       uploadService,
		EmailService:        emailService,
		Storage:             storageInstance,
	}, cleanup
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, container.UserService),
		FeedHandler:         handlers.NewFeedHandler(baseHandler, container.FeedService, container.LedgerService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService, container.UserService),
		CatalogHandler:      handlers.NewCatalogHandler(baseHandler, container.CatalogService),
		UploadHandler:       handlers.NewUploadHandler(baseHandler, container.UploadService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
