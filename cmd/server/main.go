package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lifeboard/lifeboard-backend/config"
	"github.com/lifeboard/lifeboard-backend/internal/app/controller"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/db"
	"github.com/lifeboard/lifeboard-backend/internal/middleware"
	"github.com/lifeboard/lifeboard-backend/internal/router"
	"github.com/lifeboard/lifeboard-backend/internal/scheduler"
	"github.com/lifeboard/lifeboard-backend/internal/storage"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := "json"
	if !cfg.Server.IsProduction() {
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       getLogLevel(cfg),
		Format:      logFormat,
		EnableColor: !cfg.Server.IsProduction(),
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err, nil)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err, nil)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unreachable, refresh token revocation disabled", map[string]interface{}{
			"addr":  cfg.Redis.Addr,
			"error": err.Error(),
		})
	}

	gormDB := db.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	householdRepo := repository.NewHouseholdRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)
	tripRepo := repository.NewTripRepository(gormDB)
	budgetRepo := repository.NewBudgetRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	inventoryRepo := repository.NewInventoryRepository(gormDB)
	shoppingRepo := repository.NewShoppingRepository(gormDB)
	goalRepo := repository.NewGoalRepository(gormDB)
	habitRepo := repository.NewHabitRepository(gormDB)
	notebookRepo := repository.NewNotebookRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)

	// Services
	tokenStore := service.NewTokenStore(redisClient)
	authService := service.NewAuthService(userRepo, householdRepo, tokenStore,
		cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	householdService := service.NewHouseholdService(householdRepo, userRepo)
	receiptService := service.NewReceiptService(gormDB, tripRepo, storeRepo, taskRepo)
	budgetService := service.NewBudgetService(gormDB, budgetRepo, tagRepo)
	taskService := service.NewTaskService(gormDB, taskRepo, tagRepo)
	inventoryService := service.NewInventoryService(gormDB, inventoryRepo, tagRepo)
	shoppingService := service.NewShoppingService(shoppingRepo, inventoryRepo)
	goalService := service.NewGoalService(gormDB, goalRepo, tagRepo)
	habitService := service.NewHabitService(habitRepo)
	notebookService := service.NewNotebookService(notebookRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	tagService := service.NewTagService(tagRepo)

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region, cfg.S3.Bucket,
		cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, cfg.S3.BaseURL,
	)

	// Controllers
	ctrls := router.Controllers{
		Auth:         controller.NewAuthController(authService),
		Household:    controller.NewHouseholdController(householdService, authService),
		Task:         controller.NewTaskController(taskService),
		Receipt:      controller.NewReceiptController(receiptService),
		Budget:       controller.NewBudgetController(budgetService),
		Inventory:    controller.NewInventoryController(inventoryService),
		Shopping:     controller.NewShoppingController(shoppingService),
		Goal:         controller.NewGoalController(goalService),
		Habit:        controller.NewHabitController(habitService),
		Notebook:     controller.NewNotebookController(notebookService),
		Notification: controller.NewNotificationController(notificationService),
		Tag:          controller.NewTagController(tagService),
		Upload:       controller.NewUploadController(s3Storage, receiptService),
		Calendar:     controller.NewCalendarController(userRepo, taskRepo),
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg, userRepo)
	engine := router.Setup(cfg, authMiddleware, ctrls)

	reminders := scheduler.NewReminderScheduler(
		taskRepo, habitRepo, inventoryRepo, userRepo, notificationRepo, notificationService)
	if err := reminders.Start(); err != nil {
		logger.Fatal("Failed to start reminder scheduler", err, nil)
	}
	defer reminders.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	go func() {
		logger.Info("Server starting", map[string]interface{}{
			"port":        cfg.Server.Port,
			"environment": cfg.Server.Environment,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", err, nil)
	}
	logger.Info("Server stopped", nil)
}

func getLogLevel(cfg *config.Config) string {
	if cfg.Server.IsProduction() {
		return "info"
	}
	return "debug"
}
