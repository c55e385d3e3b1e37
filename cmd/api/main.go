package main

import (
	"fmt"

	"budgetbook/internal/config"
	"budgetbook/internal/database"
	"budgetbook/internal/logger"
	"budgetbook/internal/server"

	"github.com/gin-gonic/gin"
)

// @title           Budget API
// @version         1.0
// @description     Personal bookkeeping: category totals, a transaction log, and spreadsheet import/export.

// @host      localhost:8080
// @BasePath  /api

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(appConfig.Env, appConfig.LogLevel)
	defer logger.Sync()
	log := logger.Get()

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	router := server.NewRouter(dbManager.DB(), server.Options{
		CORSOrigins:     appConfig.CORSOrigins,
		MaxUploadBytes:  appConfig.MaxUploadBytes,
		DefaultPerPage:  appConfig.DefaultPerPage,
		ImportBatchSize: appConfig.ImportBatchSize,
		RequestLogging:  true,
	})

	log.Infof("Starting budget server on port %s (driver %s)", appConfig.Port, dbConfig.Driver)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
