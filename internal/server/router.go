// Package server wires services, handlers, and middleware into the HTTP
// router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "budgetbook/internal/docs" // Import swagger docs
	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/handlers"
	"budgetbook/internal/middleware"
	"budgetbook/internal/services"
)

// Options carries the router settings taken from the application config.
type Options struct {
	CORSOrigins     []string
	MaxUploadBytes  int64
	DefaultPerPage  int
	ImportBatchSize int
	// RequestLogging enables the per-request access log.
	RequestLogging bool
}

// NewRouter builds the full application router on top of db.
func NewRouter(db *gorm.DB, opts Options) *gin.Engine {
	// Initialize services
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db)
	workbookService := services.NewWorkbookService(db, opts.ImportBatchSize)
	auditService := services.NewAuditService()

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService, opts.DefaultPerPage)
	workbookHandler := handlers.NewWorkbookHandler(workbookService, auditService, opts.MaxUploadBytes)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.Recovery())
	if opts.RequestLogging {
		router.Use(middleware.RequestLogging())
	}
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(middleware.ErrorHandler())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(apperrors.ErrNotFound.StatusCode, apperrors.ErrNotFound.Body())
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(apperrors.ErrMethodNotAllowed.StatusCode, apperrors.ErrMethodNotAllowed.Body())
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", handlers.Home)

	api := router.Group("/api")

	// Health check endpoint
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.GET("/category-summary/", categoryHandler.GetCategorySummary)
	api.GET("/category", categoryHandler.GetCategoryCatalog)
	api.POST("/transaction-add", transactionHandler.AddTransaction)
	api.GET("/transactions/", transactionHandler.ListTransactions)
	api.GET("/typst-json/", categoryHandler.ExportSummaryJSON)
	api.GET("/excel-export/", workbookHandler.ExportWorkbook)
	api.POST("/excel-import/", workbookHandler.ImportWorkbook)

	return router
}
