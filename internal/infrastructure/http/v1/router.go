package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/auth"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/catalogs/lead"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/catalogs/product"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/catalogs/warehouse"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/documents/goods_receipt"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/documents/sale"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/posting"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/registers/stock"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/domain/reports"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/http/v1/handlers"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/http/v1/middleware"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres/document_repo"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres/register_repo"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres/report_repo"
	"github.com/Timbal-Mexico/barocerp-sub000/pkg/logger"
	"github.com/Timbal-Mexico/barocerp-sub000/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (health checks, numerator)
	Pool *postgres.Pool

	// TxManager coordinates transactions across repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for document number generation
	Numerator numerator.Generator

	// Audit records document mutations (nil disables audit logging)
	Audit *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		// Protected endpoints
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
		registerRegisterRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// Public auth endpoints (no JWT required)
	publicAuth := rg.Group("/auth")

	// Protected auth endpoints (JWT required)
	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(cfg.TxManager)
		service := product.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewProductHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/products"), handler, "catalog:product")
	}

	// --- WAREHOUSES ---
	{
		repo := catalog_repo.NewWarehouseRepo(cfg.TxManager)
		service := warehouse.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewWarehouseHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/warehouses"), handler, "catalog:warehouse")
	}

	// --- LEADS ---
	{
		repo := catalog_repo.NewLeadRepo(cfg.TxManager)
		service := lead.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewLeadHandler(baseHandler, service)

		leads := catalogs.Group("/leads")
		RegisterCatalogRoutes(leads, handler, "catalog:lead")

		// Pipeline-specific routes on top of standard CRUD
		leads.POST("/:id/status", middleware.RequirePermission("catalog:lead:update"), handler.UpdateStatus)
		leads.POST("/:id/assign", middleware.RequirePermission("catalog:lead:update"), handler.Assign)
		leads.GET("/by-status/:status", middleware.RequirePermission("catalog:lead:read"), handler.ListByStatus)
	}
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docsGroup := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	// Shared dependencies for documents
	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	stockService := stock.NewService(stockRepo)
	postingEngine := posting.NewEngine(stockService, cfg.TxManager)

	// --- SALES ---
	{
		repo := document_repo.NewSaleRepo(cfg.TxManager, cfg.Audit)
		service := sale.NewService(repo, postingEngine, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewSaleHandler(baseHandler, service, cfg.Audit)

		sales := docsGroup.Group("/sales")
		RegisterDocumentRoutes(sales, handler, "document:sale")
		sales.GET("/:id/history", middleware.RequirePermission("document:sale:read"), handler.History)
	}

	// --- GOODS RECEIPTS ---
	{
		repo := document_repo.NewGoodsReceiptRepo(cfg.TxManager, cfg.Audit)
		service := goods_receipt.NewService(repo, postingEngine, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewGoodsReceiptHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/goods-receipt"), handler, "document:goods_receipt")
	}
}

// registerRegisterRoutes registers accumulation register endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	registers := rg.Group("/registers")
	baseHandler := handlers.NewBaseHandler()

	// Stock register
	{
		stockRepo := register_repo.NewStockRepo(cfg.TxManager)
		stockService := stock.NewService(stockRepo)
		stockHandler := handlers.NewStockHandler(baseHandler, stockService, stockRepo)

		stockGroup := registers.Group("/stock")
		stockGroup.GET("/balances", middleware.RequirePermission("register:stock:read"), stockHandler.GetBalances)
		stockGroup.GET("/movements", middleware.RequirePermission("register:stock:read"), stockHandler.GetMovements)
		stockGroup.GET("/turnovers", middleware.RequirePermission("register:stock:read"), stockHandler.GetTurnovers)
		stockGroup.GET("/availability/:productId", middleware.RequirePermission("register:stock:read"), stockHandler.GetProductAvailability)
		stockGroup.POST("/check", middleware.RequirePermission("register:stock:read"), stockHandler.CheckBasket)
	}
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	reportsGroup := rg.Group("/reports")
	baseHandler := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportService := reports.NewService(reportRepo)
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)

	reportsGroup.GET("/sales-by-channel", middleware.RequirePermission("report:sales:read"), reportHandler.SalesByChannel)
	reportsGroup.GET("/sales-by-month", middleware.RequirePermission("report:sales:read"), reportHandler.SalesByMonth)
	reportsGroup.GET("/summary", middleware.RequirePermission("report:sales:read"), reportHandler.GetSummary)
}
