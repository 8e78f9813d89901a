package v1

import (
	"github.com/gin-gonic/gin"

	"posadmin/internal/domain/auth"
	"posadmin/internal/domain/catalog/gateway"
	"posadmin/internal/domain/catalogs/branch"
	"posadmin/internal/domain/catalogs/category"
	"posadmin/internal/domain/catalogs/paymentmethod"
	"posadmin/internal/domain/catalogs/product"
	"posadmin/internal/domain/catalogs/unit"
	"posadmin/internal/domain/ledger"
	"posadmin/internal/infrastructure/http/v1/handlers"
	"posadmin/internal/infrastructure/http/v1/middleware"
	"posadmin/internal/infrastructure/storage/postgres"
	"posadmin/internal/infrastructure/storage/postgres/catalog_repo"
	"posadmin/internal/infrastructure/storage/postgres/ledger_repo"
	"posadmin/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager runs all repository work
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// SummaryCache backs the stock gateway read side
	SummaryCache gateway.SummaryCache

	// Audit records catalog changes; nil disables change logging
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
	apiV1 := router.Group("/api/v1")
	{
		registerAuthRoutes(apiV1, cfg)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerStockRoutes(protected, cfg)
		registerAuditRoutes(protected, cfg)
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

	publicAuth := rg.Group("/auth")

	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()
	txm := cfg.TxManager

	// --- BRANCHES ---
	{
		repo := catalog_repo.NewBranchRepo(txm)
		service := branch.NewService(repo, txm)
		registerAuditHooks(service.Hooks(), cfg.Audit, "branch")
		handler := handlers.NewBranchHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/branches"), handler, "manager")
	}

	// --- CATEGORIES ---
	{
		repo := catalog_repo.NewCategoryRepo(txm)
		service := category.NewService(repo, txm)
		registerAuditHooks(service.Hooks(), cfg.Audit, "category")
		handler := handlers.NewCategoryHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/categories"), handler, "manager")
	}

	// --- UNITS ---
	{
		repo := catalog_repo.NewUnitRepo(txm)
		service := unit.NewService(repo, txm)
		registerAuditHooks(service.Hooks(), cfg.Audit, "unit")
		handler := handlers.NewUnitHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/units"), handler, "manager")
	}

	// --- PAYMENT METHODS ---
	{
		repo := catalog_repo.NewPaymentMethodRepo(txm)
		service := paymentmethod.NewService(repo, txm)
		registerAuditHooks(service.Hooks(), cfg.Audit, "payment_method")
		handler := handlers.NewPaymentMethodHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/payment-methods"), handler, "manager")
	}

	// --- PRODUCTS ---
	{
		stockRepo := ledger_repo.NewStockRepo(txm)
		branchRepo := catalog_repo.NewBranchRepo(txm)
		productRepo := catalog_repo.NewProductRepo(txm)

		ledgerSvc := ledger.NewService(stockRepo, productRepo, branchRepo, txm)
		service := product.NewService(productRepo, txm, ledgerSvc)
		registerAuditHooks(service.Hooks(), cfg.Audit, "product")
		handler := handlers.NewProductHandler(baseHandler, service)

		group := catalogs.Group("/products")
		RegisterCatalogRoutes(group, handler, "manager")
		group.GET("/barcode/:barcode", handler.GetByBarcode)
		group.GET("/:id/variants", handler.ListVariants)
	}
}

// registerStockRoutes registers stock ledger and gateway endpoints.
func registerStockRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	txm := cfg.TxManager

	stockRepo := ledger_repo.NewStockRepo(txm)
	branchRepo := catalog_repo.NewBranchRepo(txm)
	productRepo := catalog_repo.NewProductRepo(txm)

	ledgerSvc := ledger.NewService(stockRepo, productRepo, branchRepo, txm)
	productSvc := product.NewService(productRepo, txm, ledgerSvc)
	gatewaySvc := gateway.NewService(stockRepo, productSvc, cfg.SummaryCache)

	handler := handlers.NewStockHandler(baseHandler, ledgerSvc, gatewaySvc)

	stock := rg.Group("/stock")

	// Mutations: cashiers adjust during sales, everything else is
	// manager territory.
	stock.POST("/adjust", middleware.RequireRole("manager", "cashier"), handler.Adjust)
	stock.PUT("/reorder-level", middleware.RequireRole("manager"), handler.SetReorderLevel)
	stock.POST("/initialize", middleware.RequireRole("manager"), handler.Initialize)

	// Reads
	stock.GET("/products/:productId", handler.ProductStock)
	stock.GET("/products/:productId/adjustments", handler.AdjustmentHistory)
	stock.GET("/products/:productId/summary", handler.Summary)
	stock.GET("/products/:productId/total", handler.TotalStock)
	stock.GET("/products/:productId/status", handler.Status)
	stock.GET("/products/:productId/value", handler.InventoryValue)
}

// registerAuditRoutes registers the catalog change log endpoint.
func registerAuditRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Audit == nil {
		return
	}

	handler := handlers.NewAuditHandler(handlers.NewBaseHandler(), cfg.Audit)

	audit := rg.Group("/audit")
	audit.GET("/:entityType/:id", middleware.RequireRole("manager"), handler.EntityHistory)
}
