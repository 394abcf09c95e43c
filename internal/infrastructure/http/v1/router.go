package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/catalogs/customer"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/documents/quote"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/pricing/catalog"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/settings"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/http/v1/handlers"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/http/v1/middleware"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/invoicing/fic"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/logger"
)

// RouterConfig holds the wired services the API exposes.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// Domain services
	Quotes    *quote.Service
	Customers *customer.Service
	Settings  *settings.Service

	// Pricing engine and the in-memory catalog it reads.
	Engine        *pricing.Engine
	CatalogIndex  *catalog.Index
	CatalogLoader *catalog.Loader

	// Invoicing sync; nil disables the delivery note endpoint.
	InvoicingSync *fic.SyncService
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
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.CatalogIndex)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		protected.Use(middleware.UserContext())

		registerPricingRoutes(protected, cfg)
		registerQuoteRoutes(protected, cfg)
		registerStaffRoutes(protected, cfg)
	}

	return router
}

// registerPricingRoutes registers the configurator-facing endpoints:
// live price preview, resolved context and the catalog browse tree.
func registerPricingRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	pricingHandler := handlers.NewPricingHandler(baseHandler, cfg.Engine, cfg.Settings, cfg.Customers)
	pricingGroup := rg.Group("/pricing")
	{
		pricingGroup.POST("/preview", pricingHandler.Preview)
		pricingGroup.GET("/context", pricingHandler.Context)
	}

	feedHandler := handlers.NewCatalogFeedHandler(baseHandler, cfg.CatalogIndex, cfg.CatalogLoader)
	catalogGroup := rg.Group("/catalog")
	{
		catalogGroup.GET("/tree", feedHandler.Tree)
		catalogGroup.GET("/codes/:code", feedHandler.Lookup)
		catalogGroup.GET("/status", feedHandler.Status)
		catalogGroup.POST("/reload", middleware.RequireStaff(), feedHandler.Reload)
	}
}

// registerQuoteRoutes registers the quote lifecycle. Ownership checks
// live in the handler; only recalculation is staff-gated here.
func registerQuoteRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	quoteHandler := handlers.NewQuoteHandler(baseHandler, cfg.Quotes)

	quotes := rg.Group("/quotes")
	{
		quotes.GET("", quoteHandler.List)
		quotes.POST("", quoteHandler.Create)
		quotes.GET("/:id", quoteHandler.Get)
		quotes.PUT("/:id", quoteHandler.Update)
		quotes.DELETE("/:id", quoteHandler.Delete)
		quotes.POST("/:id/submit", quoteHandler.Submit)
		quotes.POST("/:id/transition", quoteHandler.Transition)
		quotes.POST("/:id/recalculate", middleware.RequireStaff(), quoteHandler.Recalculate)
	}
}

// registerStaffRoutes registers back-office endpoints: customer
// registry, pricing settings and delivery notes.
func registerStaffRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	staff := rg.Group("")
	staff.Use(middleware.RequireStaff())

	baseHandler := handlers.NewBaseHandler()

	customerHandler := handlers.NewCustomerHandler(baseHandler, cfg.Customers)
	RegisterCatalogRoutes(staff.Group("/customers"), customerHandler)

	settingsHandler := handlers.NewSettingsHandler(baseHandler, cfg.Settings)
	settingsGroup := staff.Group("/settings")
	{
		settingsGroup.GET("", settingsHandler.Get)
		settingsGroup.PUT("", settingsHandler.Update)
	}

	if cfg.InvoicingSync != nil {
		deliveryHandler := handlers.NewDeliveryNoteHandler(baseHandler, cfg.InvoicingSync)
		staff.POST("/delivery-notes", deliveryHandler.Create)
	}
}
