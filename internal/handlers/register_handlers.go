package handlers

import (
	"github.com/SscSPs/inventory_ledger_app/cmd/docs"
	"github.com/SscSPs/inventory_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger_app/internal/middleware"
	"github.com/SscSPs/inventory_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		// Fall back to a conservative default rather than starting unlimited.
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	// Apply rate limiting and AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.RateLimit(ipLimiter), middleware.AuthMiddleware(cfg.JWTSecret))

	registerProductRoutes(v1, services.Product, services.Invoice)
	registerPartyRoutes(v1, services.Party, domain.PartyTypeCustomer, "customers")
	registerPartyRoutes(v1, services.Party, domain.PartyTypeSupplier, "suppliers")
	RegisterInvoiceRoutes(v1, services.Invoice, domain.InvoiceTypePurchase, "purchases")
	RegisterInvoiceRoutes(v1, services.Invoice, domain.InvoiceTypeSale, "sales")
	registerSettlementRoutes(v1, services.Settlement, domain.SettlementTypePayable, "payable-payments")
	registerSettlementRoutes(v1, services.Settlement, domain.SettlementTypeReceivable, "receivable-payments")
	registerReportingRoutes(v1, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
