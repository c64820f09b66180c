// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"deskhive/internal/availability"
	"deskhive/internal/backendclient"
	"deskhive/internal/bookings"
	"deskhive/internal/credits"
	"deskhive/internal/notifications"
	"deskhive/internal/packages"
	"deskhive/internal/payments"
	"deskhive/internal/pricing"
	"deskhive/internal/promos"
	"deskhive/internal/shared/config"
	"deskhive/internal/shared/database"
	"deskhive/internal/slots"
	"deskhive/pkg/cache"
	"deskhive/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier notifications.Producer

	store        *backendclient.Client
	cacheService cache.Service
	slotOpts     slots.Options

	packagesService packages.Service
	creditsService  credits.Service
	pricingService  pricing.Service
	paymentsService payments.Service
	drafts          *bookings.DraftStore
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
	}
}

// CreditService exposes the ledger for background jobs wired in main
func (r *Router) CreditService() credits.Service {
	return r.creditsService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Shared dependencies
	r.store = backendclient.New(r.config.Backend)
	r.cacheService = cache.NewService(r.db.GetRedisClient())
	r.slotOpts = slots.Options{StrictGrid: r.config.Slots.StrictGrid}

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Swagger UI
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler))

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupSlotRoutes(api)
		r.setupAvailabilityRoutes(api)
		r.setupPackageRoutes(api)
		r.setupPromoRoutes(api)

		// Credits before pricing: the ledger is a pricing instrument source
		r.setupCreditRoutes(api)
		r.setupPricingRoutes(api)

		// Payments before bookings: bookings opens checkouts
		r.setupPaymentRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "deskhive-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "deskhive-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupSlotRoutes configures booking-window validation routes
func (r *Router) setupSlotRoutes(rg *gin.RouterGroup) {
	slots.SetupSlotRoutes(rg, slots.NewController(r.slotOpts))
}

// setupAvailabilityRoutes configures seat availability routes
func (r *Router) setupAvailabilityRoutes(rg *gin.RouterGroup) {
	availabilityService := availability.NewService(r.store)
	availability.SetupAvailabilityRoutes(rg, availability.NewController(availabilityService))
}

// setupPackageRoutes configures package pass routes
func (r *Router) setupPackageRoutes(rg *gin.RouterGroup) {
	r.packagesService = packages.NewService(r.store)
	packages.SetupPackageRoutes(rg, packages.NewController(r.packagesService))
}

// setupPromoRoutes configures promo code routes
func (r *Router) setupPromoRoutes(rg *gin.RouterGroup) {
	promosService := promos.NewService(r.store)
	promos.SetupPromoRoutes(rg, promos.NewController(promosService))
}

// setupCreditRoutes configures the refund and credit ledger routes
func (r *Router) setupCreditRoutes(rg *gin.RouterGroup) {
	creditsRepo := credits.NewRepository(r.db.GetPostgreSQL())
	r.creditsService = credits.NewService(creditsRepo, r.notifier, r.config.Credits, logger.GetDefault())
	credits.SetupCreditRoutes(rg, credits.NewController(r.creditsService))
}

// setupPricingRoutes configures quote routes
func (r *Router) setupPricingRoutes(rg *gin.RouterGroup) {
	baseRate, err := decimal.NewFromString(r.config.Pricing.BaseHourlyRate)
	if err != nil {
		baseRate = decimal.NewFromInt(5)
	}

	feeProvider := pricing.NewFeeSettingsProvider(r.store, r.cacheService,
		r.config.Redis.FeeSettingsTTL, logger.GetDefault())
	resolver := pricing.NewResolver(r.config.Pricing.AllowPromoWithPackage)

	r.pricingService = pricing.NewService(resolver, r.packagesService, r.store,
		r.creditsService, feeProvider, baseRate)
	pricing.SetupPricingRoutes(rg, pricing.NewController(r.pricingService, r.slotOpts))
}

// setupPaymentRoutes configures gateway callback routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentsRepo := payments.NewRepository(r.db.GetPostgreSQL())
	gateway := payments.NewGateway(r.config.Gateway)

	r.paymentsService = payments.NewService(paymentsRepo, gateway, r.creditsService,
		r.notifier, r.config.Gateway, logger.GetDefault())
	payments.SetupPaymentRoutes(rg, payments.NewController(r.paymentsService))
}

// setupBookingRoutes configures booking orchestration and draft routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	r.drafts = bookings.NewDraftStore(r.cacheService, r.config.Redis.BookingDraftTTL)

	bookingsService := bookings.NewService(r.store, r.pricingService, r.paymentsService,
		r.creditsService, r.notifier, r.drafts, r.slotOpts, logger.GetDefault())
	bookings.SetupBookingRoutes(rg, bookings.NewController(bookingsService, r.drafts))
}
