package pricing

import (
	"deskhive/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPricingRoutes configures pricing routes
func SetupPricingRoutes(rg *gin.RouterGroup, controller *Controller) {
	pricing := rg.Group("/pricing")
	pricing.Use(middleware.JWTAuth())
	{
		pricing.POST("/quote", controller.QuoteBooking) // POST /api/v1/pricing/quote
	}
}
