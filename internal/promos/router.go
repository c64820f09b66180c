package promos

import (
	"deskhive/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPromoRoutes configures promo code routes
func SetupPromoRoutes(rg *gin.RouterGroup, controller *Controller) {
	promos := rg.Group("/promos")
	promos.Use(middleware.JWTAuth())
	{
		promos.POST("/check", controller.CheckCode) // POST /api/v1/promos/check
	}
}
