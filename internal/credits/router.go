package credits

import (
	"deskhive/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCreditRoutes configures refund and credit routes
func SetupCreditRoutes(rg *gin.RouterGroup, controller *Controller) {
	creditGroup := rg.Group("/credits")
	creditGroup.Use(middleware.JWTAuth())
	{
		creditGroup.GET("", controller.ListCredits)            // GET /api/v1/credits
		creditGroup.GET("/balance", controller.Balance)        // GET /api/v1/credits/balance
		creditGroup.GET("/refunds", controller.ListRefunds)    // GET /api/v1/credits/refunds
		creditGroup.POST("/refunds", controller.RequestRefund) // POST /api/v1/credits/refunds

		admin := creditGroup.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/refunds/:id/approve", controller.ApproveRefund) // POST /api/v1/credits/refunds/:id/approve
			admin.POST("/refunds/:id/reject", controller.RejectRefund)   // POST /api/v1/credits/refunds/:id/reject
		}
	}
}
