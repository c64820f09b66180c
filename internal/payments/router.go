package payments

import (
	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes configures payment callback routes.
// Both endpoints are unauthenticated: the caller is the gateway, keyed by
// reference, not a logged-in user.
func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	payments := rg.Group("/payments")
	{
		payments.GET("/return", controller.HandleReturn)    // GET /api/v1/payments/return
		payments.POST("/webhook", controller.HandleWebhook) // POST /api/v1/payments/webhook
	}
}
