package slots

import (
	"github.com/gin-gonic/gin"
)

// SetupSlotRoutes configures slot validation routes
func SetupSlotRoutes(rg *gin.RouterGroup, controller *Controller) {
	slots := rg.Group("/slots")
	{
		slots.POST("/validate", controller.ValidateWindow) // POST /api/v1/slots/validate
	}
}
