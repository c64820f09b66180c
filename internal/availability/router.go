package availability

import (
	"github.com/gin-gonic/gin"
)

// SetupAvailabilityRoutes configures seat availability routes
func SetupAvailabilityRoutes(rg *gin.RouterGroup, controller *Controller) {
	availability := rg.Group("/availability")
	{
		availability.POST("/check", controller.CheckSeats) // POST /api/v1/availability/check
	}
}
