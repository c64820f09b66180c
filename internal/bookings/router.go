package bookings

import (
	"deskhive/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures booking and draft routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookingGroup := rg.Group("/bookings")
	bookingGroup.Use(middleware.JWTAuth())
	{
		bookingGroup.POST("", controller.CreateBooking)      // POST /api/v1/bookings
		bookingGroup.GET("/draft", controller.GetDraft)      // GET /api/v1/bookings/draft
		bookingGroup.PUT("/draft", controller.SaveDraft)     // PUT /api/v1/bookings/draft
		bookingGroup.DELETE("/draft", controller.ClearDraft) // DELETE /api/v1/bookings/draft
	}
}
