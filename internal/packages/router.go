package packages

import (
	"deskhive/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPackageRoutes configures package pass routes
func SetupPackageRoutes(rg *gin.RouterGroup, controller *Controller) {
	packages := rg.Group("/packages")
	packages.Use(middleware.JWTAuth())
	{
		packages.GET("", controller.ListMyPasses) // GET /api/v1/packages
	}
}
