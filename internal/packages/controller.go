package packages

import (
	"net/http"
	"time"

	"deskhive/internal/shared/middleware"
	"deskhive/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListMyPasses handles GET /api/v1/packages
// @Summary List the caller's package passes
// @Tags packages
// @Produce json
// @Security BearerAuth
// @Router /packages [get]
func (c *Controller) ListMyPasses(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", "missing user identity")
		return
	}

	onlyUsable := ctx.Query("usable") == "true"

	var (
		passes []PackagePass
		err    error
	)
	if onlyUsable {
		passes, err = c.service.UsablePasses(ctx.Request.Context(), userID, time.Now())
	} else {
		passes, err = c.service.ListPasses(ctx.Request.Context(), userID)
	}
	if err != nil {
		response.Error(ctx, http.StatusBadGateway, "Failed to fetch packages", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Packages retrieved", gin.H{"packages": passes})
}
