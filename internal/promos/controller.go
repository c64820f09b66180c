package promos

import (
	"net/http"
	"time"

	"deskhive/internal/shared/middleware"
	"deskhive/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CheckRequest asks whether a code applies to a subtotal
type CheckRequest struct {
	Code     string          `json:"code" validate:"required"`
	Subtotal decimal.Decimal `json:"subtotal" validate:"required"`
}

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// CheckCode handles POST /api/v1/promos/check
// @Summary Check a promo code against a subtotal
// @Tags promos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /promos/check [post]
func (c *Controller) CheckCode(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", "missing user identity")
		return
	}

	var req CheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	result, err := c.service.Check(ctx.Request.Context(), userID, req.Code, req.Subtotal, time.Now())
	if err != nil {
		response.Error(ctx, http.StatusBadGateway, "Failed to check promo code", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Promo code checked", result)
}
