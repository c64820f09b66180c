package credits

import (
	"errors"
	"net/http"

	"deskhive/internal/shared/middleware"
	"deskhive/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestRefundRequest opens a refund request for a booking
type RequestRefundRequest struct {
	BookingRef string          `json:"booking_ref" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	Reason     string          `json:"reason"`
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

// RequestRefund handles POST /api/v1/credits/refunds
// @Summary Request a refund as store credit
// @Tags credits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /credits/refunds [post]
func (c *Controller) RequestRefund(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", "missing user identity")
		return
	}

	var req RequestRefundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	refund, err := c.service.RequestRefund(ctx.Request.Context(), userID, req.BookingRef, req.Amount, req.Reason)
	if err != nil {
		if errors.Is(err, ErrOutstandingRefund) {
			response.Error(ctx, http.StatusConflict, "Refund already requested for this booking", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to request refund", err.Error())
		return
	}

	response.Success(ctx, http.StatusCreated, "Refund requested", refund)
}

// ApproveRefund handles POST /api/v1/credits/refunds/:id/approve
// @Summary Approve a pending refund (admin)
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Router /credits/refunds/{id}/approve [post]
func (c *Controller) ApproveRefund(ctx *gin.Context) {
	refundID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid refund id", err.Error())
		return
	}

	credit, err := c.service.Approve(ctx.Request.Context(), refundID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRefundNotFound):
			response.Error(ctx, http.StatusNotFound, "Refund not found", nil)
		case errors.Is(err, ErrAlreadyDecided):
			response.Error(ctx, http.StatusConflict, "Refund already decided", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to approve refund", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Refund approved", credit)
}

// RejectRefund handles POST /api/v1/credits/refunds/:id/reject
// @Summary Reject a pending refund (admin)
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Router /credits/refunds/{id}/reject [post]
func (c *Controller) RejectRefund(ctx *gin.Context) {
	refundID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid refund id", err.Error())
		return
	}

	refund, err := c.service.Reject(ctx.Request.Context(), refundID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRefundNotFound):
			response.Error(ctx, http.StatusNotFound, "Refund not found", nil)
		case errors.Is(err, ErrAlreadyDecided):
			response.Error(ctx, http.StatusConflict, "Refund already decided", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to reject refund", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Refund rejected", refund)
}

// ListRefunds handles GET /api/v1/credits/refunds
// @Summary List the caller's refund requests
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Router /credits/refunds [get]
func (c *Controller) ListRefunds(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", "missing user identity")
		return
	}

	refunds, err := c.service.ListRefunds(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list refunds", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Refunds retrieved", gin.H{"refunds": refunds})
}

// ListCredits handles GET /api/v1/credits
// @Summary List the caller's store credits with usage history
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Router /credits [get]
func (c *Controller) ListCredits(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", "missing user identity")
		return
	}

	creditList, err := c.service.ListCredits(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list credits", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Credits retrieved", gin.H{"credits": creditList})
}

// Balance handles GET /api/v1/credits/balance
// @Summary Get the caller's spendable credit balance
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Router /credits/balance [get]
func (c *Controller) Balance(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", "missing user identity")
		return
	}

	credit, err := c.service.SpendableCredit(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to fetch balance", err.Error())
		return
	}

	if credit == nil {
		response.Success(ctx, http.StatusOK, "No spendable credit", gin.H{"balance": decimal.Zero})
		return
	}
	response.Success(ctx, http.StatusOK, "Balance retrieved", credit)
}
