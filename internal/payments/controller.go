package payments

import (
	"errors"
	"net/http"

	"deskhive/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// WebhookPayload is the gateway's server-to-server settlement event
type WebhookPayload struct {
	Reference string `json:"reference" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// HandleReturn handles GET /api/v1/payments/return
// The gateway redirects the user's browser here after checkout.
// @Summary Gateway redirect callback
// @Tags payments
// @Produce json
// @Router /payments/return [get]
func (c *Controller) HandleReturn(ctx *gin.Context) {
	reference := ctx.Query("reference")
	if reference == "" {
		response.Error(ctx, http.StatusBadRequest, "Missing reference", nil)
		return
	}

	succeeded := ctx.Query("status") == "success"
	c.reconcile(ctx, reference, succeeded)
}

// HandleWebhook handles POST /api/v1/payments/webhook
// @Summary Gateway settlement webhook
// @Tags payments
// @Accept json
// @Produce json
// @Router /payments/webhook [post]
func (c *Controller) HandleWebhook(ctx *gin.Context) {
	var payload WebhookPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid webhook payload", err.Error())
		return
	}

	c.reconcile(ctx, payload.Reference, payload.Status == "SUCCEEDED")
}

func (c *Controller) reconcile(ctx *gin.Context, reference string, succeeded bool) {
	attempt, replay, err := c.service.Reconcile(ctx.Request.Context(), reference, succeeded)
	if err != nil {
		if errors.Is(err, ErrUnknownReference) {
			response.Error(ctx, http.StatusNotFound, "Unknown payment reference", reference)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to reconcile payment", err.Error())
		return
	}

	message := "Payment reconciled"
	if replay {
		message = "Payment already reconciled"
	}
	response.Success(ctx, http.StatusOK, message, gin.H{
		"reference": attempt.Reference,
		"status":    attempt.Status,
		"replay":    replay,
	})
}
