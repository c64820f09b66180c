package pricing

import (
	"errors"
	"net/http"
	"time"

	"deskhive/internal/shared/middleware"
	"deskhive/internal/shared/utils/response"
	"deskhive/internal/slots"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// QuoteRequest prices a candidate booking without creating it
type QuoteRequest struct {
	Location      string        `json:"location" validate:"required"`
	StartAt       time.Time     `json:"start_at" validate:"required"`
	EndAt         time.Time     `json:"end_at" validate:"required"`
	SeatNumbers   []string      `json:"seat_numbers" validate:"required,min=1"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=CARD PAYNOW"`
	PromoCode     string        `json:"promo_code"`
	UsePackage    bool          `json:"use_package"`
	UseCredit     bool          `json:"use_credit"`
}

type Controller struct {
	service   Service
	slotOpts  slots.Options
	validator *validator.Validate
}

func NewController(service Service, slotOpts slots.Options) *Controller {
	return &Controller{
		service:   service,
		slotOpts:  slotOpts,
		validator: validator.New(),
	}
}

// QuoteBooking handles POST /api/v1/pricing/quote
// @Summary Price a candidate booking
// @Tags pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /pricing/quote [post]
func (c *Controller) QuoteBooking(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", "missing user identity")
		return
	}

	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	window, err := slots.Validate(slots.ReservationWindow{
		Location:    req.Location,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		SeatNumbers: req.SeatNumbers,
	}, time.Now(), c.slotOpts)
	if err != nil {
		var verr *slots.ValidationError
		if errors.As(err, &verr) {
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity,
				"Booking window rejected", nil, map[string]interface{}{
					"kind":   verr.Kind,
					"detail": verr.Detail,
				})
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Window validation failed", err.Error())
		return
	}

	invoice, err := c.service.Quote(ctx.Request.Context(), QuoteInput{
		UserID:     userID,
		Window:     window,
		Method:     req.PaymentMethod,
		PromoCode:  req.PromoCode,
		UsePackage: req.UsePackage,
		UseCredit:  req.UseCredit,
	}, time.Now())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to price booking", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Quote computed", invoice)
}
