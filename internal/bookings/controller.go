package bookings

import (
	"errors"
	"net/http"
	"time"

	"deskhive/internal/availability"
	"deskhive/internal/pricing"
	"deskhive/internal/shared/middleware"
	"deskhive/internal/shared/utils/response"
	"deskhive/internal/slots"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CreateRequest is a complete booking submission
type CreateRequest struct {
	Location      string                `json:"location" validate:"required"`
	StartAt       time.Time             `json:"start_at" validate:"required"`
	EndAt         time.Time             `json:"end_at" validate:"required"`
	SeatNumbers   []string              `json:"seat_numbers" validate:"required,min=1"`
	PaymentMethod pricing.PaymentMethod `json:"payment_method" validate:"required,oneof=CARD PAYNOW"`
	PromoCode     string                `json:"promo_code"`
	UsePackage    bool                  `json:"use_package"`
	UseCredit     bool                  `json:"use_credit"`
	Capacity      int                   `json:"capacity" validate:"omitempty,min=1"`
}

type Controller struct {
	service   Service
	drafts    *DraftStore
	validator *validator.Validate
}

func NewController(service Service, drafts *DraftStore) *Controller {
	return &Controller{
		service:   service,
		drafts:    drafts,
		validator: validator.New(),
	}
}

// CreateBooking handles POST /api/v1/bookings
// @Summary Create a booking and open checkout
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /bookings [post]
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", "missing user identity")
		return
	}

	var req CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	result, err := c.service.Create(ctx.Request.Context(), CreateInput{
		UserID: userID,
		Window: slots.ReservationWindow{
			Location:    req.Location,
			StartAt:     req.StartAt,
			EndAt:       req.EndAt,
			SeatNumbers: req.SeatNumbers,
		},
		Method:     req.PaymentMethod,
		PromoCode:  req.PromoCode,
		UsePackage: req.UsePackage,
		UseCredit:  req.UseCredit,
		Capacity:   req.Capacity,
	})
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

		var conflict *availability.ConflictError
		if errors.As(err, &conflict) {
			response.RespondJSON(ctx, "error", http.StatusConflict,
				"Seats unavailable", gin.H{
					"overlapping_seats": conflict.OverlappingSeats,
					"capacity_exceeded": conflict.CapacityExceeded,
				}, nil)
			return
		}

		response.Error(ctx, http.StatusInternalServerError, "Failed to create booking", err.Error())
		return
	}

	response.Success(ctx, http.StatusCreated, "Booking created", result)
}

// GetDraft handles GET /api/v1/bookings/draft
// @Summary Load the caller's booking draft
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Router /bookings/draft [get]
func (c *Controller) GetDraft(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", "missing user identity")
		return
	}

	draft, err := c.drafts.Load(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to load draft", err.Error())
		return
	}
	if draft == nil {
		response.Error(ctx, http.StatusNotFound, "No draft saved", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Draft loaded", draft)
}

// SaveDraft handles PUT /api/v1/bookings/draft
// @Summary Save the caller's booking draft
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /bookings/draft [put]
func (c *Controller) SaveDraft(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", "missing user identity")
		return
	}

	var draft BookingDraft
	if err := ctx.ShouldBindJSON(&draft); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid draft body", err.Error())
		return
	}

	if err := c.drafts.Save(ctx.Request.Context(), userID, draft); err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to save draft", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Draft saved", nil)
}

// ClearDraft handles DELETE /api/v1/bookings/draft
// @Summary Clear the caller's booking draft
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Router /bookings/draft [delete]
func (c *Controller) ClearDraft(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", "missing user identity")
		return
	}

	if err := c.drafts.Clear(ctx.Request.Context(), userID); err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to clear draft", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Draft cleared", nil)
}
