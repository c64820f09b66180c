package slots

import (
	"errors"
	"net/http"
	"time"

	"deskhive/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidateRequest is a candidate window as submitted by the booking form
type ValidateRequest struct {
	Location    string    `json:"location" validate:"required"`
	StartAt     time.Time `json:"start_at" validate:"required"`
	EndAt       time.Time `json:"end_at" validate:"required"`
	SeatNumbers []string  `json:"seat_numbers" validate:"required,min=1"`
}

// ValidateResponse carries the grid-normalized window back to the form
type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Window ReservationWindow `json:"window"`
}

type Controller struct {
	opts      Options
	validator *validator.Validate
}

func NewController(opts Options) *Controller {
	return &Controller{
		opts:      opts,
		validator: validator.New(),
	}
}

// ValidateWindow handles POST /api/v1/slots/validate
// @Summary Validate a candidate booking window
// @Tags slots
// @Accept json
// @Produce json
// @Router /slots/validate [post]
func (c *Controller) ValidateWindow(ctx *gin.Context) {
	var req ValidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	window := ReservationWindow{
		Location:    req.Location,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		SeatNumbers: req.SeatNumbers,
	}

	normalized, err := Validate(window, time.Now(), c.opts)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity,
				"Booking window rejected", nil, map[string]interface{}{
					"kind":   verr.Kind,
					"detail": verr.Detail,
				})
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Validation failed", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Booking window accepted", ValidateResponse{
		Valid:  true,
		Window: normalized,
	})
}
