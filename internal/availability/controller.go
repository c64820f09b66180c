package availability

import (
	"errors"
	"net/http"
	"time"

	"deskhive/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CheckRequest asks whether a seat selection is still free in a window
type CheckRequest struct {
	Location    string    `json:"location" validate:"required"`
	StartAt     time.Time `json:"start_at" validate:"required"`
	EndAt       time.Time `json:"end_at" validate:"required"`
	SeatNumbers []string  `json:"seat_numbers" validate:"required,min=1"`
	Capacity    int       `json:"capacity" validate:"omitempty,min=1"`
}

// CheckResponse reports the gate outcome plus the booked-seat snapshot
type CheckResponse struct {
	Available        bool     `json:"available"`
	BookedSeats      []string `json:"booked_seats"`
	OverlappingSeats []string `json:"overlapping_seats,omitempty"`
	CapacityExceeded bool     `json:"capacity_exceeded,omitempty"`
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

// CheckSeats handles POST /api/v1/availability/check
// @Summary Check whether requested seats are free for a window
// @Tags availability
// @Accept json
// @Produce json
// @Router /availability/check [post]
func (c *Controller) CheckSeats(ctx *gin.Context) {
	var req CheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	bookedSeats, err := c.service.CheckAvailability(ctx.Request.Context(), req.Location, req.StartAt, req.EndAt, req.SeatNumbers, req.Capacity)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			response.RespondJSON(ctx, "error", http.StatusConflict,
				"Seats unavailable", CheckResponse{
					Available:        false,
					BookedSeats:      bookedSeats,
					OverlappingSeats: conflict.OverlappingSeats,
					CapacityExceeded: conflict.CapacityExceeded,
				}, nil)
			return
		}
		response.Error(ctx, http.StatusBadGateway, "Failed to check availability", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Seats available", CheckResponse{
		Available:   true,
		BookedSeats: bookedSeats,
	})
}
