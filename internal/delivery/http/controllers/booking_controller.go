package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"devevents/internal/delivery/http/helpers"
	"devevents/internal/domain"
)

// CreateBookingRequest is the request body for POST /events/{slug}/bookings.
type CreateBookingRequest struct {
	EventID string `json:"event_id"`
	Email   string `json:"email"`
}

// Validate implements Validator. The email format is checked by the booking service.
func (c CreateBookingRequest) Validate() []string {
	if strings.TrimSpace(c.EventID) == "" {
		return []string{"event_id is required"}
	}
	return nil
}

// CreateBookingSuccessResponse is the success envelope for POST /events/{slug}/bookings (201).
type CreateBookingSuccessResponse struct {
	Data  domain.BookingResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBooking godoc
// @Summary Book a spot on an event
// @Description Books the email onto the event. Each email can book an event once.
// @Tags bookings
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param body body CreateBookingRequest true "Booking"
// @Success 201 {object} controllers.CreateBookingSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already booked)"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), req.EventID, r.PathValue("slug"), req.Email)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, domain.BookingResultFrom(booking, nil))
}
