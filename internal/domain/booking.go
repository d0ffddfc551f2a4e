package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// emailRegexp is an RFC 5322 style address pattern.
var emailRegexp = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Booking represents a spot booked on an event by email.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking creates a new Booking with a normalized email. ID is typically set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   strings.TrimSpace(eventID),
		Email:     NormalizeEmail(email),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the booking's own fields. Event existence is checked by the service.
func (b *Booking) Validate() error {
	verr := &ValidationError{}
	if b.EventID == "" {
		verr.Add("event_id", "event_id is required")
	}
	switch {
	case b.Email == "":
		verr.Add("email", "email is required")
	case !emailRegexp.MatchString(b.Email):
		verr.Add("email", "Please provide a valid email address")
	}
	return verr.OrNil()
}

// BookingResult is the outcome reported back to the booking form.
type BookingResult struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Booking *Booking `json:"booking,omitempty"`
}

// BookingResultFrom converts a CreateBooking outcome into a BookingResult.
func BookingResultFrom(b *Booking, err error) BookingResult {
	if err != nil {
		return BookingResult{Success: false, Error: err.Error()}
	}
	return BookingResult{Success: true, Booking: b}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	// Create inserts the booking. Returns ErrAlreadyBooked on a duplicate (event, email) pair.
	Create(ctx context.Context, booking *Booking) error
	CountByEventID(ctx context.Context, eventID string) (int64, error)
}

// BookingService defines booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, eventID, slug, email string) (*Booking, error)
	CountBookings(ctx context.Context, eventID string) (int64, error)
}
