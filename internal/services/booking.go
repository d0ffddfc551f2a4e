package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"devevents/internal/domain"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	publicBaseURL  string
	contextTimeout time.Duration
	now            func() time.Time
}

// NewBookingService returns a BookingService. emailService may be nil, in which case no confirmation is sent.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	publicBaseURL string,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		publicBaseURL:  strings.TrimRight(publicBaseURL, "/"),
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// CreateBooking books email onto the event with eventID. slug is the page the
// booking came from and is used for the link in the confirmation email.
func (s *bookingService) CreateBooking(ctx context.Context, eventID, slug, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now().UTC()
	booking := domain.NewBooking(eventID, email, now, now)
	if err := booking.Validate(); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventReference
		}
		return nil, fmt.Errorf("look up event: %w", err)
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrAlreadyBooked) || errors.Is(err, domain.ErrEventReference) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, event, slug, booking)
	return booking, nil
}

func (s *bookingService) sendConfirmation(ctx context.Context, event *domain.Event, slug string, booking *domain.Booking) {
	if s.emailService == nil {
		return
	}
	slug = domain.NormalizeSlugParam(slug)
	if slug == "" {
		slug = event.Slug
	}
	data := &domain.BookingConfirmationEmailData{
		Email:    booking.Email,
		Title:    event.Title,
		Date:     event.Date,
		Time:     event.Time,
		Venue:    event.Venue,
		Location: event.Location,
		EventURL: s.publicBaseURL + "/events/" + url.PathEscape(slug),
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		log.Printf("[BOOKING] confirmation email for booking %s failed: %v", booking.ID, err)
	}
}

func (s *bookingService) CountBookings(ctx context.Context, eventID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	n, err := s.bookingRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}
