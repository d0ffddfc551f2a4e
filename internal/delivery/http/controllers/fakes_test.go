package controllers

import (
	"context"
	"io"
	"log/slog"

	"devevents/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr    error
	listErr      error
	getErr       error
	similarErr   error
	updateErr    error
	events       []*domain.Event
	bySlug       map[string]*domain.Event
	similar      []*domain.Event
	lastInput    domain.EventInput
	lastImageURL string
	lastSlug     string
	lastPatch    domain.EventPatch
	createCalled bool
}

func (f *fakeEventService) CreateEvent(_ context.Context, in domain.EventInput, imageURL string) (*domain.Event, error) {
	f.createCalled = true
	f.lastInput, f.lastImageURL = in, imageURL
	if f.createErr != nil {
		return nil, f.createErr
	}
	e := domain.NewEvent(in, imageURL)
	if err := e.Prepare(nil); err != nil {
		return nil, err
	}
	e.ID = "ev-1"
	return e, nil
}

func (f *fakeEventService) ListEvents(_ context.Context) ([]*domain.Event, error) {
	return f.events, f.listErr
}

func (f *fakeEventService) GetEventBySlug(_ context.Context, slug string) (*domain.Event, error) {
	f.lastSlug = slug
	if f.getErr != nil {
		return nil, f.getErr
	}
	if e, ok := f.bySlug[domain.NormalizeSlugParam(slug)]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) FindSimilarEvents(_ context.Context, slug string) ([]*domain.Event, error) {
	f.lastSlug = slug
	if f.similarErr != nil {
		return nil, f.similarErr
	}
	return f.similar, nil
}

func (f *fakeEventService) UpdateEvent(_ context.Context, slug string, patch domain.EventPatch) (*domain.Event, error) {
	f.lastSlug, f.lastPatch = slug, patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	e, ok := f.bySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return patch.Apply(e), nil
}

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	createErr    error
	countErr     error
	count        int64
	lastEventID  string
	lastSlug     string
	lastEmail    string
	lastCountFor string
}

func (f *fakeBookingService) CreateBooking(_ context.Context, eventID, slug, email string) (*domain.Booking, error) {
	f.lastEventID, f.lastSlug, f.lastEmail = eventID, slug, email
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Booking{ID: "bk-1", EventID: eventID, Email: domain.NormalizeEmail(email)}, nil
}

func (f *fakeBookingService) CountBookings(_ context.Context, eventID string) (int64, error) {
	f.lastCountFor = eventID
	return f.count, f.countErr
}

// fakeImageStorage records uploads and returns a fixed URL.
type fakeImageStorage struct {
	err          error
	uploads      int
	lastFilename string
	lastBody     []byte
}

func (f *fakeImageStorage) Upload(_ context.Context, img *domain.ImageUpload) (string, error) {
	f.uploads++
	f.lastFilename = img.Filename
	f.lastBody, _ = io.ReadAll(img.Body)
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example/" + img.Filename, nil
}

// fakeAuthService implements domain.AuthService.
type fakeAuthService struct {
	token     string
	err       error
	lastEmail string
}

func (f *fakeAuthService) Login(_ context.Context, email, _ string) (string, error) {
	f.lastEmail = email
	return f.token, f.err
}
