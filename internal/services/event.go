package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devevents/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.EventInput, imageURL string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event := domain.NewEvent(in, imageURL)
	if err := event.Prepare(nil); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return nil, err
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.getBySlug(ctx, slug)
}

func (s *eventService) getBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	slug = domain.NormalizeSlugParam(slug)
	if slug == "" {
		return nil, domain.NewValidationError("slug", "slug is required")
	}
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event %q: %w", slug, err)
	}
	return event, nil
}

// FindSimilarEvents returns the other events sharing at least one tag with the
// event at slug. An unknown or blank slug yields an empty list.
func (s *eventService) FindSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return []*domain.Event{}, nil
		}
		return nil, err
	}
	similar, err := s.eventRepo.ListByTags(ctx, event.Tags, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	return similar, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, slug string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	prev, err := s.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	event := patch.Apply(prev)
	if err := event.Prepare(prev); err != nil {
		return nil, err
	}
	event.UpdatedAt = s.now().UTC()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}
