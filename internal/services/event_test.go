package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"devevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEventInput(title string, tags ...string) domain.EventInput {
	if len(tags) == 0 {
		tags = []string{"go"}
	}
	return domain.EventInput{
		Title:       title,
		Description: "A gathering of gophers",
		Overview:    "Talks and pizza",
		Venue:       "Hall A",
		Location:    "Berlin",
		Date:        "January 5, 2025",
		Time:        "3:30 PM",
		Mode:        "Online",
		Audience:    "Developers",
		Agenda:      []string{"Welcome", "Talks"},
		Organizer:   "Gopher Guild",
		Tags:        tags,
	}
}

func newTestEventService(repo domain.EventRepository, clock *time.Time) *eventService {
	s := NewEventService(repo, 5*time.Second).(*eventService)
	s.now = func() time.Time { return *clock }
	return s
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("normalizes and persists", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo, &clock)

		e, err := svc.CreateEvent(ctx, validEventInput("Go Meetup: Berlin!"), "https://cdn/img.png")
		require.NoError(t, err)
		assert.Equal(t, "ev-1", e.ID)
		assert.Equal(t, "go-meetup-berlin", e.Slug)
		assert.Equal(t, "2025-01-05", e.Date)
		assert.Equal(t, "15:30", e.Time)
		assert.Equal(t, domain.ModeOnline, e.Mode)
		assert.Equal(t, "https://cdn/img.png", e.Image)
		assert.Equal(t, clock, e.CreatedAt)
		assert.Equal(t, clock, e.UpdatedAt)
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo, &clock)

		in := validEventInput("Go Meetup")
		in.Venue = "  "
		in.Tags = nil
		_, err := svc.CreateEvent(ctx, in, "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.ElementsMatch(t, []string{"image", "venue", "tags"}, verr.FieldNames())
		assert.Empty(t, repo.byID)
	})

	t.Run("bad date", func(t *testing.T) {
		svc := newTestEventService(newFakeEventRepo(), &clock)
		in := validEventInput("Go Meetup")
		in.Date = "someday"
		_, err := svc.CreateEvent(ctx, in, "https://img")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo, &clock)
		_, err := svc.CreateEvent(ctx, validEventInput("Go Meetup"), "https://img")
		require.NoError(t, err)

		_, err = svc.CreateEvent(ctx, validEventInput("go meetup"), "https://img")
		require.ErrorIs(t, err, domain.ErrDuplicateSlug)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		repo := newFakeEventRepo()
		repo.err = errors.New("boom")
		svc := newTestEventService(repo, &clock)
		_, err := svc.CreateEvent(ctx, validEventInput("Go Meetup"), "https://img")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create event")
	})
}

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeEventRepo()
	svc := newTestEventService(repo, &clock)

	_, err := svc.CreateEvent(ctx, validEventInput("First"), "https://img")
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	_, err = svc.CreateEvent(ctx, validEventInput("Second"), "https://img")
	require.NoError(t, err)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "second", events[0].Slug)
	assert.Equal(t, "first", events[1].Slug)
}

func TestEventService_GetEventBySlug(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeEventRepo()
	svc := newTestEventService(repo, &clock)
	_, err := svc.CreateEvent(ctx, validEventInput("Go Meetup"), "https://img")
	require.NoError(t, err)

	tests := []struct {
		name    string
		slug    string
		wantErr error
	}{
		{name: "exact", slug: "go-meetup"},
		{name: "trimmed and lower-cased", slug: "  GO-Meetup  "},
		{name: "blank", slug: "   ", wantErr: domain.ErrInvalidInput},
		{name: "missing", slug: "rust-meetup", wantErr: domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := svc.GetEventBySlug(ctx, tt.slug)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "go-meetup", e.Slug)
		})
	}
}

func TestEventService_FindSimilarEvents(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeEventRepo()
	svc := newTestEventService(repo, &clock)

	_, err := svc.CreateEvent(ctx, validEventInput("Go Meetup", "go", "community"), "https://img")
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, validEventInput("Go Night", "go"), "https://img")
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, validEventInput("Rust Night", "rust"), "https://img")
	require.NoError(t, err)

	t.Run("shares a tag, excludes itself", func(t *testing.T) {
		similar, err := svc.FindSimilarEvents(ctx, "go-meetup")
		require.NoError(t, err)
		require.Len(t, similar, 1)
		assert.Equal(t, "go-night", similar[0].Slug)
	})

	t.Run("no overlap", func(t *testing.T) {
		similar, err := svc.FindSimilarEvents(ctx, "rust-night")
		require.NoError(t, err)
		assert.Empty(t, similar)
	})

	t.Run("unknown slug yields empty list", func(t *testing.T) {
		similar, err := svc.FindSimilarEvents(ctx, "missing")
		require.NoError(t, err)
		assert.NotNil(t, similar)
		assert.Empty(t, similar)
	})

	t.Run("storage failure", func(t *testing.T) {
		failing := newFakeEventRepo()
		failing.err = errors.New("boom")
		_, err := newTestEventService(failing, &clock).FindSimilarEvents(ctx, "go-meetup")
		require.Error(t, err)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*fakeEventRepo, *eventService, *domain.Event) {
		repo := newFakeEventRepo()
		svc := newTestEventService(repo, &clock)
		e, err := svc.CreateEvent(ctx, validEventInput("Go Meetup"), "https://img")
		require.NoError(t, err)
		return repo, svc, e
	}

	t.Run("title change regenerates slug", func(t *testing.T) {
		repo, svc, created := setup(t)
		later := clock.Add(time.Hour)
		svc.now = func() time.Time { return later }

		updated, err := svc.UpdateEvent(ctx, "go-meetup", domain.EventPatch{Title: strPtr("Go Meetup 2")})
		require.NoError(t, err)
		assert.Equal(t, "go-meetup-2", updated.Slug)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.Equal(t, later, updated.UpdatedAt)
		assert.Equal(t, "go-meetup-2", repo.byID[created.ID].Slug)
	})

	t.Run("other changes keep slug", func(t *testing.T) {
		_, svc, _ := setup(t)
		updated, err := svc.UpdateEvent(ctx, "go-meetup", domain.EventPatch{
			Venue: strPtr("Hall B"),
			Time:  strPtr("7PM"),
		})
		require.NoError(t, err)
		assert.Equal(t, "go-meetup", updated.Slug)
		assert.Equal(t, "Hall B", updated.Venue)
		assert.Equal(t, "19:00", updated.Time)
		assert.Equal(t, "2025-01-05", updated.Date)
	})

	t.Run("invalid patch", func(t *testing.T) {
		_, svc, _ := setup(t)
		_, err := svc.UpdateEvent(ctx, "go-meetup", domain.EventPatch{Mode: strPtr("telepathy")})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("slug collision", func(t *testing.T) {
		_, svc, _ := setup(t)
		_, err := svc.CreateEvent(ctx, validEventInput("Rust Meetup"), "https://img")
		require.NoError(t, err)

		_, err = svc.UpdateEvent(ctx, "go-meetup", domain.EventPatch{Title: strPtr("Rust Meetup")})
		require.ErrorIs(t, err, domain.ErrDuplicateSlug)
	})

	t.Run("missing", func(t *testing.T) {
		_, svc, _ := setup(t)
		_, err := svc.UpdateEvent(ctx, "nope", domain.EventPatch{Venue: strPtr("x")})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func strPtr(s string) *string { return &s }
