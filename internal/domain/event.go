package domain

import (
	"context"
	"strings"
	"time"
)

// Event modes accepted by the mode field.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Event represents a listed event.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"notblank"`
	Slug        string    `json:"slug"`
	Description string    `json:"description" validate:"notblank"`
	Overview    string    `json:"overview" validate:"notblank"`
	Image       string    `json:"image" validate:"notblank"`
	Venue       string    `json:"venue" validate:"notblank"`
	Location    string    `json:"location" validate:"notblank"`
	Date        string    `json:"date" validate:"notblank"`
	Time        string    `json:"time" validate:"notblank"`
	Mode        string    `json:"mode" validate:"notblank,oneof=online offline hybrid"`
	Audience    string    `json:"audience" validate:"notblank"`
	Agenda      []string  `json:"agenda" validate:"min=1,dive,notblank"`
	Organizer   string    `json:"organizer" validate:"notblank"`
	Tags        []string  `json:"tags" validate:"min=1,dive,notblank"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventInput carries the admin-supplied fields of a new event. Image is attached separately.
type EventInput struct {
	Title       string
	Description string
	Overview    string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Agenda      []string
	Organizer   string
	Tags        []string
}

// NewEvent builds an Event from input with the uploaded image URL attached.
// Slug, date and time are derived later by Prepare.
func NewEvent(in EventInput, imageURL string) *Event {
	return &Event{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Overview:    in.Overview,
		Image:       strings.TrimSpace(imageURL),
		Venue:       in.Venue,
		Location:    in.Location,
		Date:        in.Date,
		Time:        in.Time,
		Mode:        strings.TrimSpace(strings.ToLower(in.Mode)),
		Audience:    in.Audience,
		Agenda:      in.Agenda,
		Organizer:   in.Organizer,
		Tags:        in.Tags,
	}
}

// EventPatch holds optional field changes for an existing event. Nil fields are left untouched.
type EventPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Overview    *string   `json:"overview"`
	Image       *string   `json:"image"`
	Venue       *string   `json:"venue"`
	Location    *string   `json:"location"`
	Date        *string   `json:"date"`
	Time        *string   `json:"time"`
	Mode        *string   `json:"mode"`
	Audience    *string   `json:"audience"`
	Agenda      *[]string `json:"agenda"`
	Organizer   *string   `json:"organizer"`
	Tags        *[]string `json:"tags"`
}

// Apply returns a copy of e with the patch applied.
func (p EventPatch) Apply(e *Event) *Event {
	out := *e
	out.Agenda = append([]string(nil), e.Agenda...)
	out.Tags = append([]string(nil), e.Tags...)
	if p.Title != nil {
		out.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Overview != nil {
		out.Overview = *p.Overview
	}
	if p.Image != nil {
		out.Image = strings.TrimSpace(*p.Image)
	}
	if p.Venue != nil {
		out.Venue = *p.Venue
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.Time != nil {
		out.Time = *p.Time
	}
	if p.Mode != nil {
		out.Mode = strings.TrimSpace(strings.ToLower(*p.Mode))
	}
	if p.Audience != nil {
		out.Audience = *p.Audience
	}
	if p.Agenda != nil {
		out.Agenda = *p.Agenda
	}
	if p.Organizer != nil {
		out.Organizer = *p.Organizer
	}
	if p.Tags != nil {
		out.Tags = *p.Tags
	}
	return &out
}

// Prepare validates the event and derives its stored representation. prev is the
// last persisted state, or nil for a new event. The slug is regenerated only when
// the title changed or no slug exists; date and time are normalized only when
// they changed.
func (e *Event) Prepare(prev *Event) error {
	if err := validateStruct(e); err != nil {
		return err
	}
	if prev == nil || e.Title != prev.Title || e.Slug == "" {
		e.Slug = GenerateSlug(e.Title)
		if e.Slug == "" {
			return NewValidationError("title", "title must contain at least one letter or digit")
		}
	}
	if prev == nil || e.Date != prev.Date {
		date, err := NormalizeDate(e.Date)
		if err != nil {
			return NewValidationError("date", err.Error())
		}
		e.Date = date
	}
	if prev == nil || e.Time != prev.Time {
		e.Time = NormalizeTime(e.Time)
	}
	if !IsClockTime(e.Time) {
		return NewValidationError("time", "time must be in HH:MM format")
	}
	return nil
}

// NormalizeSlugParam trims and lower-cases a slug taken from a request.
func NormalizeSlugParam(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// List returns all events ordered by creation time, newest first.
	List(ctx context.Context) ([]*Event, error)
	// ListByTags returns events other than excludeID that carry at least one of tags.
	ListByTags(ctx context.Context, tags []string, excludeID string) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
}

// EventService defines event listing and administration.
type EventService interface {
	CreateEvent(ctx context.Context, in EventInput, imageURL string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	FindSimilarEvents(ctx context.Context, slug string) ([]*Event, error)
	UpdateEvent(ctx context.Context, slug string, patch EventPatch) (*Event, error)
}
