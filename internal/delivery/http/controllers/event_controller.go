package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"devevents/internal/delivery/http/helpers"
	"devevents/internal/domain"
)

const (
	// DefaultMaxUploadBytes caps the multipart body of POST /events.
	DefaultMaxUploadBytes = 10 << 20
	multipartMemory       = 4 << 20
	isoTimestampLayout    = "2006-01-02T15:04:05.000Z"
)

// EventView is the API projection of an event. Timestamps are ISO-8601 UTC strings.
// BookingsCount is only set on the single-event response.
type EventView struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Overview      string   `json:"overview"`
	Image         string   `json:"image"`
	Venue         string   `json:"venue"`
	Location      string   `json:"location"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Mode          string   `json:"mode"`
	Audience      string   `json:"audience"`
	Agenda        []string `json:"agenda"`
	Organizer     string   `json:"organizer"`
	Tags          []string `json:"tags"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	BookingsCount *int64   `json:"bookings_count,omitempty"`
}

func isoTimestamp(t time.Time) string {
	return t.UTC().Format(isoTimestampLayout)
}

func newEventView(e *domain.Event) EventView {
	return EventView{
		ID:          e.ID,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		Overview:    e.Overview,
		Image:       e.Image,
		Venue:       e.Venue,
		Location:    e.Location,
		Date:        e.Date,
		Time:        e.Time,
		Mode:        e.Mode,
		Audience:    e.Audience,
		Agenda:      e.Agenda,
		Organizer:   e.Organizer,
		Tags:        e.Tags,
		CreatedAt:   isoTimestamp(e.CreatedAt),
		UpdatedAt:   isoTimestamp(e.UpdatedAt),
	}
}

func newEventViews(events []*domain.Event) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, newEventView(e))
	}
	return out
}

// EventListResponse is the body of GET /events and GET /events/{slug}/similar.
type EventListResponse struct {
	Events []EventView `json:"events"`
}

// EventListSuccessResponse is the success envelope for event lists (200).
type EventListSuccessResponse struct {
	Data  EventListResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventSuccessResponse is the success envelope for a single event.
type EventSuccessResponse struct {
	Data  EventView         `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateEventRequest is the request body for PATCH /events/{slug}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	domain.EventPatch
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	p := u.EventPatch
	if p == (domain.EventPatch{}) {
		return []string{"at least one field must be provided"}
	}
	return nil
}

type EventController struct {
	Logger         *slog.Logger
	Events         domain.EventService
	Bookings       domain.BookingService
	Images         domain.ImageStorage
	MaxUploadBytes int64
}

func NewEventController(logger *slog.Logger, events domain.EventService, bookings domain.BookingService, images domain.ImageStorage) *EventController {
	return &EventController{
		Logger:         logger,
		Events:         events,
		Bookings:       bookings,
		Images:         images,
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns every event, newest first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.ListEvents(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventListResponse{Events: newEventViews(events)})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event from a multipart form. agenda and tags accept a JSON array or a comma-separated list. The image is stored and its URL saved on the event. Slug, date and time are normalized server-side.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param overview formData string true "Overview"
// @Param venue formData string true "Venue"
// @Param location formData string true "Location"
// @Param date formData string true "Date, e.g. 2025-01-05 or January 5, 2025"
// @Param time formData string true "Time, e.g. 15:30 or 3:30 PM"
// @Param mode formData string true "online, offline or hybrid"
// @Param audience formData string true "Audience"
// @Param organizer formData string true "Organizer"
// @Param agenda formData string true "Agenda items"
// @Param tags formData string true "Tags"
// @Param image formData file true "Cover image"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid form data: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.WriteValidationError(w, domain.NewValidationError("image", "image file is required"))
		return
	}
	defer file.Close()

	in, verr := eventInputFromForm(r)
	if verr != nil {
		helpers.WriteValidationError(w, verr)
		return
	}
	// Reject invalid fields before anything is uploaded.
	if err := domain.NewEvent(in, header.Filename).Prepare(nil); err != nil {
		helpers.WriteValidationError(w, err)
		return
	}

	imageURL, err := c.Images.Upload(r.Context(), &domain.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}

	event, err := c.Events.CreateEvent(r.Context(), in, imageURL)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, newEventView(event))
}

func eventInputFromForm(r *http.Request) (domain.EventInput, error) {
	verr := &domain.ValidationError{}
	agenda, err := helpers.ParseListField(r.FormValue("agenda"))
	if err != nil {
		verr.Add("agenda", "agenda must be a JSON array or a comma-separated list")
	}
	tags, err := helpers.ParseListField(r.FormValue("tags"))
	if err != nil {
		verr.Add("tags", "tags must be a JSON array or a comma-separated list")
	}
	return domain.EventInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Venue:       r.FormValue("venue"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Mode:        r.FormValue("mode"),
		Audience:    r.FormValue("audience"),
		Agenda:      agenda,
		Organizer:   r.FormValue("organizer"),
		Tags:        tags,
	}, verr.OrNil()
}

// GetEvent godoc
// @Summary Get an event by slug
// @Description Returns the event with its booking count. The slug is matched case-insensitively after trimming.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Events.GetEventBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	count, err := c.Bookings.CountBookings(r.Context(), event.ID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	view := newEventView(event)
	view.BookingsCount = &count
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Applies the provided fields. Changing the title regenerates the slug; changed dates and times are re-normalized.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Events.UpdateEvent(r.Context(), r.PathValue("slug"), req.EventPatch)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, newEventView(event))
}

// ListSimilarEvents godoc
// @Summary List similar events
// @Description Returns the other events sharing at least one tag with the event. Unknown slugs return an empty list.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/similar [get]
func (c *EventController) ListSimilarEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.FindSimilarEvents(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventListResponse{Events: newEventViews(events)})
}
