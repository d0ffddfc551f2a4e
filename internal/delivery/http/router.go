package http

import (
	"log/slog"
	"net/http"

	"devevents/internal/adapters/storage"
	"devevents/internal/delivery/http/controllers"
	"devevents/internal/delivery/http/middleware"
	"devevents/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events   *controllers.EventController
	Bookings *controllers.BookingController
	Auth     *controllers.AuthController
	Health   *controllers.HealthController
}

// Options configures the router's middleware.
type Options struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	BookingLimiter *middleware.RateLimiter
	AllowedOrigins []string
	// UploadDir is served under /uploads/ when set (local image storage).
	UploadDir string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, opts Options) http.Handler {
	mux := http.NewServeMux()
	admin := middleware.RequireAdmin(opts.Verifier, opts.Logger)
	limited := middleware.RateLimit(opts.BookingLimiter, opts.Logger)

	// Events
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("POST /events", admin(c.Events.CreateEvent))
	mux.HandleFunc("GET /events/{slug}", c.Events.GetEvent)
	mux.HandleFunc("PATCH /events/{slug}", admin(c.Events.UpdateEvent))
	mux.HandleFunc("GET /events/{slug}/similar", c.Events.ListSimilarEvents)

	// Bookings
	mux.HandleFunc("POST /events/{slug}/bookings", limited(c.Bookings.CreateBooking))

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	mux.HandleFunc("GET /healthz", c.Health.Health)

	if opts.UploadDir != "" {
		mux.Handle("GET "+storage.UploadsPath, http.StripPrefix(storage.UploadsPath, http.FileServer(http.Dir(opts.UploadDir))))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = mux
	h = middleware.CORS(opts.AllowedOrigins, h)
	h = middleware.LoggingMiddleware(opts.Logger, h)
	h = middleware.RequestID(h)
	return h
}
