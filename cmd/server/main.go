package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devevents/config"
	_ "devevents/docs"
	"devevents/internal/adapters/auth"
	"devevents/internal/adapters/email"
	"devevents/internal/adapters/storage"
	"devevents/internal/database"
	httpdelivery "devevents/internal/delivery/http"
	"devevents/internal/delivery/http/controllers"
	"devevents/internal/delivery/http/middleware"
	"devevents/internal/domain"
	mongorepo "devevents/internal/repository/mongo"
	pgrepo "devevents/internal/repository/postgres"
	"devevents/internal/services"
)

const shutdownTimeout = 15 * time.Second

// @title DevEvents API
// @version 1.0
// @description Developer event listings and bookings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// store bundles the repositories and lifecycle hooks of the selected driver.
type store struct {
	events   domain.EventRepository
	bookings domain.BookingRepository
	ping     controllers.Pinger
	ensure   func(ctx context.Context) error
	close    func(ctx context.Context) error
}

func openStore(cfg *config.Config) store {
	if cfg.StoreDriver == config.StorePostgres {
		conn := database.NewPostgresConnector(cfg.DBUrl)
		return store{
			events:   pgrepo.NewEventRepository(conn),
			bookings: pgrepo.NewBookingRepository(conn),
			ping:     func(ctx context.Context) error { return conn.Ping(ctx, database.PingPostgres) },
			ensure:   func(ctx context.Context) error { return pgrepo.EnsureSchema(ctx, conn) },
			close:    conn.Close,
		}
	}
	conn := database.NewMongoConnector(cfg.MongoURI, cfg.MongoDatabase)
	return store{
		events:   mongorepo.NewEventRepository(conn),
		bookings: mongorepo.NewBookingRepository(conn),
		ping:     func(ctx context.Context) error { return conn.Ping(ctx, database.PingMongo) },
		ensure:   func(ctx context.Context) error { return mongorepo.EnsureIndexes(ctx, conn) },
		close:    conn.Close,
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := openStore(cfg)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			logger.Error("close store", "store", cfg.StoreDriver, "err", err)
		}
	}()

	setupCtx, cancel := context.WithTimeout(ctx, cfg.ContextTimeout)
	err := st.ensure(setupCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("prepare %s store: %w", cfg.StoreDriver, err)
	}

	images, err := storage.NewImageStorage(storage.Config{
		Provider:      cfg.ImageStorage,
		UploadDir:     cfg.UploadDir,
		PublicBaseURL: cfg.PublicBaseURL,
		S3: storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	})
	if err != nil {
		return fmt.Errorf("image storage: %w", err)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddr,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}

	if cfg.JWTSecret == "" || cfg.AdminEmail == "" || cfg.AdminPassHash == "" {
		logger.Warn("admin login disabled: JWT_SECRET, ADMIN_EMAIL and ADMIN_PASSWORD_HASH must all be set")
	}

	eventService := services.NewEventService(st.events, cfg.ContextTimeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	bookingService := services.NewBookingService(st.bookings, st.events, emailService, cfg.PublicBaseURL, cfg.ContextTimeout)
	authService := services.NewAuthService(
		auth.NewJWTIssuer(cfg.JWTSecret),
		auth.NewBcryptHasher(0),
		cfg.AdminEmail,
		cfg.AdminPassHash,
		cfg.JWTExpiry,
	)

	limiter := middleware.NewRateLimiter(cfg.BookingRateRPS, cfg.BookingRateBurst)
	go limiter.Run(ctx)

	uploadDir := ""
	if cfg.ImageStorage != "s3" {
		uploadDir = cfg.UploadDir
	}
	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Events:   controllers.NewEventController(logger, eventService, bookingService, images),
		Bookings: controllers.NewBookingController(logger, bookingService),
		Auth:     controllers.NewAuthController(logger, authService),
		Health:   controllers.NewHealthController(logger, cfg.StoreDriver, st.ping),
	}, httpdelivery.Options{
		Logger:         logger,
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		BookingLimiter: limiter,
		AllowedOrigins: cfg.AllowedOrigins,
		UploadDir:      uploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
