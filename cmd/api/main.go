package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stayhub/stayhub-api/internal/config"
	"github.com/stayhub/stayhub-api/internal/domain/auth"
	"github.com/stayhub/stayhub-api/internal/domain/booking"
	"github.com/stayhub/stayhub-api/internal/domain/property"
	"github.com/stayhub/stayhub-api/internal/domain/review"
	"github.com/stayhub/stayhub-api/internal/domain/user"
	"github.com/stayhub/stayhub-api/internal/middleware"
	"github.com/stayhub/stayhub-api/internal/pkg/database"
	"github.com/stayhub/stayhub-api/internal/pkg/jwt"
	"github.com/stayhub/stayhub-api/internal/pkg/logger"
	"github.com/stayhub/stayhub-api/internal/pkg/response"
	"github.com/stayhub/stayhub-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewS3Storage(ctx, storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	userRepo := user.NewRepository(db)
	propertyRepo := property.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	reviewRepo := review.NewRepository(db)

	authService := auth.NewService(userRepo, jwtService, redisClient)
	userService := user.NewService(userRepo, store)
	propertyService := property.NewService(propertyRepo, store)
	bookingService := booking.NewService(bookingRepo, propertyRepo)
	reviewService := review.NewService(reviewRepo, propertyRepo)

	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	propertyHandler := property.NewHandler(propertyService)
	bookingHandler := booking.NewHandler(bookingService)
	reviewHandler := review.NewHandler(reviewService)

	authMW := middleware.Auth(jwtService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable")
			return
		}
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMW))
		r.Mount("/users", userHandler.Routes(authMW))
		r.Route("/properties", func(r chi.Router) {
			propertyHandler.Register(r, authMW)
			reviewHandler.Register(r, authMW)
		})
		r.Mount("/bookings", bookingHandler.Routes(authMW))
	})

	// Background sweep: CONFIRMED bookings past checkout become COMPLETED
	go runBookingSweep(ctx, bookingService, cfg.BookingSweepInterval)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func runBookingSweep(ctx context.Context, svc *booking.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if _, err := svc.CompletePastCheckouts(sweepCtx); err != nil {
				log.Error().Err(err).Msg("booking sweep failed")
			}
			cancel()
		}
	}
}
