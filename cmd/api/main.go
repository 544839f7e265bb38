package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/campuslink/campuslink-api/internal/config"
	"github.com/campuslink/campuslink-api/internal/domain/ban"
	"github.com/campuslink/campuslink-api/internal/domain/block"
	"github.com/campuslink/campuslink-api/internal/domain/content"
	"github.com/campuslink/campuslink-api/internal/domain/moderation"
	"github.com/campuslink/campuslink-api/internal/domain/privacy"
	"github.com/campuslink/campuslink-api/internal/domain/report"
	"github.com/campuslink/campuslink-api/internal/domain/user"
	"github.com/campuslink/campuslink-api/internal/domain/visibility"
	"github.com/campuslink/campuslink-api/internal/middleware"
	"github.com/campuslink/campuslink-api/internal/pkg/classifier"
	"github.com/campuslink/campuslink-api/internal/pkg/database"
	"github.com/campuslink/campuslink-api/internal/pkg/jwt"
	"github.com/campuslink/campuslink-api/internal/pkg/logger"
	pkgresponse "github.com/campuslink/campuslink-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting CampusLink API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	classifierClient := classifier.NewClient(
		cfg.ClassifierBaseURL,
		cfg.ClassifierToken,
		time.Duration(cfg.ClassifierTimeoutSeconds)*time.Second,
		"campuslink-api/1.0",
	)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	privacyRepo := privacy.NewRepository(db)
	blockRepo := block.NewRepository(db)
	banRepo := ban.NewRepository(db)
	contentRepo := content.NewRepository(db)
	reportRepo := report.NewRepository(db)

	// ---------- Services ----------
	evaluator := visibility.NewEvaluator(blockRepo, privacyRepo)
	banTracker := ban.NewTracker(banRepo)
	moderationService := moderation.NewService(
		classifierClient,
		banRepo,
		time.Duration(cfg.ClassifierTimeoutSeconds)*time.Second,
	)
	blockService := block.NewService(blockRepo, userRepo)
	contentService := content.NewService(contentRepo, userRepo, evaluator, moderationService, banTracker)
	reportService := report.NewService(reportRepo, contentRepo, userRepo)

	// ---------- Handlers ----------
	privacyHandler := privacy.NewHandler(privacyRepo)
	blockHandler := block.NewHandler(blockService)
	banHandler := ban.NewHandler(banTracker)
	contentHandler := content.NewHandler(contentService)
	reportHandler := report.NewHandler(reportService)

	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.RequireAdmin()
	reportRateLimit := middleware.RateLimit(redis, "reports", cfg.ReportRateLimit, cfg.ReportRateWindow)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/posts", contentHandler.Routes(authMiddleware))
		r.Mount("/blocks", blockHandler.Routes(authMiddleware))
		r.Mount("/privacy", privacyHandler.Routes(authMiddleware))
		r.Mount("/bans", banHandler.Routes(authMiddleware))
		r.Mount("/reports", reportHandler.Routes(authMiddleware, reportRateLimit))

		r.Mount("/admin/reports", reportHandler.AdminRoutes(authMiddleware, adminMiddleware))
		r.Mount("/admin/bans", banHandler.AdminRoutes(authMiddleware, adminMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-done
	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
