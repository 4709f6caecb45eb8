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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/srpnetwork/realty-api/internal/auth"
	"github.com/srpnetwork/realty-api/internal/background"
	"github.com/srpnetwork/realty-api/internal/config"
	"github.com/srpnetwork/realty-api/internal/database"
	"github.com/srpnetwork/realty-api/internal/handlers"
	middlewareCustom "github.com/srpnetwork/realty-api/internal/middleware"
	"github.com/srpnetwork/realty-api/internal/models"
	"github.com/srpnetwork/realty-api/internal/notify"
	"github.com/srpnetwork/realty-api/internal/repositories"
	"github.com/srpnetwork/realty-api/internal/routes"
	"github.com/srpnetwork/realty-api/internal/services"
	pkgauth "github.com/srpnetwork/realty-api/pkg/auth"
	pkglogger "github.com/srpnetwork/realty-api/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Repositories
	credRepo := repositories.NewCredentialRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	propertyRepo := repositories.NewPropertyRepository(db)
	inquiryRepo := repositories.NewInquiryRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	revokeRepo := repositories.NewTokenRevocationRepository(db)

	tokenSweeper := background.NewTokenSweeper(revokeRepo, logger, cfg.Auth.CleanupInterval)

	tokenManager := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)

	auditLogger := pkglogger.NewAuditLogger(logger)

	// Notification dispatch over AWS SES
	emailSender, err := notify.NewSESEmailSender(cfg.Email.AWSRegion, cfg.Email.FromAddress, logger)
	if err != nil {
		logger.Error("failed to initialize email sender", slog.Any("error", err))
		os.Exit(1)
	}
	dispatcher := notify.NewDispatcher(emailSender, cfg.Email.AdminAddress, cfg.Server.PublicBaseURL, logger)

	// Services
	identityService := services.NewIdentityService(credRepo, profileRepo, revokeRepo, tokenManager, dispatcher, logger, auditLogger)
	membershipService := services.NewMembershipService(profileRepo, dispatcher, logger, auditLogger)
	favoritesService := services.NewFavoritesService(profileRepo, propertyRepo, dispatcher, logger)
	propertyService := services.NewPropertyService(propertyRepo, logger)
	inquiryService := services.NewInquiryService(inquiryRepo, propertyRepo, dispatcher, logger)
	blogService := services.NewBlogService(blogRepo, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(identityService)
	propertyHandler := handlers.NewPropertyHandler(propertyService, favoritesService, identityService)
	favoritesHandler := handlers.NewFavoritesHandler(favoritesService)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)
	blogHandler := handlers.NewBlogHandler(blogService, identityService)
	adminHandler := handlers.NewAdminHandler(membershipService, favoritesService, dispatcher, identityService)

	// Bootstrap the first admin if configured
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminProfile(ctx, credRepo, profileRepo, logger); err != nil {
		logger.Error("failed to ensure admin profile", slog.Any("error", err))
	}
	cancel()

	corsConfig := middlewareCustom.NewCORSConfig(cfg.Server.AllowedOrigins)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(
		router,
		authHandler,
		propertyHandler,
		favoritesHandler,
		inquiryHandler,
		blogHandler,
		adminHandler,
		tokenManager,
		profileRepo,
		revokeRepo,
	)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()

	go tokenSweeper.Run(sweepCtx)

	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	sweepCancel()
	tokenSweeper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// ensureAdminProfile creates the first admin if ADMIN_EMAIL and
// ADMIN_PASSWORD are set and no credential exists for that email yet.
func ensureAdminProfile(
	ctx context.Context,
	credRepo *repositories.CredentialRepository,
	profileRepo *repositories.ProfileRepository,
	logger *slog.Logger,
) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Info("no ADMIN_EMAIL or ADMIN_PASSWORD set, skipping admin bootstrap")
		return nil
	}

	_, err := credRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("admin profile already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}

	hashedPassword, err := pkgauth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	cred, err := credRepo.Create(ctx, &models.Credential{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin credential: %w", err)
	}

	_, err = profileRepo.Create(ctx, &models.Profile{
		ID:     cred.ID,
		Name:   "Admin",
		Email:  adminEmail,
		Role:   models.RoleAdmin,
		Status: models.StatusActive,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin profile: %w", err)
	}

	logger.Info("admin profile created")
	return nil
}
