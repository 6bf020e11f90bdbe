package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "fleetrent-backend/internal/api/http"
	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository/postgres"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FleetRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	var identity security.IdentityProvider
	switch cfg.Auth.Provider {
	case "firebase":
		logger.Info("Using Firebase identity provider", "project_id", cfg.Auth.FirebaseProjectID)
		identity, err = security.NewFirebaseIdentityProvider(context.Background(), cfg.Auth.FirebaseCredentials, cfg.Auth.FirebaseProjectID)
		if err != nil {
			logger.Error("Failed to initialize Firebase identity provider", "error", err)
			log.Fatalf("Failed to initialize Firebase identity provider: %v", err)
		}
	default:
		logger.Info("Using JWT identity provider")
		identity = security.NewJWTIdentityProvider(tokenManager)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, identity)
	userSvc := service.NewUserService(store.UserRepository, store.OrganizationRepository, store.UserRoleRepository)
	roleSvc := service.NewRoleService(store.RoleRepository, store.UserRoleRepository)
	tenantSvc := service.NewTenantService(store.UserRepository, store.RoleRepository, store.UserRoleRepository, store.AgencyRepository)
	orgSvc := service.NewOrganizationService(store.OrganizationRepository)
	agencySvc := service.NewAgencyService(store.AgencyRepository, store.OrganizationRepository)
	driverSvc := service.NewDriverService(store.DriverRepository, store.OrganizationRepository)
	planSvc := service.NewPlanService(store.SubscriptionPlanRepository)
	onboardingSvc := service.NewOnboardingService(
		store.OnboardingRepository,
		store.UserRepository,
		store.OrganizationRepository,
		store.RoleRepository,
		store.UserRoleRepository,
		store.SubscriptionPlanRepository,
		store.SubscriptionRepository,
		emailSvc,
		time.Duration(cfg.Onboarding.SessionTTLHours)*time.Hour,
	)

	// System roles must exist before the server accepts traffic
	if err := roleSvc.BootstrapSystemRoles(context.Background()); err != nil {
		logger.Error("Failed to bootstrap system roles", "error", err)
		log.Fatalf("Failed to bootstrap system roles: %v", err)
	}
	logger.Info("System roles bootstrapped")

	// Initialize HTTP handlers and router
	handlers := httpapi.Handlers{
		Auth:       httpapi.NewAuthHandler(authSvc),
		User:       httpapi.NewUserHandler(userSvc),
		Role:       httpapi.NewRoleHandler(roleSvc, tenantSvc),
		Org:        httpapi.NewOrganizationHandler(orgSvc),
		Agency:     httpapi.NewAgencyHandler(agencySvc),
		Driver:     httpapi.NewDriverHandler(driverSvc),
		Plan:       httpapi.NewPlanHandler(planSvc),
		Onboarding: httpapi.NewOnboardingHandler(onboardingSvc),
	}
	router := httpapi.NewRouter(handlers, authSvc, tenantSvc)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
