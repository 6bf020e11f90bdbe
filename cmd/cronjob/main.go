package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/jobs"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository/postgres"
	"fleetrent-backend/internal/scheduler"
	"fleetrent-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'purge-sessions', 'expire-subscriptions', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FleetRent Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services
	emailService := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	orgService := service.NewOrganizationService(store.OrganizationRepository)

	services := &jobs.Services{
		Email: emailService,
		Org:   orgService,
	}

	jobRunner := jobs.NewJobRunner(db, store, services, cfg)

	// Run-once mode for manual invocation
	if *runOnce != "" {
		runSingleJob(jobRunner, *runOnce)
		return
	}

	// Scheduled mode
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutdown signal received", "signal", sig.String())

	sched.Stop()
}

func runSingleJob(jr *jobs.JobRunner, name string) {
	switch name {
	case "purge-sessions":
		jr.PurgeExpiredOnboardingSessions()
	case "expire-subscriptions":
		jr.ExpireSubscriptions()
	case "send-expiry-reminders":
		jr.SendSubscriptionExpiryReminders()
	case "cleanup-role-grants":
		jr.CleanupRevokedRoleGrants()
	case "all":
		jr.RunAllMaintenanceJobs()
	default:
		logger.Error("Unknown job name", "job", name)
		os.Exit(1)
	}
}
