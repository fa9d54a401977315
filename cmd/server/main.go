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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	httpapi "helpmatch-backend/internal/api/http"
	"helpmatch-backend/internal/config"
	"helpmatch-backend/internal/jobs"
	"helpmatch-backend/internal/logger"
	"helpmatch-backend/internal/realtime"
	"helpmatch-backend/internal/repository/postgres"
	"helpmatch-backend/internal/scheduler"
	"helpmatch-backend/internal/security"
	"helpmatch-backend/internal/service"
	"helpmatch-backend/internal/ws"
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
	logger.Info("Starting HelpMatch Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize the real-time hub
	hub := realtime.NewHub()

	// Optional push service for offline recipients
	var pushSvc service.PushService
	if cfg.Push.CredentialsFile != "" {
		pushSvc, err = service.NewFCMPushService(context.Background(), cfg.Push.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize push service", "error", err)
			log.Fatalf("Failed to initialize push service: %v", err)
		}
		logger.Info("Push notifications enabled")
	} else {
		logger.Info("Push notifications disabled (no credentials file)")
	}

	// Optional reminder email
	var emailSvc service.EmailService
	if cfg.Email.SendGridAPIKey != "" {
		emailSvc = service.NewSendGridEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
		logger.Info("Reminder email enabled", "from", cfg.Email.FromEmail)
	} else {
		logger.Info("Reminder email disabled (no API key)")
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	lifecycleSvc := service.NewLifecycleService(
		store.RequestRepository,
		store.OfferRepository,
		store.RatingRepository,
		store.UserRepository,
		hub,
		pushSvc,
	)
	chatSvc := service.NewChatService(
		store.ChatRepository,
		store.RequestRepository,
		store.UserRepository,
		hub,
		pushSvc,
	)

	// Reminder scheduler
	jobRunner := jobs.NewJobRunner(store.RequestRepository, store.UserRepository, hub, emailSvc, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// HTTP routes + websocket endpoint
	router := mux.NewRouter()
	api := httpapi.NewAPI(authSvc, lifecycleSvc, chatSvc)
	api.Register(router, httpapi.NewAuthMiddleware(tokenManager))

	wsHandler := ws.NewHandler(hub, tokenManager, chatSvc)
	router.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}
