package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/zapagente/zapagente/internal/database"
	"github.com/zapagente/zapagente/internal/empresa"
	"github.com/zapagente/zapagente/internal/persona"
	"github.com/zapagente/zapagente/internal/relay"
	"github.com/zapagente/zapagente/internal/tasks"
	"github.com/zapagente/zapagente/pkg/config"
	"github.com/zapagente/zapagente/pkg/queue"
	"github.com/zapagente/zapagente/pkg/util"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting ZapAgente worker")

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Initialize services. The worker refuses to start without the
	// outbound credentials; retrying tasks without them is pointless.
	empresaService := empresa.NewService(db)
	personaService := persona.NewService(db, logger)

	if cfg.DeepSeek.APIKey == "" || !cfg.Twilio.Configured() {
		logger.Error("DEEPSEEK_API_KEY and Twilio credentials are required for the worker")
		os.Exit(1)
	}

	completionClient := relay.NewDeepSeekClient(cfg.DeepSeek.APIKey, cfg.DeepSeek.APIURL)
	messagingClient := relay.NewTwilioClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
	relayService := relay.NewService(db, completionClient, messagingClient, empresaService, personaService, logger)

	// Create Asynq server
	srv := queue.NewServer(&cfg.Redis, 10)

	// Create task handler
	handler := tasks.NewHandler(relayService, logger)

	// Register handlers
	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	// Handle shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down worker...")
		srv.Shutdown()
		cancel()
	}()

	logger.Info("worker started, waiting for tasks...")

	// Start the server
	if err := srv.Run(mux); err != nil {
		logger.Error("worker error", "error", err)
	}

	// Wait for context cancellation
	<-ctx.Done()

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("worker stopped")
}
