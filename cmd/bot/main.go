package main

import (
	"os"
	"os/signal"
	"syscall"

	"homework_review_bot/internal/app"
	"homework_review_bot/internal/domain/checkpoint"
	icheckpoint "homework_review_bot/internal/infra/checkpoint"
	"homework_review_bot/internal/infra/config"
	idb "homework_review_bot/internal/infra/database"
	"homework_review_bot/internal/infra/logger"
	"homework_review_bot/internal/infra/practicum"
	"homework_review_bot/internal/infra/scheduler"
	itelegram "homework_review_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Chat ID: %d", cfg.LogLevel, cfg.Environment, cfg.TelegramChatID)

	// Initialize Telegram Bot. No poller is configured: the bot only sends.
	bot, err := telebot.NewBot(telebot.Settings{Token: cfg.TelegramToken})
	if err != nil {
		log.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}
	telegramClient := itelegram.NewTelebotAdapter(bot)
	log.Info("Telegram client initialized.")

	// Initialize Checkpoint Repository. Postgres when DATABASE_URL is set,
	// otherwise the checkpoint file next to the binary.
	var checkpointRepo checkpoint.Repository
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to database: %v", err)
		}
		defer db.Close()
		checkpointRepo = idb.NewPostgresCheckpointRepository(db)
		log.Info("Postgres checkpoint repository initialized.")
	} else {
		checkpointRepo = icheckpoint.NewFileRepository(cfg.CheckpointFile)
		log.Infof("File checkpoint repository initialized at %s.", cfg.CheckpointFile)
	}

	// Initialize Practicum API client
	apiClient := practicum.NewClient(practicum.Config{
		Endpoint: cfg.PracticumEndpoint,
		Token:    cfg.PracticumToken,
		Timeout:  cfg.HTTPTimeout,
	}, log)
	log.Info("Practicum API client initialized.")

	// Initialize error notifier and review service
	notifier := app.NewErrorNotifier(telegramClient, cfg.TelegramChatID, log)
	reviewService := app.NewReviewService(apiClient, telegramClient, checkpointRepo, notifier, log, cfg.TelegramChatID)
	log.Info("Review service initialized.")

	// Initialize and start the poll scheduler
	pollScheduler := scheduler.NewPollScheduler(reviewService, log, cfg.PollInterval)
	if err := pollScheduler.Start(); err != nil {
		log.Fatalf("FATAL: Could not start poll scheduler: %v", err)
	}

	log.Info("Application setup complete. Polling for homework reviews...")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	pollScheduler.Stop()
	log.Info("Application shut down gracefully.")
}
