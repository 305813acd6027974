// Package main contains the entrypoint for the crossposter bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vkgram/vkgram/internal/bot"
	"github.com/vkgram/vkgram/internal/compose"
	"github.com/vkgram/vkgram/internal/config"
	"github.com/vkgram/vkgram/internal/database"
	"github.com/vkgram/vkgram/internal/logger"
	"github.com/vkgram/vkgram/internal/pipeline"
	"github.com/vkgram/vkgram/internal/server"
	"github.com/vkgram/vkgram/internal/telegram"
	"github.com/vkgram/vkgram/internal/vk"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all components, starts the triggers, and returns an exit
// code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	// A .env file, when present, feeds the BOT_* environment overlay.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	source := vk.NewClient(cfg.VK, log)

	sender, err := telegram.NewSender(cfg.Telegram, log)
	if err != nil {
		log.Error("Failed to create Telegram sender", "error", err)
		return 1
	}

	composer := compose.NewComposer(cfg.Compose.AppendText)
	pipe := pipeline.New(source, sender, store, composer, log)

	sched, err := bot.NewScheduler(pipe, cfg.Scheduler.Interval, log)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	handler := server.New(pipe, log)
	app := bot.NewBot(log, sched, handler, cfg.Server.Addr)

	log.Info("Starting crossposter...")
	runErr := app.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Crossposter stopped due to error", "error", runErr)
		return 1
	}

	log.Info("Crossposter stopped gracefully.")
	return 0
}
