// cmd/bot/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"tap-order-pay/internal/bot"
	"tap-order-pay/internal/config"
	"tap-order-pay/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()
	slog.SetDefault(config.NewLogger(cfg.LogLevel))

	if err := run(cfg); err != nil {
		slog.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if cfg.BotToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pgxpool.New(ctx, cfg.DBConn)
	if err != nil {
		return fmt.Errorf("connect to DB: %w", err)
	}
	defer db.Close()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("init Telegram bot: %w", err)
	}
	// polling and a webhook cannot both be active
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		slog.Warn("Failed to delete webhook", "error", err)
	}

	slog.Info("Bot started", "username", api.Self.UserName)
	bot.New(api, bot.NewDispatcher(postgres.NewStorage(db))).Poll(ctx, api)
	slog.Info("Bot stopped")
	return nil
}
