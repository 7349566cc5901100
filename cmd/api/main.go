// cmd/api/main.go
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

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"tap-order-pay/internal/auth"
	"tap-order-pay/internal/bot"
	"tap-order-pay/internal/config"
	"tap-order-pay/internal/handler"
	"tap-order-pay/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()
	slog.SetDefault(config.NewLogger(cfg.LogLevel))

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBConn)
	if err != nil {
		return fmt.Errorf("connect to DB: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping DB: %w", err)
	}
	slog.Info("✅ Connected to PostgreSQL")

	store := postgres.NewStorage(pool)
	tokenService := auth.NewTokenService(cfg)

	var webhook gin.HandlerFunc
	if cfg.BotToken != "" && cfg.WebhookBaseURL != "" {
		api, err := tgbotapi.NewBotAPI(cfg.BotToken)
		if err != nil {
			return fmt.Errorf("init Telegram bot: %w", err)
		}
		if err := bot.SetWebhook(api, cfg.WebhookBaseURL); err != nil {
			return fmt.Errorf("set webhook: %w", err)
		}
		slog.Info("Telegram webhook set", "url", cfg.WebhookBaseURL+"/telegram")
		webhook = bot.New(api, bot.NewDispatcher(store)).Webhook()
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           handler.NewRouter(store, tokenService, webhook),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("🚀 Server started", "addr", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
