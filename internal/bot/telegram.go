// internal/bot/telegram.go
package bot

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	sender     Sender
	dispatcher *Dispatcher
}

func New(sender Sender, dispatcher *Dispatcher) *Bot {
	return &Bot{sender: sender, dispatcher: dispatcher}
}

// HandleUpdate answers one message; non-message updates are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic while handling update", "panic", r, "chat_id", chatID, "text", update.Message.Text)
		}
	}()

	var userID int64
	if update.Message.From != nil {
		userID = update.Message.From.ID
	}
	slog.Info("📥 Message received", "user_id", userID, "chat_id", chatID, "text", update.Message.Text)

	msg := tgbotapi.NewMessage(chatID, b.dispatcher.Handle(ctx, update.Message.Text))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.sender.Send(msg); err != nil {
		slog.Error("Failed to send reply", "error", err, "chat_id", chatID)
	}
}

// Webhook is mounted at /telegram by the API server.
func (b *Bot) Webhook() gin.HandlerFunc {
	return func(c *gin.Context) {
		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			slog.Error("Failed to parse update", "error", err)
			c.Status(http.StatusBadRequest)
			return
		}
		b.HandleUpdate(c.Request.Context(), update)
		c.Status(http.StatusOK)
	}
}

// Poll serves long-polling updates until ctx is done.
func (b *Bot) Poll(ctx context.Context, api *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// SetWebhook points Telegram at baseURL + "/telegram".
func SetWebhook(api *tgbotapi.BotAPI, baseURL string) error {
	wh, err := tgbotapi.NewWebhook(baseURL + "/telegram")
	if err != nil {
		return err
	}
	_, err = api.Request(wh)
	return err
}
