package notifier

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"VolSentinel/internal/logger"
)

// CommandHandler is called when a user command is received.
// It gets the full message text and returns the reply, or "" for none.
type CommandHandler func(text string) string

// StartPolling begins long-polling for Telegram commands. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			logger.Info("Telegram polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			msg := update.Message
			if msg == nil || !msg.IsCommand() {
				continue
			}
			// only the configured chat may drive the bot
			if msg.Chat == nil || msg.Chat.ID != t.chatID {
				logger.Warn("ignoring command from chat %v", msg.Chat)
				continue
			}
			text := strings.TrimSpace(msg.Text)
			logger.Info("received command: %s", text)
			if reply := handler(text); reply != "" {
				if err := t.sendTo(msg.Chat.ID, reply); err != nil {
					logger.Error("send reply: %v", err)
				}
			}
		}
	}
}
