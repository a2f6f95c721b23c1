package notificator

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, err error, details string) error {
	text := fmt.Sprintf("❗ Voice assistant error\n\nError: %v\n\nDetails: %s", err, details)

	msg := tgbotapi.NewMessage(n.chatID, text)

	if _, sendErr := n.bot.Send(msg); sendErr != nil {
		log.Printf("[notificator] send fail: %v", sendErr)
		return sendErr
	}
	return nil
}

// Noop is used when no Telegram credentials are configured.
type Noop struct{}

func (Noop) Notify(context.Context, error, string) error { return nil }
