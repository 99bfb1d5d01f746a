package telegram

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"phenopipe/internal/domain/port"
)

// Notifier отправляет сводку пакетной обработки в Telegram-чат оператора:
// длинные ночные прогоны заканчиваются сообщением, а не чтением логов.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier создаёт нотификатор для чата chatID.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Notifier{api: api, chatID: chatID}, nil
}

// NotifySummary отправляет текст сводки.
func (n *Notifier) NotifySummary(ctx context.Context, text string) error {
	_ = ctx
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send summary: %w", err)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.Notifier = (*Notifier)(nil)
