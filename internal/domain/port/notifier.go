package port

import "context"

// Notifier отправляет оператору сводку по завершении пакетной обработки.
type Notifier interface {
	NotifySummary(ctx context.Context, text string) error
}
