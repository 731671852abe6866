package outbox

import (
	"context"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// EventRepository интерфейс репозитория outbox-событий
type EventRepository interface {
	FetchUnpublished(ctx context.Context, limit int) ([]*domain.ChangeEvent, error)
	MarkPublished(ctx context.Context, ids []int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// splitBrokers разбирает список брокеров из строки конфигурации
func splitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
