package outbox

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Publisher фоновый публикатор событий изменений
// Опрашивает outbox-таблицу и доставляет события в Kafka; семантика
// at-least-once, повторная доставка при сбое допустима
type Publisher struct {
	repo      EventRepository
	txManager TransactionManager
	logger    Logger

	brokers   []string
	topic     string
	pollEvery time.Duration
	batchSize int
}

// Config настройки публикатора
type Config struct {
	Brokers   string
	Topic     string
	PollEvery time.Duration
	BatchSize int
}

// NewPublisher создает новый публикатор событий
func NewPublisher(repo EventRepository, txManager TransactionManager, logger Logger, cfg Config) *Publisher {
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}

	return &Publisher{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
		brokers:   splitBrokers(cfg.Brokers),
		topic:     cfg.Topic,
		pollEvery: cfg.PollEvery,
		batchSize: cfg.BatchSize,
	}
}

// Run запускает цикл публикации; завершается при отмене контекста
func (p *Publisher) Run(ctx context.Context) {
	if len(p.brokers) == 0 {
		p.logger.Warn("Publisher: no kafka brokers configured, change events will stay in outbox")
		return
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(p.brokers...),
		Topic:    p.topic,
		Balancer: &kafka.Hash{},
	}
	defer writer.Close()

	p.logger.Info("Publisher: started, brokers=%s, topic=%s, poll=%s",
		strings.Join(p.brokers, ","), p.topic, p.pollEvery)

	ticker := time.NewTicker(p.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Publisher: stopped")
			return
		case <-ticker.C:
			if err := p.publishBatch(ctx, writer); err != nil {
				p.logger.Error("Publisher: failed to publish batch: %v", err)
			}
		}
	}
}

// publishBatch доставляет одну пачку событий
// Чтение, отправка и пометка published выполняются в одной транзакции:
// при сбое отправки пометка откатывается и события будут доставлены повторно
func (p *Publisher) publishBatch(ctx context.Context, writer *kafka.Writer) error {
	return p.txManager.Do(ctx, func(txCtx context.Context) error {
		events, err := p.repo.FetchUnpublished(txCtx, p.batchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		messages := make([]kafka.Message, 0, len(events))
		ids := make([]int64, 0, len(events))
		for _, event := range events {
			messages = append(messages, kafka.Message{
				// Ключ по владельцу сохраняет порядок событий одного таймлайна
				// в пределах партиции
				Key:   []byte(ownerKey(event)),
				Value: event.Payload,
				Headers: []kafka.Header{
					{Key: "event_id", Value: []byte(event.EventID)},
					{Key: "event_kind", Value: []byte(event.Kind)},
				},
			})
			ids = append(ids, event.ID)
		}

		if err := writer.WriteMessages(ctx, messages...); err != nil {
			return err
		}

		if err := p.repo.MarkPublished(txCtx, ids); err != nil {
			return err
		}

		p.logger.Info("Publisher: delivered %d change events", len(events))
		return nil
	})
}

func ownerKey(event *domain.ChangeEvent) string {
	return string(event.Kind) + ":" + strconv.FormatInt(event.OwnerID, 10)
}
