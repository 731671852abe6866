package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий outbox-таблицы событий изменений
// События записываются в той же транзакции, что и мутация таймлайна,
// и доставляются внешнему диспетчеру фоновым публикатором
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает событие изменения
// Вызывается внутри транзакции бизнес-операции: событие фиксируется
// атомарно вместе с мутацией, которую оно описывает
func (r *Repository) Create(ctx context.Context, event *domain.ChangeEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("outbox_events").
		Columns("event_id", "owner_id", "kind", "payload").
		Values(event.EventID, event.OwnerID, event.Kind, []byte(event.Payload)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// FetchUnpublished получает пачку неопубликованных событий в порядке записи
// Внутри транзакции блокирует строки с SKIP LOCKED, чтобы несколько
// экземпляров публикатора не доставляли одно событие дважды
func (r *Repository) FetchUnpublished(ctx context.Context, limit int) ([]*domain.ChangeEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"event_id",
		"owner_id",
		"kind",
		"payload",
		"created_at",
		"published_at",
	).
		From("outbox_events").
		Where(squirrel.Eq{"published_at": nil}).
		OrderBy("id ASC").
		Limit(uint64(limit))

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.ChangeEvent, 0)
	for rows.Next() {
		var event domain.ChangeEvent
		var payload []byte
		var createdAt sql.NullTime
		var publishedAt sql.NullTime

		err := rows.Scan(
			&event.ID,
			&event.EventID,
			&event.OwnerID,
			&event.Kind,
			&payload,
			&createdAt,
			&publishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FetchUnpublished - scan row: %v", ErrScanRow, err)
		}

		event.Payload = payload
		event.CreatedAt = createdAt.Time
		if publishedAt.Valid {
			event.PublishedAt = &publishedAt.Time
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// MarkPublished помечает события как доставленные
func (r *Repository) MarkPublished(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("published_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPublished - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkPublished - execute update: %v", ErrExecQuery, err)
	}

	return nil
}
