package interval

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var intervalColumns = []string{
	"id",
	"owner_id",
	"start_at",
	"end_at",
	"available",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с интервалами таймлайна
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория интервалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый интервал
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, iv *domain.Interval) (*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("intervals").
		Columns("owner_id", "start_at", "end_at", "available").
		Values(iv.OwnerID, iv.StartAt, iv.EndAt, iv.Available).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&iv.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	iv.CreatedAt = createdAt.Time
	iv.UpdatedAt = updatedAt.Time

	return iv, nil
}

// GetByID получает интервал по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// ListByOwner получает все интервалы владельца, упорядоченные по началу
// Опционально ограничивает выборку периодом [from, to)
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64, from, to *time.Time) ([]*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("start_at ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *to})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanIntervals(rows, "ListByOwner")
}

// FindCovering находит единственный интервал указанного типа, полностью
// покрывающий диапазон [start, end)
// Внутри транзакции блокирует найденную строку (FOR UPDATE), чтобы конкурентная
// транзакция не изменила интервал между чтением и записью
func (r *Repository) FindCovering(ctx context.Context, ownerID int64, start, end time.Time, available bool) (*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{"owner_id": ownerID, "available": available}).
		Where(squirrel.LtOrEq{"start_at": start}).
		Where(squirrel.GtOrEq{"end_at": end})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindCovering - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "FindCovering")
}

// FindOverlapping находит все интервалы владельца, пересекающиеся с [start, end),
// в порядке убывания start_at
// Порядок обработки важен для алгоритма разрешения пересечений: обход от самого
// позднего начала гарантирует завершение без рекурсии
// Внутри транзакции блокирует найденные строки (FOR UPDATE)
func (r *Repository) FindOverlapping(ctx context.Context, ownerID int64, start, end time.Time, excludeID int64) ([]*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		OrderBy("start_at DESC")

	if excludeID > 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanIntervals(rows, "FindOverlapping")
}

// FindEndingAt находит интервал указанного типа, заканчивающийся ровно в t
// Используется логикой слияния при восстановлении доступности
func (r *Repository) FindEndingAt(ctx context.Context, ownerID int64, t time.Time, available bool) (*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{"owner_id": ownerID, "end_at": t, "available": available})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindEndingAt - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "FindEndingAt")
}

// FindStartingAt находит интервал указанного типа, начинающийся ровно в t
func (r *Repository) FindStartingAt(ctx context.Context, ownerID int64, t time.Time, available bool) (*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{"owner_id": ownerID, "start_at": t, "available": available})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindStartingAt - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "FindStartingAt")
}

// FindExact находит интервал с точным совпадением границ и типа
// Используется для поиска записи недоступности при восстановлении
func (r *Repository) FindExact(ctx context.Context, ownerID int64, start, end time.Time, available bool) (*domain.Interval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(intervalColumns...).
		From("intervals").
		Where(squirrel.Eq{
			"owner_id":  ownerID,
			"start_at":  start,
			"end_at":    end,
			"available": available,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindExact - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "FindExact")
}

// UpdateBounds обновляет границы интервала (сдвиг при split/merge)
func (r *Repository) UpdateBounds(ctx context.Context, id int64, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("intervals").
		Set("start_at", start).
		Set("end_at", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateBounds - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "UpdateBounds")
}

// SetAvailable меняет тип интервала
func (r *Repository) SetAvailable(ctx context.Context, id int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("intervals").
		Set("available", available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailable - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "SetAvailable")
}

// Delete удаляет интервал
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("intervals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "Delete")
}

// execAffectingOne выполняет запрос, который должен затронуть ровно одну строку
func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrIntervalNotFound
	}

	return nil
}

// scanOne сканирует одну строку в интервал
func (r *Repository) scanOne(row *sql.Row, method string) (*domain.Interval, error) {
	var iv domain.Interval
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&iv.ID,
		&iv.OwnerID,
		&iv.StartAt,
		&iv.EndAt,
		&iv.Available,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrIntervalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan interval: %v", ErrScanRow, method, err)
	}

	iv.CreatedAt = createdAt.Time
	iv.UpdatedAt = updatedAt.Time

	return &iv, nil
}

// scanIntervals сканирует результаты запроса в слайс интервалов
func (r *Repository) scanIntervals(rows *sql.Rows, method string) ([]*domain.Interval, error) {
	intervals := make([]*domain.Interval, 0)

	for rows.Next() {
		var iv domain.Interval
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&iv.ID,
			&iv.OwnerID,
			&iv.StartAt,
			&iv.EndAt,
			&iv.Available,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}

		iv.CreatedAt = createdAt.Time
		iv.UpdatedAt = updatedAt.Time

		intervals = append(intervals, &iv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return intervals, nil
}
