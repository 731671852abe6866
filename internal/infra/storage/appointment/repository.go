package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"id",
	"customer_id",
	"seller_id",
	"start_at",
	"end_at",
	"status",
	"comment",
	"seller_comment",
	"price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со встречами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую встречу
// Привязка услуг выполняется отдельно через ReplaceServices в той же транзакции
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"customer_id",
			"seller_id",
			"start_at",
			"end_at",
			"status",
			"comment",
			"seller_comment",
			"price",
		).
		Values(
			appt.CustomerID,
			appt.SellerID,
			appt.StartAt,
			appt.EndAt,
			appt.Status,
			appt.Comment,
			appt.SellerComment,
			appt.Price,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает встречу по ID вместе с привязанными услугами
// Внутри транзакции блокирует строку встречи (FOR UPDATE), чтобы конкурентный
// переход статусов не выполнился по устаревшему состоянию
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
	if err != nil {
		return nil, err
	}

	serviceIDs, err := r.GetServiceIDs(ctx, appt.ID)
	if err != nil {
		return nil, err
	}
	appt.ServiceIDs = serviceIDs

	return appt, nil
}

// ListBySeller получает встречи продавца, опционально фильтруя по статусу
func (r *Repository) ListBySeller(ctx context.Context, sellerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return r.list(ctx, squirrel.Eq{"seller_id": sellerID}, status, "ListBySeller")
}

// ListByCustomer получает встречи клиента, опционально фильтруя по статусу
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return r.list(ctx, squirrel.Eq{"customer_id": customerID}, status, "ListByCustomer")
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq, status *domain.AppointmentStatus, method string) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(where).
		OrderBy("start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows, method)
}

// UpdateStatus обновляет статус встречи
// Опционально записывает комментарий продавца (причину отказа/отмены)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, sellerComment *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if sellerComment != nil {
		updateBuilder = updateBuilder.Set("seller_comment", *sellerComment)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "UpdateStatus")
}

// UpdatePrice обновляет агрегированную цену встречи
func (r *Repository) UpdatePrice(ctx context.Context, id int64, price float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("price", price).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePrice - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, "UpdatePrice")
}

// ReplaceServices заменяет состав привязанных услуг встречи
// Вызывается в одной транзакции с пересчетом цены
func (r *Repository) ReplaceServices(ctx context.Context, appointmentID int64, serviceIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointment_services").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServices - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceServices - execute delete: %v", ErrExecQuery, err)
	}

	if len(serviceIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("appointment_services").
		Columns("appointment_id", "service_id")
	for _, serviceID := range serviceIDs {
		insertBuilder = insertBuilder.Values(appointmentID, serviceID)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceServices - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceServices - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetServiceIDs получает ID услуг, привязанных к встрече
func (r *Repository) GetServiceIDs(ctx context.Context, appointmentID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_id").
		From("appointment_services").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("service_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	serviceIDs := make([]int64, 0)
	for rows.Next() {
		var serviceID int64
		if err := rows.Scan(&serviceID); err != nil {
			return nil, fmt.Errorf("%w: GetServiceIDs - scan service_id: %v", ErrScanRow, err)
		}
		serviceIDs = append(serviceIDs, serviceID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServiceIDs - rows error: %v", ErrScanRow, err)
	}

	return serviceIDs, nil
}

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
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) scanOne(row *sql.Row, method string) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.CustomerID,
		&appt.SellerID,
		&appt.StartAt,
		&appt.EndAt,
		&appt.Status,
		&appt.Comment,
		&appt.SellerComment,
		&appt.Price,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, method, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func (r *Repository) scanAppointments(rows *sql.Rows, method string) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.CustomerID,
			&appt.SellerID,
			&appt.StartAt,
			&appt.EndAt,
			&appt.Status,
			&appt.Comment,
			&appt.SellerComment,
			&appt.Price,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return appointments, nil
}
