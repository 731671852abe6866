package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case создания встречи
type UseCase struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityService
	eventRepo       EventRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availability AvailabilityService,
	eventRepo EventRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		eventRepo:       eventRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания встречи
// Встреча создается в статусе hold; диапазон обязан целиком лежать внутри
// одного доступного интервала продавца. Проверка покрытия и запись
// выполняются в сериализуемой транзакции для защиты от гонки с конкурентным
// изменением таймлайна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, seller=%d, start=%s, services=%v",
		req.CustomerID, req.SellerID, req.StartAt.Format(time.RFC3339), req.ServiceIDs)

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услуги из каталога: цена и длительность
	// Внешний вызов выполняется до транзакции, чтобы не удерживать блокировки
	services, err := uc.catalogClient.GetServices(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: catalog service not found among ids=%v", req.ServiceIDs)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to fetch catalog services: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch services: %v", ErrInternal, err)
	}

	// 3. Агрегируем цену и вычисляем конец встречи, если он не задан
	price := 0.0
	totalDuration := 0
	for _, service := range services {
		price += service.Price
		totalDuration += service.DurationMinutes
	}

	endAt := req.StartAt.Add(time.Duration(totalDuration) * time.Minute)
	if req.EndAt != nil {
		endAt = *req.EndAt
	}
	if !endAt.After(req.StartAt) {
		return nil, ErrInvalidRange
	}

	var result *domain.Appointment

	// 4. Проверка покрытия и создание встречи в одной транзакции
	run := func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			bookable, err := uc.availability.IsBookable(txCtx, req.SellerID, req.StartAt, endAt)
			if err != nil {
				return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
			}
			if !bookable {
				return ErrNotBookable
			}

			appt := &domain.Appointment{
				CustomerID: req.CustomerID,
				SellerID:   req.SellerID,
				StartAt:    req.StartAt,
				EndAt:      endAt,
				Status:     domain.StatusHold,
				Comment:    req.Comment,
				Price:      price,
			}

			created, err := uc.appointmentRepo.Create(txCtx, appt)
			if err != nil {
				return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
			}

			if err := uc.appointmentRepo.ReplaceServices(txCtx, created.ID, req.ServiceIDs); err != nil {
				return fmt.Errorf("%w: failed to link services: %v", ErrInternal, err)
			}
			created.ServiceIDs = req.ServiceIDs

			if err := uc.emitCreatedEvent(txCtx, created); err != nil {
				return err
			}

			result = created
			return nil
		})
	}

	err = run()
	if err != nil && txmanager.IsSerializationError(err) {
		// Конкурентная транзакция изменила таймлайн: повторяем один раз
		// со свежими чтениями
		uc.logger.Warn("CreateAppointment: serialization conflict, retrying once")
		err = run()
	}

	if err != nil {
		if txmanager.IsSerializationError(err) {
			uc.logger.Warn("CreateAppointment: conflict persisted after retry")
			return nil, ErrConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d (hold), price=%.2f",
		result.ID, result.Price)

	return &Response{
		ID:         result.ID,
		CustomerID: result.CustomerID,
		SellerID:   result.SellerID,
		StartAt:    result.StartAt,
		EndAt:      result.EndAt,
		Status:     string(result.Status),
		Comment:    result.Comment,
		Price:      result.Price,
		ServiceIDs: result.ServiceIDs,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

func (uc *UseCase) emitCreatedEvent(ctx context.Context, appt *domain.Appointment) error {
	payload, err := json.Marshal(map[string]interface{}{
		"action":        "created",
		"appointmentId": appt.ID,
		"sellerId":      appt.SellerID,
		"customerId":    appt.CustomerID,
		"status":        appt.Status,
		"startAt":       appt.StartAt,
		"endAt":         appt.EndAt,
		"price":         appt.Price,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal created event: %v", ErrInternal, err)
	}

	event := &domain.ChangeEvent{
		EventID: uuid.NewString(),
		OwnerID: appt.SellerID,
		Kind:    domain.EventKindAppointment,
		Payload: payload,
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("%w: store created event: %v", ErrInternal, err)
	}

	return nil
}
