package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
)

// Service сервис чтения встреч и управления составом их услуг
// Переходы статусов выполняются отдельным use case (transition_appointment)
type Service struct {
	appointments AppointmentRepository
	catalog      CatalogServiceClient
	events       EventRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(
	appointments AppointmentRepository,
	catalog CatalogServiceClient,
	events EventRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointments: appointments,
		catalog:      catalog,
		events:       events,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает встречу по ID
// Доступ имеют обе стороны встречи - клиент и продавец
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.CustomerID != actorID && appt.SellerID != actorID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return appt, nil
}

// ListBySeller получает встречи продавца, опционально фильтруя по статусу
func (s *Service) ListBySeller(ctx context.Context, sellerID int64, status *string) ([]*domain.Appointment, error) {
	domainStatus, err := parseOptionalStatus(status)
	if err != nil {
		s.logger.Warn("ListBySeller: invalid status=%v for seller=%d", status, sellerID)
		return nil, err
	}

	appointments, err := s.appointments.ListBySeller(ctx, sellerID, domainStatus)
	if err != nil {
		s.logger.Error("ListBySeller: repository error for seller=%d: %v", sellerID, err)
		return nil, fmt.Errorf("%w: ListBySeller - repository error: %v", ErrInternal, err)
	}

	return appointments, nil
}

// ListByCustomer получает встречи клиента, опционально фильтруя по статусу
func (s *Service) ListByCustomer(ctx context.Context, customerID int64, status *string) ([]*domain.Appointment, error) {
	domainStatus, err := parseOptionalStatus(status)
	if err != nil {
		s.logger.Warn("ListByCustomer: invalid status=%v for customer=%d", status, customerID)
		return nil, err
	}

	appointments, err := s.appointments.ListByCustomer(ctx, customerID, domainStatus)
	if err != nil {
		s.logger.Error("ListByCustomer: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: ListByCustomer - repository error: %v", ErrInternal, err)
	}

	return appointments, nil
}

// SetServices заменяет состав услуг встречи и пересчитывает агрегированную
// цену: price = сумма цен привязанных услуг. Замена и пересчет фиксируются
// одной транзакцией вместе с событием изменения
func (s *Service) SetServices(ctx context.Context, appointmentID int64, actorID int64, serviceIDs []int64) (*domain.Appointment, error) {
	if len(serviceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	// Каталог опрашивается до транзакции: внешний вызов не должен
	// удерживать блокировки БД
	services, err := s.catalog.GetServices(ctx, serviceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			s.logger.Warn("SetServices: catalog service not found among ids=%v", serviceIDs)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("SetServices: failed to fetch catalog services: %v", err)
		return nil, fmt.Errorf("%w: SetServices - fetch services: %v", ErrInternal, err)
	}

	price := 0.0
	for _, service := range services {
		price += service.Price
	}

	var result *domain.Appointment

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := s.appointments.GetByID(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: SetServices - get appointment: %v", ErrInternal, err)
		}

		if appt.CustomerID != actorID && appt.SellerID != actorID {
			return ErrAccessDenied
		}

		if appt.IsTerminal() {
			return ErrTerminalStatus
		}

		if err := s.appointments.ReplaceServices(txCtx, appointmentID, serviceIDs); err != nil {
			return fmt.Errorf("%w: SetServices - replace services: %v", ErrInternal, err)
		}

		if err := s.appointments.UpdatePrice(txCtx, appointmentID, price); err != nil {
			return fmt.Errorf("%w: SetServices - update price: %v", ErrInternal, err)
		}

		appt.ServiceIDs = serviceIDs
		appt.Price = price
		result = appt

		return s.emitAppointmentEvent(txCtx, appt, "services_changed")
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("SetServices: appointment id=%d now has %d services, price=%.2f",
		appointmentID, len(serviceIDs), price)

	return result, nil
}

// emitAppointmentEvent записывает событие изменения встречи в outbox
func (s *Service) emitAppointmentEvent(ctx context.Context, appt *domain.Appointment, action string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"action":        action,
		"appointmentId": appt.ID,
		"sellerId":      appt.SellerID,
		"customerId":    appt.CustomerID,
		"status":        appt.Status,
		"price":         appt.Price,
	})
	if err != nil {
		return fmt.Errorf("%w: emit appointment event - marshal payload: %v", ErrInternal, err)
	}

	event := &domain.ChangeEvent{
		EventID: uuid.NewString(),
		OwnerID: appt.SellerID,
		Kind:    domain.EventKindAppointment,
		Payload: payload,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return fmt.Errorf("%w: emit appointment event - store event: %v", ErrInternal, err)
	}

	return nil
}

func parseOptionalStatus(status *string) (*domain.AppointmentStatus, error) {
	if status == nil {
		return nil, nil
	}
	parsed, ok := domain.ParseAppointmentStatus(*status)
	if !ok {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *status)
	}
	return &parsed, nil
}
