package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	items    map[int64]*domain.Appointment
	services map[int64][]int64
}

func newFakeAppointmentRepo(appts ...*domain.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{
		items:    make(map[int64]*domain.Appointment),
		services: make(map[int64][]int64),
	}
	for _, appt := range appts {
		repo.items[appt.ID] = appt
	}
	return repo
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.items[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) ListBySeller(_ context.Context, sellerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range f.items {
		if appt.SellerID != sellerID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		copied := *appt
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) ListByCustomer(_ context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, appt := range f.items {
		if appt.CustomerID != customerID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		copied := *appt
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) ReplaceServices(_ context.Context, appointmentID int64, serviceIDs []int64) error {
	f.services[appointmentID] = serviceIDs
	return nil
}

func (f *fakeAppointmentRepo) UpdatePrice(_ context.Context, id int64, price float64) error {
	appt, ok := f.items[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	appt.Price = price
	return nil
}

type fakeCatalog struct {
	services map[int64]*catalogservice.Service
}

func (f *fakeCatalog) GetServices(_ context.Context, serviceIDs []int64) ([]*catalogservice.Service, error) {
	result := make([]*catalogservice.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		svc, ok := f.services[id]
		if !ok {
			return nil, catalogservice.ErrServiceNotFound
		}
		result = append(result, svc)
	}
	return result, nil
}

type fakeEventRepo struct {
	events []*domain.ChangeEvent
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.ChangeEvent) error {
	f.events = append(f.events, event)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func seedAppointment(status domain.AppointmentStatus) *domain.Appointment {
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:         7,
		CustomerID: 1,
		SellerID:   2,
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Status:     status,
		Price:      30,
	}
}

func newTestService(repo *fakeAppointmentRepo) (*Service, *fakeEventRepo) {
	catalog := &fakeCatalog{services: map[int64]*catalogservice.Service{
		10: {ID: 10, SellerID: 2, Title: "Haircut", Price: 30, DurationMinutes: 45},
		11: {ID: 11, SellerID: 2, Title: "Styling", Price: 20, DurationMinutes: 15},
	}}
	events := &fakeEventRepo{}
	return NewService(repo, catalog, events, passthroughTxManager{}, nopLogger{}), events
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := newFakeAppointmentRepo(seedAppointment(domain.StatusHold))
	svc, _ := newTestService(repo)
	ctx := context.Background()

	// Обе стороны встречи имеют доступ
	appt, err := svc.GetByID(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), appt.ID)

	_, err = svc.GetByID(ctx, 7, 2)
	require.NoError(t, err)

	// Посторонний пользователь - нет
	_, err = svc.GetByID(ctx, 7, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 404, 1)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListBySeller_FiltersByStatus(t *testing.T) {
	hold := seedAppointment(domain.StatusHold)
	accepted := seedAppointment(domain.StatusAccepted)
	accepted.ID = 8
	repo := newFakeAppointmentRepo(hold, accepted)
	svc, _ := newTestService(repo)

	all, err := svc.ListBySeller(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListBySeller(context.Background(), 2, ptr.Ptr("accepted"))
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(8), filtered[0].ID)

	_, err = svc.ListBySeller(context.Background(), 2, ptr.Ptr("confirmed"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetServices_RecalculatesPrice(t *testing.T) {
	repo := newFakeAppointmentRepo(seedAppointment(domain.StatusHold))
	svc, events := newTestService(repo)

	appt, err := svc.SetServices(context.Background(), 7, 2, []int64{10, 11})
	require.NoError(t, err)

	// Цена - сумма цен привязанных услуг
	assert.Equal(t, 50.0, appt.Price)
	assert.Equal(t, []int64{10, 11}, appt.ServiceIDs)
	assert.Equal(t, 50.0, repo.items[7].Price)
	assert.Equal(t, []int64{10, 11}, repo.services[7])
	require.Len(t, events.events, 1)
}

func TestSetServices_TerminalStatusRejected(t *testing.T) {
	repo := newFakeAppointmentRepo(seedAppointment(domain.StatusFinished))
	svc, _ := newTestService(repo)

	_, err := svc.SetServices(context.Background(), 7, 2, []int64{10})
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestSetServices_AccessDenied(t *testing.T) {
	repo := newFakeAppointmentRepo(seedAppointment(domain.StatusHold))
	svc, _ := newTestService(repo)

	_, err := svc.SetServices(context.Background(), 7, 99, []int64{10})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetServices_UnknownService(t *testing.T) {
	repo := newFakeAppointmentRepo(seedAppointment(domain.StatusHold))
	svc, _ := newTestService(repo)

	_, err := svc.SetServices(context.Background(), 7, 2, []int64{999})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestSetServices_EmptyList(t *testing.T) {
	repo := newFakeAppointmentRepo(seedAppointment(domain.StatusHold))
	svc, _ := newTestService(repo)

	_, err := svc.SetServices(context.Background(), 7, 2, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
