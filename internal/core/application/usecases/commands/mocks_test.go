package commands_test

import (
	"context"
	"testing"
	"time"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*order.Order, error) {
	args := m.Called(ctx, code)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) ListShippedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockServiceRepository struct{ mock.Mock }

func (m *MockServiceRepository) Add(ctx context.Context, s catalog.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockServiceRepository) Get(ctx context.Context, id string) (catalog.Service, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(catalog.Service)
	return s, args.Error(1)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockServiceRepository) List(ctx context.Context) ([]catalog.Service, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]catalog.Service)
	return s, args.Error(1)
}

type MockMaterialRepository struct{ mock.Mock }

func (m *MockMaterialRepository) Add(ctx context.Context, mat catalog.Material) error {
	return m.Called(ctx, mat).Error(0)
}

func (m *MockMaterialRepository) Get(ctx context.Context, id string) (catalog.Material, error) {
	args := m.Called(ctx, id)
	mat, _ := args.Get(0).(catalog.Material)
	return mat, args.Error(1)
}

func (m *MockMaterialRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMaterialRepository) List(ctx context.Context) ([]catalog.Material, error) {
	args := m.Called(ctx)
	mats, _ := args.Get(0).([]catalog.Material)
	return mats, args.Error(1)
}

// MockUoW satisfies every unit of work flavour the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ServiceRepository() ports.ServiceRepository {
	return m.Called().Get(0).(ports.ServiceRepository)
}

func (m *MockUoW) MaterialRepository() ports.MaterialRepository {
	return m.Called().Get(0).(ports.MaterialRepository)
}

func (m *MockUoW) StatusChanges() []ports.StatusChangedEvent {
	events, _ := m.Called().Get(0).([]ports.StatusChangedEvent)
	return events
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockCatalogUoWFactory struct{ mock.Mock }

func (m *MockCatalogUoWFactory) Create() commands.CatalogUoW {
	return m.Called().Get(0).(commands.CatalogUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...ports.StatusChangedEvent) error {
	return m.Called(ctx, events).Error(0)
}

func fixedLifecycle() services.OrderLifecycle {
	return services.NewOrderLifecycle(services.ClockFunc(func() time.Time { return baseTime.Add(time.Hour) }))
}

func newCustomer(t *testing.T) order.Customer {
	t.Helper()
	c, err := order.NewCustomer("Marta Ruiz", "marta@example.com", "611222333", "", "Calle Luna 3", "Valencia", "46001", "")
	require.NoError(t, err)
	return c
}

func newSpec(t *testing.T, serviceID, materialID string, qty int, opts ...order.SpecificationOption) order.Specification {
	t.Helper()
	spec, err := order.NewSpecification(serviceID, materialID, qty, false, order.ShippingStandard, order.FinishNone, opts...)
	require.NoError(t, err)
	return spec
}

func modelFile(t *testing.T) order.SpecificationOption {
	t.Helper()
	f, err := order.NewModelFile("part.stl", 1024)
	require.NoError(t, err)
	return order.WithModelFiles(f)
}

// newOrderIn builds a persisted order that walked the happy path up to status.
func newOrderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	spec := newSpec(t, "printing-pla", "pla", 2, modelFile(t))
	o, err := order.NewDraftOrder(kernel.NewUUID(), kernel.NewTrackingCode(baseTime), newCustomer(t), spec, baseTime)
	require.NoError(t, err)
	pricing, err := order.NewPricingBreakdown(catalog.ServiceRate, order.CostTerms{Service: 30, Shipping: 5, Tax: 6.3})
	require.NoError(t, err)
	require.NoError(t, o.SetPricing(pricing, baseTime.AddDate(0, 0, 8)))
	require.NoError(t, o.Submit(baseTime.Add(time.Second)))

	path := []order.Status{order.Confirmed, order.InProduction, order.QualityCheck, order.Shipped, order.Delivered}
	at := baseTime.Add(time.Minute)
	for _, next := range path {
		if o.Status() == status {
			break
		}
		_, err = o.Transition(next, "", at)
		require.NoError(t, err)
		at = at.Add(time.Minute)
	}
	require.Equal(t, status, o.Status())
	o.MarkPersisted()
	return o
}
