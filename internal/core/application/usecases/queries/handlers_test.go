package queries_test

import (
	"context"
	"testing"
	"time"

	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)

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

func newEstimateHandler() (queries.EstimatePriceQueryHandler, *MockServiceRepository, *MockMaterialRepository) {
	svcs := new(MockServiceRepository)
	mats := new(MockMaterialRepository)
	svcs.On("List", mock.Anything).Return(catalog.DefaultServices(), nil)
	mats.On("List", mock.Anything).Return(catalog.DefaultMaterials(), nil)
	clock := services.ClockFunc(func() time.Time { return baseTime })
	return queries.NewEstimatePriceQueryHandler(svcs, mats, services.DefaultRateConfiguration(), clock), svcs, mats
}

func TestEstimatePriceQueryHandler_Handle(t *testing.T) {
	t.Run("should quote a material-cost order with its delivery date", func(t *testing.T) {
		handler, svcs, mats := newEstimateHandler()
		spec, err := order.NewSpecification("printing-custom", "pla", 1, false, order.ShippingStandard, order.FinishNone,
			order.WithWeightGrams(100), order.WithPrintHours(2))
		require.NoError(t, err)
		query, err := queries.NewEstimatePriceQuery(spec)
		require.NoError(t, err)

		quote, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)

		assert.Equal(t, 1, quote.Quantity)
		assert.Equal(t, catalog.MaterialCost, quote.Breakdown.Mode())
		assert.True(t, quote.Breakdown.MaterialCost().Equal(kernel.RoundMoney(1500)))
		assert.True(t, quote.Breakdown.Total().Equal(kernel.RoundMoney(10028.88)))
		assert.Equal(t, baseTime.AddDate(0, 0, 8), quote.EstimatedDelivery)
		svcs.AssertExpectations(t)
		mats.AssertExpectations(t)
	})

	t.Run("should report the clamped quantity", func(t *testing.T) {
		handler, _, _ := newEstimateHandler()
		spec, err := order.NewSpecification("printing-pla", "pla", 0, false, "", "")
		require.NoError(t, err)
		query, err := queries.NewEstimatePriceQuery(spec)
		require.NoError(t, err)

		quote, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)
		assert.Equal(t, 1, quote.Quantity)
	})

	t.Run("should reject a material the service does not offer", func(t *testing.T) {
		handler, _, _ := newEstimateHandler()
		spec, err := order.NewSpecification("printing-abs", "pla", 1, false, "", "")
		require.NoError(t, err)
		query, err := queries.NewEstimatePriceQuery(spec)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should reject an unconstructed query", func(t *testing.T) {
		handler, _, _ := newEstimateHandler()
		_, err := handler.Handle(t.Context(), queries.EstimatePriceQuery{})
		require.ErrorIs(t, err, queries.ErrEstimatePriceQueryIsNotConstructed)
	})
}

func shippedOrder(t *testing.T) *order.Order {
	t.Helper()
	customer, err := order.NewCustomer("Pablo", "pablo@example.com", "622000111", "", "Av. Sol 5", "Sevilla", "41001", "")
	require.NoError(t, err)
	spec, err := order.NewSpecification("design-basic", "", 3, false, order.ShippingExpress, order.FinishNone)
	require.NoError(t, err)
	o, err := order.NewDraftOrder(kernel.NewUUID(), kernel.NewTrackingCode(baseTime), customer, spec, baseTime)
	require.NoError(t, err)
	pricing, err := order.NewPricingBreakdown(catalog.ServiceRate, order.CostTerms{Service: 90, Shipping: 15, Tax: 18.9})
	require.NoError(t, err)
	require.NoError(t, o.SetPricing(pricing, baseTime.AddDate(0, 0, 5)))
	require.NoError(t, o.Submit(baseTime.Add(time.Minute)))
	at := baseTime.Add(time.Hour)
	for _, s := range []order.Status{order.Confirmed, order.InProduction, order.QualityCheck, order.Shipped} {
		_, err = o.Transition(s, "", at)
		require.NoError(t, err)
		at = at.Add(time.Hour)
	}
	return o
}

func TestTrackOrderQueryHandler_Handle(t *testing.T) {
	o := shippedOrder(t)
	unknown := kernel.NewTrackingCode(baseTime)

	repo := new(MockOrderRepository)
	repo.On("GetByTrackingCode", mock.Anything, o.TrackingCode()).Return(o, nil)
	repo.On("GetByTrackingCode", mock.Anything, unknown).
		Return(nil, errs.NewObjectNotFoundError("order", unknown.String()))
	handler := queries.NewTrackOrderQueryHandler(repo)

	t.Run("should show the timeline to the customer", func(t *testing.T) {
		query, err := queries.NewTrackOrderQuery(o.TrackingCode(), "Pablo@Example.com")
		require.NoError(t, err)

		view, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)

		assert.Equal(t, order.Shipped, view.Status)
		assert.Equal(t, 90, view.ProgressPercent)
		assert.True(t, view.CanConfirm)
		assert.Len(t, view.History, 6)
		assert.True(t, view.Total.Equal(kernel.RoundMoney(123.9)))
		assert.Equal(t, "design-basic", view.ServiceID)
	})

	t.Run("should hide the order from another email", func(t *testing.T) {
		query, err := queries.NewTrackOrderQuery(o.TrackingCode(), "eve@example.com")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should report unknown codes as not found", func(t *testing.T) {
		query, err := queries.NewTrackOrderQuery(unknown, "pablo@example.com")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should require an email", func(t *testing.T) {
		_, err := queries.NewTrackOrderQuery(o.TrackingCode(), " ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewListQueries(t *testing.T) {
	q, err := queries.NewListOrdersQuery(order.Unknown, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultListLimit, q.Limit())

	_, err = queries.NewListOrdersQuery(order.Status(42), 10, 0)
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = queries.NewListOrdersQuery(order.Pending, queries.MaxListLimit+1, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewListOrdersQuery(order.Pending, 10, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewListServicesQuery("toys", "", catalog.AnyPrice)
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = queries.NewListServicesQuery("", "", "cheap")
	require.ErrorIs(t, err, errs.ErrValidation)
}
