package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate *order.Order) {
	m.Called(aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	now        time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.HistoryEntryDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_status_history, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.now = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createPendingOrder() *order.Order {
	customer, err := order.NewCustomer("Ana", "ana@example.com", "600123123", "ACME", "Calle Mayor 1", "Madrid", "28013", "")
	suite.Require().NoError(err)
	file, err := order.NewModelFile("bracket.stl", 4096)
	suite.Require().NoError(err)
	spec, err := order.NewSpecification("printing-custom", "pla", 3, true, order.ShippingExpress, order.FinishSanding,
		order.WithWeightGrams(120.5), order.WithPrintHours(3.25), order.WithColor("red"), order.WithModelFiles(file))
	suite.Require().NoError(err)

	o, err := order.NewDraftOrder(kernel.NewUUID(), kernel.NewTrackingCode(suite.now), customer, spec, suite.now)
	suite.Require().NoError(err)
	pricing, err := order.NewPricingBreakdown(catalog.MaterialCost, order.CostTerms{
		Material: 5422.5, Energy: 140.4, Maintenance: 6825, PostProcess: 7500, Logistics: 4500,
		Rush: 12193.95, Markup: 12804,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(o.SetPricing(pricing, suite.now.AddDate(0, 0, 3)))
	suite.Require().NoError(o.Submit(suite.now.Add(time.Second)))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsTheWholeAggregate() {
	ctx := context.Background()
	o := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Equal(2, o.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(got.IsEqual(o))
	suite.Equal(o.TrackingCode(), got.TrackingCode())
	suite.Equal(o.Customer(), got.Customer())
	suite.Equal(order.Pending, got.Status())
	suite.Equal(o.History(), got.History())
	suite.Equal(o.CreatedAt(), got.CreatedAt())
	suite.Equal(o.EstimatedDelivery(), got.EstimatedDelivery())
	suite.Equal(2, got.Version())

	spec := got.Specification()
	suite.Equal(3, spec.Quantity())
	suite.True(spec.Rush())
	suite.Equal(order.FinishSanding, spec.Finish())
	weight, ok := spec.WeightGrams()
	suite.True(ok)
	suite.InDelta(120.5, weight, 1e-9)
	suite.Len(spec.ModelFiles(), 1)
	suite.Equal("bracket.stl", spec.ModelFiles()[0].Name())

	want, _ := o.Pricing()
	have, ok := got.Pricing()
	suite.True(ok)
	suite.True(want.Total().Equal(have.Total()))
	suite.Equal(catalog.MaterialCost, have.Mode())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingCodeIsRejected() {
	ctx := context.Background()
	first := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", mock.Anything).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second, err := order.RestoreOrder(kernel.NewUUID(), first.TrackingCode(), first.Customer(),
		first.Specification(), nil, first.History(), first.CreatedAt(), first.EstimatedDelivery())
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByTrackingCode() {
	ctx := context.Background()
	o := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.GetByTrackingCode(ctx, o.TrackingCode())

	suite.Require().NoError(err)
	suite.True(got.IsEqual(o))

	unknown, err := kernel.ParseTrackingCode("IMP3D-202503-ZZZZZZ")
	suite.Require().NoError(err)
	_, err = suite.repository.GetByTrackingCode(ctx, unknown)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsOnlyNewHistory() {
	ctx := context.Background()
	o := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = loaded.Transition(order.Confirmed, "", suite.now.Add(time.Hour))
	suite.Require().NoError(err)
	_, err = loaded.Transition(order.InProduction, "Printer 2", suite.now.Add(2*time.Hour))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, loaded))
	suite.Equal(4, loaded.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProduction, got.Status())
	suite.Equal(loaded.History(), got.History())
	suite.Equal("Printer 2", got.LastEntry().Description())

	var rows int64
	suite.Require().NoError(suite.db.Model(&orderrepo.HistoryEntryDTO{}).Where("order_id = ?", o.ID().Bytes()).Count(&rows).Error)
	suite.Equal(int64(4), rows)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WithoutChangesIsNoop() {
	ctx := context.Background()
	o := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Update(ctx, o))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionIsRejected() {
	ctx := context.Background()
	o := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = first.Transition(order.Confirmed, "", suite.now.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.Transition(order.Cancelled, "", suite.now.Add(time.Hour))
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, got.Status())
	suite.Len(got.History(), 3)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrderIsNotFound() {
	o := suite.createPendingOrder()
	o.MarkPersisted()
	_, err := o.Transition(order.Confirmed, "", suite.now.Add(time.Hour))
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), o)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_RemovesOrderAndHistory() {
	ctx := context.Background()
	o := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Delete(ctx, o.ID()))

	_, err := suite.repository.Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	var rows int64
	suite.Require().NoError(suite.db.Model(&orderrepo.HistoryEntryDTO{}).Count(&rows).Error)
	suite.Zero(rows)

	suite.ErrorIs(suite.repository.Delete(ctx, o.ID()), errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListShippedBefore() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything).Twice()

	shipped := suite.createPendingOrder()
	at := suite.now
	for _, s := range []order.Status{order.Confirmed, order.InProduction, order.QualityCheck, order.Shipped} {
		at = at.Add(time.Hour)
		_, err := shipped.Transition(s, "", at)
		suite.Require().NoError(err)
	}
	suite.Require().NoError(suite.repository.Add(ctx, shipped))

	pending := suite.createPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	overdue, err := suite.repository.ListShippedBefore(ctx, suite.now.AddDate(0, 0, 10), 10)
	suite.Require().NoError(err)
	suite.Require().Len(overdue, 1)
	suite.True(overdue[0].IsEqual(shipped))

	notYet, err := suite.repository.ListShippedBefore(ctx, suite.now, 10)
	suite.Require().NoError(err)
	suite.Empty(notYet)
	suite.tracker.AssertExpectations(suite.T())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
