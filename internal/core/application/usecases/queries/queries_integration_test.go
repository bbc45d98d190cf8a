package queries_test

import (
	"context"
	"testing"
	"time"

	"printshop/internal/adapters/out/postgres/catalogrepo"
	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueriesIntegrationTestSuite runs the read-side queries against PostgreSQL.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository
	now       time.Time
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryEntryDTO{},
		&catalogrepo.ServiceDTO{},
		&catalogrepo.MaterialDTO{},
	))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE order_status_history, orders, catalog_services, catalog_materials",
	).Error)

	ctx := context.Background()
	services := catalogrepo.NewGormServiceRepository(suite.db)
	for _, s := range catalog.DefaultServices() {
		suite.Require().NoError(services.Add(ctx, s))
	}
	materials := catalogrepo.NewGormMaterialRepository(suite.db)
	for _, m := range catalog.DefaultMaterials() {
		suite.Require().NoError(materials.Add(ctx, m))
	}

	suite.orders = orderrepo.NewGormOrderRepository(suite.db, nil)
	suite.now = time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// placeOrder stores a design order created at the given offset from suite.now and walked
// along the lifecycle to status. The total is unitPrice × 1 + 5 shipping + 21% tax.
func (suite *QueriesIntegrationTestSuite) placeOrder(status order.Status, service float64, createdAfter time.Duration) *order.Order {
	created := suite.now.Add(createdAfter)
	customer, err := order.NewCustomer("Lucia", "lucia@example.com", "611222333", "", "Gran Via 2", "Madrid", "28013", "")
	suite.Require().NoError(err)
	spec, err := order.NewSpecification("design-basic", "", 1, false, order.ShippingStandard, order.FinishNone)
	suite.Require().NoError(err)

	o, err := order.NewDraftOrder(kernel.NewUUID(), kernel.NewTrackingCode(created), customer, spec, created)
	suite.Require().NoError(err)
	pricing, err := order.NewPricingBreakdown(catalog.ServiceRate, order.CostTerms{
		Service: service, Shipping: 5, Tax: service * 0.21,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(o.SetPricing(pricing, created.AddDate(0, 0, 8)))
	suite.Require().NoError(o.Submit(created.Add(time.Second)))

	path := map[order.Status][]order.Status{
		order.Pending:      nil,
		order.Confirmed:    {order.Confirmed},
		order.InProduction: {order.Confirmed, order.InProduction},
		order.Shipped:      {order.Confirmed, order.InProduction, order.QualityCheck, order.Shipped},
		order.Delivered:    {order.Confirmed, order.InProduction, order.QualityCheck, order.Shipped, order.Delivered},
		order.Cancelled:    {order.Cancelled},
	}
	steps, ok := path[status]
	suite.Require().True(ok, "no path to %s", status)
	at := created.Add(time.Minute)
	for _, next := range steps {
		_, err = o.Transition(next, "", at)
		suite.Require().NoError(err)
		at = at.Add(time.Minute)
	}

	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_NewestFirstAndFilteredByStatus() {
	ctx := context.Background()
	oldest := suite.placeOrder(order.Pending, 30, 0)
	middle := suite.placeOrder(order.Shipped, 60, time.Hour)
	newest := suite.placeOrder(order.Pending, 90, 2*time.Hour)
	handler := queries.NewListOrdersQueryHandler(suite.db)

	query, err := queries.NewListOrdersQuery(order.Unknown, 0, 0)
	suite.Require().NoError(err)
	rows, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal(newest.ID(), rows[0].ID)
	suite.Equal(middle.ID(), rows[1].ID)
	suite.Equal(oldest.ID(), rows[2].ID)

	first := rows[0]
	suite.Equal(newest.TrackingCode().String(), first.TrackingCode)
	suite.Equal("Lucia", first.CustomerName)
	suite.Equal("lucia@example.com", first.CustomerEmail)
	suite.Equal("design-basic", first.ServiceID)
	suite.Equal(1, first.Quantity)
	suite.Equal(order.Pending, first.Status)
	suite.Equal("113.90", first.Total.StringFixed(2))
	suite.Require().NotNil(first.EstimatedDelivery)
	suite.True(newest.EstimatedDelivery().Equal(*first.EstimatedDelivery))
	suite.Equal(time.UTC, first.CreatedAt.Location())
	suite.Equal(time.UTC, first.EstimatedDelivery.Location())

	query, err = queries.NewListOrdersQuery(order.Pending, 0, 0)
	suite.Require().NoError(err)
	rows, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	for _, row := range rows {
		suite.Equal(order.Pending, row.Status)
	}

	query, err = queries.NewListOrdersQuery(order.Unknown, 1, 1)
	suite.Require().NoError(err)
	rows, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(middle.ID(), rows[0].ID)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_EmptyBook() {
	query, err := queries.NewListOrdersQuery(order.Delivered, 10, 0)
	suite.Require().NoError(err)

	rows, err := queries.NewListOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(rows)
	suite.Empty(rows)
}

func (suite *QueriesIntegrationTestSuite) TestDashboardStats() {
	suite.placeOrder(order.Pending, 30, 0)
	suite.placeOrder(order.Confirmed, 30, time.Minute)
	suite.placeOrder(order.InProduction, 50, 2*time.Minute)
	suite.placeOrder(order.Shipped, 50, 3*time.Minute)
	suite.placeOrder(order.Delivered, 100, 4*time.Minute)
	suite.placeOrder(order.Cancelled, 1000, 5*time.Minute)

	stats, err := queries.NewDashboardStatsQueryHandler(suite.db).
		Handle(context.Background(), queries.NewDashboardStatsQuery())

	suite.Require().NoError(err)
	suite.Equal(6, stats.TotalOrders)
	suite.Equal(2, stats.PendingOrders)
	suite.Equal(2, stats.ActiveOrders)
	suite.Equal(1, stats.CompletedOrders)
	suite.Equal(1, stats.CancelledOrders)
	suite.Equal(1, stats.ByStatus[order.Shipped])
	suite.Zero(stats.ByStatus[order.QualityCheck])
	// 41.30 × 2 + 60.50 × 2 + 126.00; the cancelled order is excluded
	suite.True(decimal.RequireFromString("329.60").Equal(stats.Revenue), stats.Revenue.String())
}

func (suite *QueriesIntegrationTestSuite) TestDashboardStats_EmptyBook() {
	stats, err := queries.NewDashboardStatsQueryHandler(suite.db).
		Handle(context.Background(), queries.NewDashboardStatsQuery())

	suite.Require().NoError(err)
	suite.Zero(stats.TotalOrders)
	suite.True(stats.Revenue.IsZero())
	suite.Empty(stats.ByStatus)
}

func (suite *QueriesIntegrationTestSuite) listServices(category catalog.Category, materialID string, price catalog.PriceRange) []string {
	query, err := queries.NewListServicesQuery(category, materialID, price)
	suite.Require().NoError(err)
	rows, err := queries.NewListServicesQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}

func (suite *QueriesIntegrationTestSuite) TestListServices_Filters() {
	suite.Len(suite.listServices("", "", catalog.AnyPrice), 7)
	suite.Equal([]string{"design-basic", "design-advanced"}, suite.listServices(catalog.CategoryDesign, "", catalog.AnyPrice))
	suite.Equal([]string{"printing-custom"}, suite.listServices(catalog.CategoryPrinting, "tpu", catalog.AnyPrice))
	suite.Equal([]string{"printing-custom", "printing-pla"}, suite.listServices("", "pla", catalog.AnyPrice))
	suite.Equal([]string{"printing-custom", "printing-pla", "printing-abs"}, suite.listServices("", "", catalog.LowPrice))
	suite.Equal([]string{"design-basic", "postprocessing", "printing-petg"}, suite.listServices("", "", catalog.MediumPrice))
	suite.Equal([]string{"design-advanced"}, suite.listServices("", "", catalog.HighPrice))
	suite.Empty(suite.listServices(catalog.CategoryFinishing, "pla", catalog.AnyPrice))
}

func (suite *QueriesIntegrationTestSuite) TestListServices_MapsColumns() {
	query, err := queries.NewListServicesQuery(catalog.CategoryFinishing, "", catalog.AnyPrice)
	suite.Require().NoError(err)

	rows, err := queries.NewListServicesQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal("postprocessing", rows[0].ID)
	suite.Equal(catalog.CategoryFinishing, rows[0].Category)
	suite.Equal(catalog.PerPiece, rows[0].Unit)
	suite.Equal(catalog.ServiceRate, rows[0].PricingMode)
	suite.InDelta(25.0, rows[0].UnitPrice, 1e-9)
	suite.Empty(rows[0].CompatibleMaterials)
	suite.NotEmpty(rows[0].Description)
}

func (suite *QueriesIntegrationTestSuite) TestListMaterials() {
	rows, err := queries.NewListMaterialsQueryHandler(suite.db).
		Handle(context.Background(), queries.NewListMaterialsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(rows, 5)

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	suite.Equal([]string{"abs", "petg", "pla", "tpu", "resin"}, ids)

	pla := rows[2]
	suite.Equal(catalog.FDM, pla.Technology)
	suite.InDelta(15000.0, pla.PricePerKg, 1e-9)
	suite.Require().NotNil(pla.Density)
	suite.InDelta(1.24, *pla.Density, 1e-9)
	suite.Equal(&catalog.TemperatureRange{Min: 190, Max: 220}, pla.NozzleTemperature)
	suite.Equal(&catalog.TemperatureRange{Min: 0, Max: 60}, pla.BedTemperature)
	suite.Equal(catalog.LowStock, rows[3].Stock)

	resin := rows[4]
	suite.Equal(catalog.SLA, resin.Technology)
	suite.NotNil(resin.Density)
	suite.Nil(resin.NozzleTemperature)
	suite.Nil(resin.BedTemperature)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
