package cmd

import (
	"log/slog"

	httpin "printshop/internal/adapters/in/http"
	"printshop/internal/adapters/out/notify"
	"printshop/internal/adapters/out/postgres"
	"printshop/internal/adapters/out/postgres/catalogrepo"
	"printshop/internal/adapters/out/postgres/orderrepo"
	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	lifecycle  services.OrderLifecycle
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, publisher ports.OrderEventPublisher, logger *slog.Logger) CompositionRoot {
	if publisher == nil {
		publisher = notify.NewLogPublisher(logger)
	}
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		lifecycle:  services.NewOrderLifecycle(services.SystemClock{}),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryAll() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.uowFactoryAll(), c.config.Rates, c.lifecycle, c.publisher)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.lifecycle, c.publisher)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.orderUoWFactory(), c.lifecycle, c.publisher)
}

func (c *CompositionRoot) CreateAutoDeliverOrdersCommandHandler() commands.AutoDeliverOrdersCommandHandler {
	return commands.NewAutoDeliverOrdersCommandHandler(c.orderUoWFactory(), c.lifecycle, c.publisher)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreateServiceCommandHandler() commands.CreateServiceCommandHandler {
	return commands.NewCreateServiceCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateDeleteServiceCommandHandler() commands.DeleteServiceCommandHandler {
	return commands.NewDeleteServiceCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateCreateMaterialCommandHandler() commands.CreateMaterialCommandHandler {
	return commands.NewCreateMaterialCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateDeleteMaterialCommandHandler() commands.DeleteMaterialCommandHandler {
	return commands.NewDeleteMaterialCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateSeedCatalogCommandHandler() commands.SeedCatalogCommandHandler {
	return commands.NewSeedCatalogCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateEstimatePriceQueryHandler() queries.EstimatePriceQueryHandler {
	return queries.NewEstimatePriceQueryHandler(
		catalogrepo.NewGormServiceRepository(c.gormDB),
		catalogrepo.NewGormMaterialRepository(c.gormDB),
		c.config.Rates,
		c.lifecycle,
	)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB, nil))
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDashboardStatsQueryHandler() queries.DashboardStatsQueryHandler {
	return queries.NewDashboardStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListServicesQueryHandler() queries.ListServicesQueryHandler {
	return queries.NewListServicesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListMaterialsQueryHandler() queries.ListMaterialsQueryHandler {
	return queries.NewListMaterialsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		ListServices:      c.CreateListServicesQueryHandler(),
		ListMaterials:     c.CreateListMaterialsQueryHandler(),
		EstimatePrice:     c.CreateEstimatePriceQueryHandler(),
		TrackOrder:        c.CreateTrackOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		DashboardStats:    c.CreateDashboardStatsQueryHandler(),
		SubmitOrder:       c.CreateSubmitOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		ConfirmDelivery:   c.CreateConfirmDeliveryCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		CreateService:     c.CreateCreateServiceCommandHandler(),
		DeleteService:     c.CreateDeleteServiceCommandHandler(),
		CreateMaterial:    c.CreateCreateMaterialCommandHandler(),
		DeleteMaterial:    c.CreateDeleteMaterialCommandHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	autoDeliver := jobs.NewAutoDeliverJob(
		c.CreateAutoDeliverOrdersCommandHandler(),
		c.lifecycle,
		jobs.AutoDeliverSettings{
			Schedule:    c.config.AutoDeliverSchedule,
			GracePeriod: c.config.AutoDeliverGracePeriod,
			BatchSize:   c.config.AutoDeliverBatchSize,
		},
		c.logger,
	)
	return jobs.NewJobManager(autoDeliver)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
