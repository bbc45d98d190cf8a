package http

import (
	"context"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/order"
)

// Handler is a use case that only reports success or failure.
type Handler[In any] interface {
	Handle(ctx context.Context, in In) error
}

// ResultHandler is a use case that returns a value.
type ResultHandler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Handlers are the use cases the API exposes. Every field is required.
type Handlers struct {
	ListServices   ResultHandler[queries.ListServicesQuery, []queries.ListServicesQueryResponse]
	ListMaterials  ResultHandler[queries.ListMaterialsQuery, []queries.ListMaterialsQueryResponse]
	EstimatePrice  ResultHandler[queries.EstimatePriceQuery, queries.EstimatePriceQueryResponse]
	TrackOrder     ResultHandler[queries.TrackOrderQuery, queries.TrackOrderQueryResponse]
	ListOrders     ResultHandler[queries.ListOrdersQuery, []queries.ListOrdersQueryResponse]
	DashboardStats ResultHandler[queries.DashboardStatsQuery, queries.DashboardStatsQueryResponse]

	SubmitOrder       ResultHandler[commands.SubmitOrderCommand, *order.Order]
	UpdateOrderStatus ResultHandler[commands.UpdateOrderStatusCommand, *order.Order]
	ConfirmDelivery   ResultHandler[commands.ConfirmDeliveryCommand, *order.Order]
	DeleteOrder       Handler[commands.DeleteOrderCommand]

	CreateService  Handler[commands.CreateServiceCommand]
	DeleteService  Handler[commands.DeleteServiceCommand]
	CreateMaterial Handler[commands.CreateMaterialCommand]
	DeleteMaterial Handler[commands.DeleteMaterialCommand]
}
