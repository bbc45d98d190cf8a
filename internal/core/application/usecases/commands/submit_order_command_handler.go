package commands

import (
	"context"

	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

// SubmitOrderCommandHandler prices a customer's request against the stored catalog and
// places it as a pending order.
//
// Example:
//
//	handler := NewSubmitOrderCommandHandler(uowFactory, rates, lifecycle, publisher)
//	placed, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConfiguration) {
//	    // the order refers to a service or material the catalog does not have
//	}
//	fmt.Println(placed.TrackingCode())
type SubmitOrderCommandHandler struct {
	uowFactory UoWFactory
	rates      services.RateConfiguration
	lifecycle  services.OrderLifecycle
	publisher  ports.OrderEventPublisher
}

func NewSubmitOrderCommandHandler(
	uowFactory UoWFactory,
	rates services.RateConfiguration,
	lifecycle services.OrderLifecycle,
	publisher ports.OrderEventPublisher,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		rates:      rates,
		lifecycle:  lifecycle,
		publisher:  publisher,
	}
}

// Handle clamps the quantity, prices the specification, creates the draft and submits it.
// Printing services additionally require at least one model file.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (placed *order.Order, err error) {
	ctx, span := tracer.Start(ctx, "SubmitOrder")
	defer func() { endSpan(span, err) }()

	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	snapshot, err := loadCatalog(ctx, uow)
	if err != nil {
		return nil, err
	}
	engine, err := services.NewPricingEngine(h.rates, snapshot)
	if err != nil {
		return nil, err
	}

	spec := cmd.Specification().WithClampedQuantity(h.rates.MaxQuantity)
	pricing, err := engine.Compute(spec)
	if err != nil {
		return nil, err
	}
	if svc, _ := snapshot.Service(spec.ServiceID()); svc.RequiresModelFile() && len(spec.ModelFiles()) == 0 {
		return nil, errs.NewValueIsRequiredError("model files")
	}

	now := h.lifecycle.Now()
	eta, err := engine.EstimateDelivery(spec, now)
	if err != nil {
		return nil, err
	}

	placed, err = order.NewDraftOrder(kernel.NewUUID(), kernel.NewTrackingCode(now), cmd.Customer(), spec, now)
	if err != nil {
		return nil, err
	}
	if err = placed.SetPricing(pricing, eta); err != nil {
		return nil, err
	}
	if err = h.lifecycle.Submit(placed); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("order.id", placed.ID().String()),
		attribute.String("order.tracking_code", placed.TrackingCode().String()),
	)

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishStatusChanges(ctx, h.publisher, uow.StatusChanges())
	return placed, nil
}

func loadCatalog(ctx context.Context, repos CatalogRepoFactory) (catalog.Snapshot, error) {
	svcs, err := repos.ServiceRepository().List(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	materials, err := repos.MaterialRepository().List(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	return catalog.NewSnapshot(svcs, materials), nil
}
