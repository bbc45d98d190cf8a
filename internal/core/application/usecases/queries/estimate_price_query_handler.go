package queries

import (
	"context"

	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/services"
	"printshop/internal/core/ports"
)

// EstimatePriceQueryHandler prices a specification against the current catalog.
type EstimatePriceQueryHandler struct {
	services  ports.ServiceRepository
	materials ports.MaterialRepository
	rates     services.RateConfiguration
	clock     services.Clock
}

func NewEstimatePriceQueryHandler(
	serviceRepo ports.ServiceRepository,
	materialRepo ports.MaterialRepository,
	rates services.RateConfiguration,
	clock services.Clock,
) EstimatePriceQueryHandler {
	if clock == nil {
		clock = services.SystemClock{}
	}
	return EstimatePriceQueryHandler{
		services:  serviceRepo,
		materials: materialRepo,
		rates:     rates,
		clock:     clock,
	}
}

func (h EstimatePriceQueryHandler) Handle(ctx context.Context, query EstimatePriceQuery) (EstimatePriceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return EstimatePriceQueryResponse{}, err
	}

	svcs, err := h.services.List(ctx)
	if err != nil {
		return EstimatePriceQueryResponse{}, err
	}
	materials, err := h.materials.List(ctx)
	if err != nil {
		return EstimatePriceQueryResponse{}, err
	}

	engine, err := services.NewPricingEngine(h.rates, catalog.NewSnapshot(svcs, materials))
	if err != nil {
		return EstimatePriceQueryResponse{}, err
	}

	spec := query.Specification().WithClampedQuantity(h.rates.MaxQuantity)
	breakdown, err := engine.Compute(spec)
	if err != nil {
		return EstimatePriceQueryResponse{}, err
	}
	eta, err := engine.EstimateDelivery(spec, h.clock.Now())
	if err != nil {
		return EstimatePriceQueryResponse{}, err
	}

	return EstimatePriceQueryResponse{
		Quantity:          spec.Quantity(),
		Breakdown:         breakdown,
		EstimatedDelivery: eta,
	}, nil
}
