package http

import (
	"errors"
	"time"

	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

type ModelFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type Specification struct {
	ServiceID            string      `json:"serviceId"`
	MaterialID           string      `json:"materialId,omitempty"`
	Quantity             int         `json:"quantity"`
	RushOrder            bool        `json:"rushOrder"`
	ShippingMethod       string      `json:"shippingMethod,omitempty"`
	Finish               string      `json:"finish,omitempty"`
	EstimatedWeightGrams *float64    `json:"estimatedWeightGrams,omitempty"`
	EstimatedTimeHours   *float64    `json:"estimatedTimeHours,omitempty"`
	Color                string      `json:"color,omitempty"`
	SpecialInstructions  string      `json:"specialInstructions,omitempty"`
	Files                []ModelFile `json:"files,omitempty"`
}

func (s Specification) toDomain() (order.Specification, error) {
	var opts []order.SpecificationOption
	if s.EstimatedWeightGrams != nil {
		opts = append(opts, order.WithWeightGrams(*s.EstimatedWeightGrams))
	}
	if s.EstimatedTimeHours != nil {
		opts = append(opts, order.WithPrintHours(*s.EstimatedTimeHours))
	}
	if s.Color != "" {
		opts = append(opts, order.WithColor(s.Color))
	}
	if s.SpecialInstructions != "" {
		opts = append(opts, order.WithInstructions(s.SpecialInstructions))
	}
	if len(s.Files) > 0 {
		files := make([]order.ModelFile, 0, len(s.Files))
		var fileErrs []error
		for _, f := range s.Files {
			mf, err := order.NewModelFile(f.Name, f.Size)
			if err != nil {
				fileErrs = append(fileErrs, err)
				continue
			}
			files = append(files, mf)
		}
		if err := errors.Join(fileErrs...); err != nil {
			return order.Specification{}, err
		}
		opts = append(opts, order.WithModelFiles(files...))
	}

	return order.NewSpecification(
		s.ServiceID,
		s.MaterialID,
		s.Quantity,
		s.RushOrder,
		order.ShippingMethod(s.ShippingMethod),
		order.Finish(s.Finish),
		opts...,
	)
}

type Customer struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country,omitempty"`
}

func (c Customer) toDomain() (order.Customer, error) {
	return order.NewCustomer(c.Name, c.Email, c.Phone, c.Company, c.Address, c.City, c.PostalCode, c.Country)
}

type NewOrder struct {
	Customer      Customer      `json:"customer"`
	Specification Specification `json:"specification"`
}

type StatusUpdate struct {
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

type DeliveryConfirmation struct {
	Email string `json:"email"`
}

// Breakdown amounts are decimal strings with two fractional digits.
type Breakdown struct {
	Mode            string `json:"mode"`
	ServiceCost     string `json:"serviceCost"`
	MaterialCost    string `json:"materialCost"`
	EnergyCost      string `json:"energyCost"`
	MaintenanceCost string `json:"maintenanceCost"`
	PostProcessCost string `json:"postProcessCost"`
	LogisticsCost   string `json:"logisticsCost"`
	RushSurcharge   string `json:"rushSurcharge"`
	Subtotal        string `json:"subtotal"`
	MarkupAmount    string `json:"markupAmount"`
	ShippingCost    string `json:"shippingCost"`
	TaxAmount       string `json:"taxAmount"`
	Total           string `json:"total"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func breakdownFromDomain(b order.PricingBreakdown) Breakdown {
	return Breakdown{
		Mode:            string(b.Mode()),
		ServiceCost:     money(b.ServiceCost()),
		MaterialCost:    money(b.MaterialCost()),
		EnergyCost:      money(b.EnergyCost()),
		MaintenanceCost: money(b.MaintenanceCost()),
		PostProcessCost: money(b.PostProcessCost()),
		LogisticsCost:   money(b.LogisticsCost()),
		RushSurcharge:   money(b.RushSurcharge()),
		Subtotal:        money(b.Subtotal()),
		MarkupAmount:    money(b.MarkupAmount()),
		ShippingCost:    money(b.ShippingCost()),
		TaxAmount:       money(b.TaxAmount()),
		Total:           money(b.Total()),
	}
}

type Quote struct {
	Quantity          int       `json:"quantity"`
	Pricing           Breakdown `json:"pricing"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
}

type StatusInfo struct {
	Key             string `json:"key"`
	Label           string `json:"label"`
	Color           string `json:"color"`
	Icon            string `json:"icon"`
	ProgressPercent int    `json:"progressPercent"`
}

func statusInfo(s order.Status) StatusInfo {
	return StatusInfo{
		Key:             s.String(),
		Label:           s.Label(),
		Color:           s.Color(),
		Icon:            s.Icon(),
		ProgressPercent: s.ProgressPercent(),
	}
}

type HistoryEntry struct {
	Status      StatusInfo `json:"status"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	At          time.Time  `json:"at"`
}

func historyFromDomain(entries []order.HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntry{
			Status:      statusInfo(e.Status()),
			Title:       e.Title(),
			Description: e.Description(),
			At:          e.At(),
		})
	}
	return out
}

// Order is the response to every command that changes an order.
type Order struct {
	ID                string         `json:"id"`
	TrackingCode      string         `json:"trackingCode"`
	Status            StatusInfo     `json:"status"`
	Pricing           *Breakdown     `json:"pricing,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
	History           []HistoryEntry `json:"history"`
}

func orderFromDomain(o *order.Order) Order {
	resp := Order{
		ID:                o.ID().String(),
		TrackingCode:      o.TrackingCode().String(),
		Status:            statusInfo(o.Status()),
		CreatedAt:         o.CreatedAt(),
		EstimatedDelivery: o.EstimatedDelivery(),
		History:           historyFromDomain(o.History()),
	}
	if pricing, ok := o.Pricing(); ok {
		b := breakdownFromDomain(pricing)
		resp.Pricing = &b
	}
	return resp
}

type Tracking struct {
	TrackingCode      string         `json:"trackingCode"`
	Status            StatusInfo     `json:"status"`
	ProgressPercent   int            `json:"progressPercent"`
	CanConfirm        bool           `json:"canConfirmDelivery"`
	ServiceID         string         `json:"serviceId"`
	MaterialID        string         `json:"materialId,omitempty"`
	Quantity          int            `json:"quantity"`
	Total             string         `json:"total"`
	CreatedAt         time.Time      `json:"createdAt"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
	History           []HistoryEntry `json:"history"`
}

func trackingFromQuery(r queries.TrackOrderQueryResponse) Tracking {
	return Tracking{
		TrackingCode:      r.TrackingCode.String(),
		Status:            statusInfo(r.Status),
		ProgressPercent:   r.ProgressPercent,
		CanConfirm:        r.CanConfirm,
		ServiceID:         r.ServiceID,
		MaterialID:        r.MaterialID,
		Quantity:          r.Quantity,
		Total:             money(r.Total),
		CreatedAt:         r.CreatedAt,
		EstimatedDelivery: r.EstimatedDelivery,
		History:           historyFromDomain(r.History),
	}
}

type OrderRow struct {
	ID                string     `json:"id"`
	TrackingCode      string     `json:"trackingCode"`
	CustomerName      string     `json:"customerName"`
	CustomerEmail     string     `json:"customerEmail"`
	ServiceID         string     `json:"serviceId"`
	Quantity          int        `json:"quantity"`
	Status            StatusInfo `json:"status"`
	Total             string     `json:"total"`
	CreatedAt         time.Time  `json:"createdAt"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

type Stats struct {
	TotalOrders     int            `json:"totalOrders"`
	PendingOrders   int            `json:"pendingOrders"`
	ActiveOrders    int            `json:"activeOrders"`
	CompletedOrders int            `json:"completedOrders"`
	CancelledOrders int            `json:"cancelledOrders"`
	Revenue         string         `json:"revenue"`
	ByStatus        map[string]int `json:"byStatus"`
}

func statsFromQuery(r queries.DashboardStatsQueryResponse) Stats {
	byStatus := make(map[string]int, len(r.ByStatus))
	for s, n := range r.ByStatus {
		byStatus[s.String()] = n
	}
	return Stats{
		TotalOrders:     r.TotalOrders,
		PendingOrders:   r.PendingOrders,
		ActiveOrders:    r.ActiveOrders,
		CompletedOrders: r.CompletedOrders,
		CancelledOrders: r.CancelledOrders,
		Revenue:         money(r.Revenue),
		ByStatus:        byStatus,
	}
}

type Service struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	UnitPrice           float64  `json:"unitPrice"`
	Unit                string   `json:"unit"`
	PricingMode         string   `json:"pricingMode,omitempty"`
	CompatibleMaterials []string `json:"compatibleMaterials"`
	Description         string   `json:"description,omitempty"`
}

func (s Service) toDomain() (catalog.Service, error) {
	return catalog.NewService(
		s.ID,
		s.Name,
		catalog.Category(s.Category),
		s.UnitPrice,
		catalog.PricingUnit(s.Unit),
		catalog.PricingMode(s.PricingMode),
		s.CompatibleMaterials,
		s.Description,
	)
}

type TemperatureRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Material struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Technology        string            `json:"technology"`
	PricePerGram      float64           `json:"pricePerGram"`
	PricePerKg        float64           `json:"pricePerKg,omitempty"`
	Stock             string            `json:"stock"`
	Density           *float64          `json:"density,omitempty"`
	NozzleTemperature *TemperatureRange `json:"nozzleTemperature,omitempty"`
	BedTemperature    *TemperatureRange `json:"bedTemperature,omitempty"`
}

func (m Material) toDomain() (catalog.Material, error) {
	var opts []catalog.MaterialOption
	if m.Density != nil {
		opts = append(opts, catalog.WithDensity(*m.Density))
	}
	if r := m.NozzleTemperature; r != nil {
		opts = append(opts, catalog.WithNozzleTemperature(r.Min, r.Max))
	}
	if r := m.BedTemperature; r != nil {
		opts = append(opts, catalog.WithBedTemperature(r.Min, r.Max))
	}
	return catalog.NewMaterial(
		m.ID,
		m.Name,
		catalog.Technology(m.Technology),
		m.PricePerGram,
		catalog.StockStatus(m.Stock),
		opts...,
	)
}

func temperatureFromDomain(r *catalog.TemperatureRange) *TemperatureRange {
	if r == nil {
		return nil
	}
	return &TemperatureRange{Min: r.Min, Max: r.Max}
}
