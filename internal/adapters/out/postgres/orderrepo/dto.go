// Package orderrepo persists order aggregates in PostgreSQL: one row per order in "orders"
// and one row per timeline entry in "order_status_history".
package orderrepo

import (
	"encoding/json"
	"time"

	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the "orders" row. Status is duplicated from the last history row so that
// listings and the dashboard can filter without a join; Version is the number of history
// rows and serves as the optimistic lock.
type OrderDTO struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey"`
	TrackingCode      string            `gorm:"type:varchar(20);not null;uniqueIndex"`
	Customer          CustomerDTO       `gorm:"embedded;embeddedPrefix:customer_"`
	Spec              SpecificationDTO  `gorm:"embedded;embeddedPrefix:spec_"`
	Pricing           PricingDTO        `gorm:"embedded;embeddedPrefix:pricing_"`
	Status            string            `gorm:"type:varchar(20);not null;index"`
	Version           int               `gorm:"type:int;not null"`
	CreatedAt         time.Time         `gorm:"not null;index"`
	EstimatedDelivery *time.Time        `gorm:"index"`
	History           []HistoryEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type CustomerDTO struct {
	Name       string `gorm:"type:varchar(255);not null"`
	Email      string `gorm:"type:varchar(255);not null;index"`
	Phone      string `gorm:"type:varchar(50);not null"`
	Company    string `gorm:"type:varchar(255)"`
	Address    string `gorm:"type:varchar(255);not null"`
	City       string `gorm:"type:varchar(100);not null"`
	PostalCode string `gorm:"type:varchar(20);not null"`
	Country    string `gorm:"type:varchar(100);not null"`
}

type SpecificationDTO struct {
	ServiceID      string   `gorm:"type:varchar(100);not null"`
	MaterialID     string   `gorm:"type:varchar(100)"`
	Quantity       int      `gorm:"type:int;not null"`
	Rush           bool     `gorm:"not null"`
	ShippingMethod string   `gorm:"type:varchar(20);not null"`
	Finish         string   `gorm:"type:varchar(20);not null"`
	WeightGrams    *float64 `gorm:"type:double precision"`
	PrintHours     *float64 `gorm:"type:double precision"`
	Color          string   `gorm:"type:varchar(50)"`
	Instructions   string   `gorm:"type:text"`
	ModelFiles     datatypes.JSON
}

type modelFileJSON struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type PricingDTO struct {
	Priced      bool            `gorm:"not null"`
	Mode        string          `gorm:"type:varchar(20)"`
	Service     decimal.Decimal `gorm:"type:numeric(14,2)"`
	Material    decimal.Decimal `gorm:"type:numeric(14,2)"`
	Energy      decimal.Decimal `gorm:"type:numeric(14,2)"`
	Maintenance decimal.Decimal `gorm:"type:numeric(14,2)"`
	PostProcess decimal.Decimal `gorm:"type:numeric(14,2)"`
	Logistics   decimal.Decimal `gorm:"type:numeric(14,2)"`
	Rush        decimal.Decimal `gorm:"type:numeric(14,2)"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(14,2)"`
	Markup      decimal.Decimal `gorm:"type:numeric(14,2)"`
	Shipping    decimal.Decimal `gorm:"type:numeric(14,2)"`
	Tax         decimal.Decimal `gorm:"type:numeric(14,2)"`
	Total       decimal.Decimal `gorm:"type:numeric(14,2);index"`
}

// HistoryEntryDTO is one "order_status_history" row. Seq is the 1-based position in the
// timeline; (order_id, seq) is unique so two writers can never append the same slot.
type HistoryEntryDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_history_order_seq"`
	Seq         int       `gorm:"not null;uniqueIndex:idx_history_order_seq"`
	Status      string    `gorm:"type:varchar(20);not null"`
	At          time.Time `gorm:"not null"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
}

func (HistoryEntryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) (OrderDTO, error) {
	spec, err := specFromDomain(o.Specification())
	if err != nil {
		return OrderDTO{}, err
	}

	id := o.ID().Bytes()
	dto := OrderDTO{
		ID:           id,
		TrackingCode: o.TrackingCode().String(),
		Customer:     customerFromDomain(o.Customer()),
		Spec:         spec,
		Status:       o.Status().String(),
		Version:      len(o.History()),
		CreatedAt:    o.CreatedAt(),
		History:      historyFromDomain(id, o.History(), 0),
	}
	if eta := o.EstimatedDelivery(); !eta.IsZero() {
		dto.EstimatedDelivery = &eta
	}
	if pricing, ok := o.Pricing(); ok {
		dto.Pricing = pricingFromDomain(pricing)
	}
	return dto, nil
}

func customerFromDomain(c order.Customer) CustomerDTO {
	return CustomerDTO{
		Name:       c.Name(),
		Email:      c.Email(),
		Phone:      c.Phone(),
		Company:    c.Company(),
		Address:    c.Address(),
		City:       c.City(),
		PostalCode: c.PostalCode(),
		Country:    c.Country(),
	}
}

func specFromDomain(s order.Specification) (SpecificationDTO, error) {
	files := make([]modelFileJSON, 0, len(s.ModelFiles()))
	for _, f := range s.ModelFiles() {
		files = append(files, modelFileJSON{Name: f.Name(), Size: f.Size()})
	}
	raw, err := json.Marshal(files)
	if err != nil {
		return SpecificationDTO{}, err
	}

	dto := SpecificationDTO{
		ServiceID:      s.ServiceID(),
		MaterialID:     s.MaterialID(),
		Quantity:       s.Quantity(),
		Rush:           s.Rush(),
		ShippingMethod: string(s.ShippingMethod()),
		Finish:         string(s.Finish()),
		Color:          s.Color(),
		Instructions:   s.Instructions(),
		ModelFiles:     datatypes.JSON(raw),
	}
	if w, ok := s.WeightGrams(); ok {
		dto.WeightGrams = &w
	}
	if h, ok := s.PrintHours(); ok {
		dto.PrintHours = &h
	}
	return dto, nil
}

func pricingFromDomain(p order.PricingBreakdown) PricingDTO {
	a := p.Amounts()
	return PricingDTO{
		Priced:      true,
		Mode:        string(p.Mode()),
		Service:     a.Service,
		Material:    a.Material,
		Energy:      a.Energy,
		Maintenance: a.Maintenance,
		PostProcess: a.PostProcess,
		Logistics:   a.Logistics,
		Rush:        a.Rush,
		Subtotal:    a.Subtotal,
		Markup:      a.Markup,
		Shipping:    a.Shipping,
		Tax:         a.Tax,
		Total:       a.Total,
	}
}

// historyFromDomain maps entries starting at timeline position offset.
func historyFromDomain(orderID uuid.UUID, entries []order.HistoryEntry, offset int) []HistoryEntryDTO {
	dtos := make([]HistoryEntryDTO, 0, len(entries))
	for i, e := range entries {
		dtos = append(dtos, HistoryEntryDTO{
			OrderID:     orderID,
			Seq:         offset + i + 1,
			Status:      e.Status().String(),
			At:          e.At(),
			Title:       e.Title(),
			Description: e.Description(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	code, err := kernel.ParseTrackingCode(dto.TrackingCode)
	if err != nil {
		return nil, err
	}
	c := dto.Customer
	customer, err := order.NewCustomer(c.Name, c.Email, c.Phone, c.Company, c.Address, c.City, c.PostalCode, c.Country)
	if err != nil {
		return nil, err
	}
	spec, err := specToDomain(dto.Spec)
	if err != nil {
		return nil, err
	}

	var pricing *order.PricingBreakdown
	if dto.Pricing.Priced {
		p, pricingErr := pricingToDomain(dto.Pricing)
		if pricingErr != nil {
			return nil, pricingErr
		}
		pricing = &p
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		status, statusErr := order.ParseStatus(h.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		entry, entryErr := order.NewHistoryEntry(status, h.At, h.Title, h.Description)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	var eta time.Time
	if dto.EstimatedDelivery != nil {
		eta = *dto.EstimatedDelivery
	}

	return order.RestoreOrder(id, code, customer, spec, pricing, history, dto.CreatedAt, eta)
}

func specToDomain(dto SpecificationDTO) (order.Specification, error) {
	var files []modelFileJSON
	if len(dto.ModelFiles) > 0 {
		if err := json.Unmarshal(dto.ModelFiles, &files); err != nil {
			return order.Specification{}, err
		}
	}
	modelFiles := make([]order.ModelFile, 0, len(files))
	for _, f := range files {
		mf, err := order.NewModelFile(f.Name, f.Size)
		if err != nil {
			return order.Specification{}, err
		}
		modelFiles = append(modelFiles, mf)
	}

	opts := []order.SpecificationOption{
		order.WithColor(dto.Color),
		order.WithInstructions(dto.Instructions),
		order.WithModelFiles(modelFiles...),
	}
	if dto.WeightGrams != nil {
		opts = append(opts, order.WithWeightGrams(*dto.WeightGrams))
	}
	if dto.PrintHours != nil {
		opts = append(opts, order.WithPrintHours(*dto.PrintHours))
	}

	return order.NewSpecification(dto.ServiceID, dto.MaterialID, dto.Quantity, dto.Rush,
		order.ShippingMethod(dto.ShippingMethod), order.Finish(dto.Finish), opts...)
}

func pricingToDomain(dto PricingDTO) (order.PricingBreakdown, error) {
	return order.RestorePricingBreakdown(catalog.PricingMode(dto.Mode), order.BreakdownAmounts{
		Service:     dto.Service,
		Material:    dto.Material,
		Energy:      dto.Energy,
		Maintenance: dto.Maintenance,
		PostProcess: dto.PostProcess,
		Logistics:   dto.Logistics,
		Rush:        dto.Rush,
		Subtotal:    dto.Subtotal,
		Markup:      dto.Markup,
		Shipping:    dto.Shipping,
		Tax:         dto.Tax,
		Total:       dto.Total,
	})
}
