package queries

import (
	"context"
	"database/sql"

	"printshop/internal/core/domain/model/catalog"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListServicesQueryHandler filters category and material in SQL and the price range in
// memory, using the same bands as catalog.PriceRange.
type ListServicesQueryHandler struct {
	db *gorm.DB
}

func NewListServicesQueryHandler(db *gorm.DB) ListServicesQueryHandler {
	return ListServicesQueryHandler{db: db}
}

func (h ListServicesQueryHandler) Handle(ctx context.Context, query ListServicesQuery) ([]ListServicesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	category := string(query.Category())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			category,
			unit_price,
			unit,
			pricing_mode,
			compatible_materials,
			description
		FROM catalog_services
		WHERE (? = '' OR category = ?)
		  AND (? = '' OR ? = ANY(compatible_materials))
		ORDER BY category, unit_price, id
	`, category, category, query.MaterialID(), query.MaterialID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListServicesQueryResponse, 0)
	for rows.Next() {
		var (
			row             ListServicesQueryResponse
			cat, unit, mode string
			materials       pq.StringArray
			description     sql.NullString
		)
		if err = rows.Scan(&row.ID, &row.Name, &cat, &row.UnitPrice, &unit, &mode, &materials, &description); err != nil {
			return nil, err
		}
		if !query.PriceRange().Contains(row.UnitPrice) {
			continue
		}
		row.Category = catalog.Category(cat)
		row.Unit = catalog.PricingUnit(unit)
		row.PricingMode = catalog.PricingMode(mode)
		row.CompatibleMaterials = []string(materials)
		if row.CompatibleMaterials == nil {
			row.CompatibleMaterials = []string{}
		}
		row.Description = description.String
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type ListMaterialsQueryHandler struct {
	db *gorm.DB
}

func NewListMaterialsQueryHandler(db *gorm.DB) ListMaterialsQueryHandler {
	return ListMaterialsQueryHandler{db: db}
}

func (h ListMaterialsQueryHandler) Handle(ctx context.Context, query ListMaterialsQuery) ([]ListMaterialsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			technology,
			price_per_gram,
			stock,
			density,
			nozzle_min,
			nozzle_max,
			bed_min,
			bed_max
		FROM catalog_materials
		ORDER BY technology, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]ListMaterialsQueryResponse, 0)
	for rows.Next() {
		var (
			row                                  ListMaterialsQueryResponse
			technology, stock                    string
			density                              sql.NullFloat64
			nozzleMin, nozzleMax, bedMin, bedMax sql.NullInt64
		)
		if err = rows.Scan(&row.ID, &row.Name, &technology, &row.PricePerGram, &stock, &density,
			&nozzleMin, &nozzleMax, &bedMin, &bedMax); err != nil {
			return nil, err
		}
		row.Technology = catalog.Technology(technology)
		row.Stock = catalog.StockStatus(stock)
		row.PricePerKg = row.PricePerGram * 1000
		if density.Valid {
			row.Density = &density.Float64
		}
		row.NozzleTemperature = temperatureRange(nozzleMin, nozzleMax)
		row.BedTemperature = temperatureRange(bedMin, bedMax)
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func temperatureRange(lo, hi sql.NullInt64) *catalog.TemperatureRange {
	if !lo.Valid || !hi.Valid {
		return nil
	}
	return &catalog.TemperatureRange{Min: int(lo.Int64), Max: int(hi.Int64)}
}
