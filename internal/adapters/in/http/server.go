// Package http exposes the shop over a JSON API built on echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/catalog"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"
	"printshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server routes HTTP requests to the application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: handlers, logger: logger.With("component", "http")}
}

// Echo builds an echo instance with every route registered. API requests are validated
// against the embedded OpenAPI document, which is also served under /swagger.
func (s *Server) Echo() (*echo.Echo, error) {
	doc, err := LoadOpenAPI(context.Background())
	if err != nil {
		return nil, err
	}
	validator, err := s.validateRequests(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = s.errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	s.Register(e, validator)
	return e, nil
}

// Register adds the routes; apiMiddleware wraps everything under /api/v1.
func (s *Server) Register(e *echo.Echo, apiMiddleware ...echo.MiddlewareFunc) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", apiMiddleware...)
	api.GET("/catalog/services", s.ListServices)
	api.GET("/catalog/materials", s.ListMaterials)
	api.POST("/quotes", s.EstimatePrice)
	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders/track/:code", s.TrackOrder)
	api.POST("/orders/track/:code/delivery-confirmation", s.ConfirmDelivery)

	admin := api.Group("/admin")
	admin.GET("/orders", s.ListOrders)
	admin.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	admin.DELETE("/orders/:id", s.DeleteOrder)
	admin.GET("/stats", s.DashboardStats)
	admin.POST("/services", s.CreateService)
	admin.DELETE("/services/:id", s.DeleteService)
	admin.POST("/materials", s.CreateMaterial)
	admin.DELETE("/materials/:id", s.DeleteMaterial)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// ListServices handles GET /api/v1/catalog/services.
func (s *Server) ListServices(c echo.Context) error {
	category, err := queryString(c, "category")
	if err != nil {
		return s.fail(c, err)
	}
	material, err := queryString(c, "material")
	if err != nil {
		return s.fail(c, err)
	}
	price, err := queryString(c, "price")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListServicesQuery(catalog.Category(category), material, catalog.PriceRange(price))
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.h.ListServices.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Service, len(rows))
	for i, row := range rows {
		response[i] = Service{
			ID:                  row.ID,
			Name:                row.Name,
			Category:            string(row.Category),
			UnitPrice:           row.UnitPrice,
			Unit:                string(row.Unit),
			PricingMode:         string(row.PricingMode),
			CompatibleMaterials: row.CompatibleMaterials,
			Description:         row.Description,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// ListMaterials handles GET /api/v1/catalog/materials.
func (s *Server) ListMaterials(c echo.Context) error {
	rows, err := s.h.ListMaterials.Handle(c.Request().Context(), queries.NewListMaterialsQuery())
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Material, len(rows))
	for i, row := range rows {
		response[i] = Material{
			ID:                row.ID,
			Name:              row.Name,
			Technology:        string(row.Technology),
			PricePerGram:      row.PricePerGram,
			PricePerKg:        row.PricePerKg,
			Stock:             string(row.Stock),
			Density:           row.Density,
			NozzleTemperature: temperatureFromDomain(row.NozzleTemperature),
			BedTemperature:    temperatureFromDomain(row.BedTemperature),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// EstimatePrice handles POST /api/v1/quotes. Nothing is stored.
func (s *Server) EstimatePrice(c echo.Context) error {
	var body Specification
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	spec, err := body.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewEstimatePriceQuery(spec)
	if err != nil {
		return s.fail(c, err)
	}

	quote, err := s.h.EstimatePrice.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, Quote{
		Quantity:          quote.Quantity,
		Pricing:           breakdownFromDomain(quote.Breakdown),
		EstimatedDelivery: quote.EstimatedDelivery,
	})
}

// SubmitOrder handles POST /api/v1/orders.
func (s *Server) SubmitOrder(c echo.Context) error {
	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	customer, err := body.Customer.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	spec, err := body.Specification.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewSubmitOrderCommand(customer, spec)
	if err != nil {
		return s.fail(c, err)
	}

	placed, err := s.h.SubmitOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, orderFromDomain(placed))
}

// TrackOrder handles GET /api/v1/orders/track/:code?email=.
func (s *Server) TrackOrder(c echo.Context) error {
	code, err := trackingCodeParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	email, err := queryString(c, "email")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewTrackOrderQuery(code, email)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.h.TrackOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, trackingFromQuery(view))
}

// ConfirmDelivery handles POST /api/v1/orders/track/:code/delivery-confirmation.
func (s *Server) ConfirmDelivery(c echo.Context) error {
	var body DeliveryConfirmation
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	code, err := trackingCodeParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewConfirmDeliveryCommand(code, body.Email)
	if err != nil {
		return s.fail(c, err)
	}

	delivered, err := s.h.ConfirmDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFromDomain(delivered))
}

// ListOrders handles GET /api/v1/admin/orders?status=&limit=&offset=.
func (s *Server) ListOrders(c echo.Context) error {
	key, err := queryString(c, "status")
	if err != nil {
		return s.fail(c, err)
	}
	status := order.Unknown
	if key != "" && key != "all" {
		if status, err = order.ParseStatus(key); err != nil {
			return s.fail(c, err)
		}
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return s.fail(c, err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewListOrdersQuery(status, limit, offset)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]OrderRow, len(rows))
	for i, row := range rows {
		response[i] = OrderRow{
			ID:                row.ID.String(),
			TrackingCode:      row.TrackingCode,
			CustomerName:      row.CustomerName,
			CustomerEmail:     row.CustomerEmail,
			ServiceID:         row.ServiceID,
			Quantity:          row.Quantity,
			Status:            statusInfo(row.Status),
			Total:             money(row.Total),
			CreatedAt:         row.CreatedAt,
			EstimatedDelivery: row.EstimatedDelivery,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	var body StatusUpdate
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	id, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewUpdateOrderStatusCommand(id, status, body.Description)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.h.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFromDomain(updated))
}

// DeleteOrder handles DELETE /api/v1/admin/orders/:id.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DashboardStats handles GET /api/v1/admin/stats.
func (s *Server) DashboardStats(c echo.Context) error {
	stats, err := s.h.DashboardStats.Handle(c.Request().Context(), queries.NewDashboardStatsQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, statsFromQuery(stats))
}

// CreateService handles POST /api/v1/admin/services.
func (s *Server) CreateService(c echo.Context) error {
	var body Service
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	service, err := body.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCreateServiceCommand(service)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateService.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

// DeleteService handles DELETE /api/v1/admin/services/:id.
func (s *Server) DeleteService(c echo.Context) error {
	id, err := pathString(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteServiceCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.DeleteService.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateMaterial handles POST /api/v1/admin/materials.
func (s *Server) CreateMaterial(c echo.Context) error {
	var body Material
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	material, err := body.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCreateMaterialCommand(material)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.CreateMaterial.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

// DeleteMaterial handles DELETE /api/v1/admin/materials/:id.
func (s *Server) DeleteMaterial(c echo.Context) error {
	id, err := pathString(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteMaterialCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.DeleteMaterial.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Parameters are bound with the same styles the OpenAPI document declares: "simple" for
// path segments and exploded "form" for optional query values.

func pathString(c echo.Context, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &v, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

func trackingCodeParam(c echo.Context) (kernel.TrackingCode, error) {
	raw, err := pathString(c, "code")
	if err != nil {
		return kernel.TrackingCode{}, err
	}
	return kernel.ParseTrackingCode(raw)
}

func orderIDParam(c echo.Context) (kernel.UUID, error) {
	raw, err := pathString(c, "id")
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(raw)
}

func bindQuery[T any](c echo.Context, name string) (*T, error) {
	var v *T
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &v); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

func queryString(c echo.Context, name string) (string, error) {
	v, err := bindQuery[string](c, name)
	if err != nil || v == nil {
		return "", err
	}
	return *v, nil
}

// queryInt returns 0 for an absent parameter.
func queryInt(c echo.Context, name string) (int, error) {
	v, err := bindQuery[int](c, name)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}
