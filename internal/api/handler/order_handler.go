package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minicrm/crm-api/internal/api/metrics"
	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/ports"
)

// OrderHandler handles order routes.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type orderItemRequest struct {
	ArticleID string `json:"article_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
	// An absent unit price captures the article's catalogue price; an
	// explicit 0 marks a free line.
	UnitPrice *float64 `json:"unit_price" validate:"omitempty,gte=0"`
}

type createOrderRequest struct {
	Number   string             `json:"number"    validate:"omitempty,max=20"`
	Date     time.Time          `json:"date"`
	Status   string             `json:"status"    validate:"omitempty,oneof=requested preparing shipped collected cancelled"`
	ClientID string             `json:"client_id" validate:"required"`
	Items    []orderItemRequest `json:"items"     validate:"required,min=1,dive"`
	Total    float64            `json:"total"     validate:"gte=0"`
}

type updateOrderRequest struct {
	Date     time.Time          `json:"date"`
	Status   string             `json:"status"    validate:"required,oneof=requested preparing shipped collected cancelled"`
	ClientID string             `json:"client_id" validate:"required"`
	Items    []orderItemRequest `json:"items"     validate:"required,min=1,dive"`
	Total    float64            `json:"total"     validate:"gte=0"`
}

func itemInputs(items []orderItemRequest) []ports.OrderItemInput {
	out := make([]ports.OrderItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, ports.OrderItemInput{
			ArticleID: it.ArticleID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.service.Create(c.Request().Context(), ports.CreateOrderInput{
		Number:   req.Number,
		Date:     req.Date,
		Status:   domain.OrderStatus(req.Status),
		ClientID: req.ClientID,
		Items:    itemInputs(req.Items),
		Total:    req.Total,
	})
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, order)
}

// Update handles PUT /api/orders/:id.
func (h *OrderHandler) Update(c echo.Context) error {
	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateOrderInput{
		Date:     req.Date,
		Status:   domain.OrderStatus(req.Status),
		ClientID: req.ClientID,
		Items:    itemInputs(req.Items),
		Total:    req.Total,
	})
	if err != nil {
		return err
	}

	metrics.OrderStatusChangesTotal.WithLabelValues(string(order.Status)).Inc()
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /api/orders/:id.
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "order deleted"})
}
