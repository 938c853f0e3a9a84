package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bdmarket/storefront/internal/buyer"
	"github.com/bdmarket/storefront/internal/events"
	"github.com/bdmarket/storefront/internal/logging"
	"github.com/bdmarket/storefront/internal/models"
	"github.com/bdmarket/storefront/internal/service"
	"github.com/bdmarket/storefront/internal/transport"
	"github.com/bdmarket/storefront/internal/util"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer events.Publisher
}

// CreateOrder places an order from the current buyer's basket.
func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	buyerKey := buyer.Key(c)

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	address, err := models.NewAddress(req.Street, req.City, req.State, req.Country, req.ZipCode)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.Svc.CreateOrder(ctx, buyerKey, address)
	if err != nil {
		if errors.Is(err, service.ErrEmptyBasket) {
			l.Warn("create_order_rejected", "status", 400, "reason", "empty basket")
			return echo.NewHTTPError(http.StatusBadRequest, service.ErrEmptyBasket.Error())
		}
		l.Error("create_order_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicOrderEvents, buyerKey, map[string]any{
		"type":       "order_created",
		"order_id":   order.ID,
		"buyer_key":  buyerKey,
		"item_count": len(order.Items),
		"total":      util.Round2(order.Total()),
	})

	return c.JSON(http.StatusCreated, mapOrder(order))
}

// GetOrder fetches one of the current buyer's orders; anybody else's order
// looks like it does not exist.
func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	buyerKey := buyer.Key(c)

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "order id is not an integer")
	}

	order, err := h.Svc.GetOrderByID(ctx, uint(orderID))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if order.BuyerKey != buyerKey {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	return c.JSON(http.StatusOK, mapOrder(order))
}

// ListOrders returns the current buyer's orders, newest first.
func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	buyerKey := buyer.Key(c)

	orders, err := h.Svc.ListOrders(ctx, buyerKey)
	if err != nil {
		l.Error("list_orders_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	resp := make([]transport.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, mapOrder(&orders[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func mapOrder(order *models.Order) transport.OrderResponse {
	items := make([]transport.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, transport.OrderItemResponse{
			ID:            item.ID,
			CatalogItemID: item.CatalogItemID,
			ProductName:   item.ProductName,
			PictureURL:    item.PictureURI,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
		})
	}
	return transport.OrderResponse{
		ID:        order.ID,
		BuyerKey:  order.BuyerKey,
		OrderDate: order.OrderDate,
		ShipTo: transport.AddressResponse{
			Street:  order.ShipTo.Street,
			City:    order.ShipTo.City,
			State:   order.ShipTo.State,
			Country: order.ShipTo.Country,
			ZipCode: order.ShipTo.ZipCode,
		},
		Items: items,
		Total: util.Round2(order.Total()),
	}
}
