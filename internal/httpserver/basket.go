package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bdmarket/storefront/internal/buyer"
	"github.com/bdmarket/storefront/internal/events"
	"github.com/bdmarket/storefront/internal/logging"
	"github.com/bdmarket/storefront/internal/service"
	"github.com/bdmarket/storefront/internal/transport"
)

type BasketHTTP struct {
	Svc      *service.BasketService
	Catalog  *service.CatalogService
	View     *service.BasketViewService
	Producer events.Publisher
}

// GetBasket returns the current buyer's basket, 404 when none exists yet.
func (h *BasketHTTP) GetBasket(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "basket.get")

	buyerKey := buyer.Key(c)

	basket, err := h.Svc.Repo.GetBasketByBuyer(ctx, buyerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "basket not found")
		}
		l.Error("get_basket_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	resp, err := h.View.MapBasket(ctx, basket)
	if err != nil {
		l.Error("get_basket_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, resp)
}

// AddItem adds a catalog item to the basket, creating the basket on first
// use. The captured unit price comes from the live catalog record.
func (h *BasketHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "basket.add_item")

	buyerKey := buyer.Key(c)

	var req transport.AddToBasketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.CatalogItemID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "catalog_item_id required")
	}

	catalogItem, err := h.Catalog.GetItem(ctx, req.CatalogItemID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "catalog item not found")
		}
		l.Error("add_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	basket, err := h.Svc.AddItemToBasket(ctx, buyerKey, catalogItem.ID, catalogItem.Price, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("add_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicBasketEvents, buyerKey, map[string]any{
		"type":            "basket_item_added",
		"buyer_key":       buyerKey,
		"catalog_item_id": catalogItem.ID,
		"quantity":        req.Quantity,
	})

	resp, err := h.View.MapBasket(ctx, basket)
	if err != nil {
		l.Error("add_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("basket item added", "basket_id", basket.ID, "catalog_item_id", catalogItem.ID)
	return c.JSON(http.StatusOK, resp)
}

// UpdateItem sets one line's quantity; zero prunes the line.
func (h *BasketHTTP) UpdateItem(c echo.Context) error {
	return h.setItemQuantity(c, "basket.update_item", func(c echo.Context) (int, error) {
		var req transport.UpdateBasketItemRequest
		if err := c.Bind(&req); err != nil {
			return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		}
		return req.Quantity, nil
	})
}

// DeleteItem removes one line by forcing its quantity to zero.
func (h *BasketHTTP) DeleteItem(c echo.Context) error {
	return h.setItemQuantity(c, "basket.delete_item", func(echo.Context) (int, error) {
		return 0, nil
	})
}

func (h *BasketHTTP) setItemQuantity(c echo.Context, handler string, quantityOf func(echo.Context) (int, error)) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", handler)

	buyerKey := buyer.Key(c)

	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "item id is not an integer")
	}

	quantity, err := quantityOf(c)
	if err != nil {
		return err
	}

	basket, err := h.Svc.Repo.GetBasketByBuyer(ctx, buyerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "basket not found")
		}
		l.Error("set_quantity_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	found := false
	for _, line := range basket.Items {
		if line.ID == uint(itemID) {
			found = true
			break
		}
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "basket item not found")
	}

	basket, err = h.Svc.SetQuantities(ctx, basket.ID, buyerKey, map[uint]int{uint(itemID): quantity})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "basket not found")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("set_quantity_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicBasketEvents, buyerKey, map[string]any{
		"type":      "basket_quantity_set",
		"buyer_key": buyerKey,
		"line_id":   itemID,
		"quantity":  quantity,
	})

	resp, err := h.View.MapBasket(ctx, basket)
	if err != nil {
		l.Error("set_quantity_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, resp)
}
