package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/bdmarket/storefront/internal/events"
	"github.com/bdmarket/storefront/internal/logging"
	"github.com/bdmarket/storefront/internal/models"
	"github.com/bdmarket/storefront/internal/repo"
	"github.com/bdmarket/storefront/internal/search"
	"github.com/bdmarket/storefront/internal/service"
	"github.com/bdmarket/storefront/internal/transport"
	"github.com/bdmarket/storefront/internal/util"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	ES       *elasticsearch.Client
	ESIndex  string
	Producer events.Publisher
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is not an integer")
	}
	return uint(v), nil
}

func (h *CatalogHTTP) ListItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	filter := repo.CatalogFilter{
		BrandID: uint(parseIntDefault(c.QueryParam("brand_id"), 0)),
		TypeID:  uint(parseIntDefault(c.QueryParam("type_id"), 0)),
	}

	total, items, err := h.Svc.ListItems(ctx, filter, offset, limit)
	if err != nil {
		l.Error("list_items_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, transport.PagedCatalogResponse{Total: total, Items: items})
}

func (h *CatalogHTTP) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	item, err := h.Svc.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "catalog item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create")

	var req transport.CreateCatalogItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item := models.CatalogItem{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		PictureURI:     req.PictureURI,
		CatalogBrandID: req.CatalogBrandID,
		CatalogTypeID:  req.CatalogTypeID,
	}
	if err := h.Svc.CreateItem(ctx, &item); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.index(c, &item)
	publish(c, h.Producer, events.TopicProductEvents, strconv.FormatUint(uint64(item.ID), 10), map[string]any{
		"type":    "product_created",
		"item_id": item.ID,
		"name":    item.Name,
	})

	l.Info("catalog item created", "item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CatalogHTTP) PatchItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch")

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var patch service.CatalogItemPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.PatchItem(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "catalog item not found")
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("patch_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.index(c, item)
	publish(c, h.Producer, events.TopicProductEvents, strconv.FormatUint(uint64(item.ID), 10), map[string]any{
		"type":    "product_updated",
		"item_id": item.ID,
	})

	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete")

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "catalog item not found")
		}
		l.Error("delete_item_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if h.ES != nil {
		if err := search.DeleteProduct(ctx, h.ES, h.ESIndex, id); err != nil {
			l.Error("es delete failed", "item_id", id, "error", err)
		}
	}
	publish(c, h.Producer, events.TopicProductEvents, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":    "product_deleted",
		"item_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ListBrands(c echo.Context) error {
	brands, err := h.Svc.ListBrands(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *CatalogHTTP) ListTypes(c echo.Context) error {
	types, err := h.Svc.ListTypes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, types)
}

// Search queries the product index; unavailable search infrastructure is a
// 503, not a crash.
func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search unavailable")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, items, err := search.Search(ctx, h.ES, h.ESIndex, q, from, limit)
	if err != nil {
		l.Error("search_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, transport.PagedCatalogResponse{Total: total, Items: items})
}

func (h *CatalogHTTP) index(c echo.Context, item *models.CatalogItem) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	if err := search.IndexProduct(ctx, h.ES, h.ESIndex, item); err != nil {
		logging.FromContext(ctx).Error("es index failed", "item_id", item.ID, "error", err)
	}
}
