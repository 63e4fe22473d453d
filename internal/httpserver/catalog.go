package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vmakarenko/storefront-api/internal/events"
	"github.com/vmakarenko/storefront-api/internal/images"
	"github.com/vmakarenko/storefront-api/internal/logging"
	"github.com/vmakarenko/storefront-api/internal/service"
	"github.com/vmakarenko/storefront-api/internal/transport"
	"github.com/vmakarenko/storefront-api/internal/util"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Images   *images.Store
	Producer *events.Producer
}

func (h *CatalogHTTP) publish(c echo.Context, productID uint, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(productID), event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka publish failed", "error", err)
	}
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

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	product, err := h.Svc.GetProduct(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	total, items, limit, err := h.Svc.GetProducts(c.Request().Context(), page, size)
	if err != nil {
		return httpError(err)
	}

	offset, _ := util.Calculate(page, size)
	return c.JSON(http.StatusOK, transport.ProductPage{
		Data: items,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
		},
	})
}

// productInput reads the multipart form fields, storing the optional image
// file first so the resulting URL lands on the row.
func (h *CatalogHTTP) productInput(c echo.Context) (service.ProductInput, error) {
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return service.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	stock := parseIntDefault(c.FormValue("stock"), 0)
	if stock < 0 {
		return service.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid stock")
	}

	in := service.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Stock:       uint(stock),
	}

	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		// image is optional
		return in, nil
	}
	url, err := h.Images.Save(fh)
	if err != nil {
		return service.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in.ImageURL = url
	return in, nil
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create")

	in, err := h.productInput(c)
	if err != nil {
		return err
	}

	prod, err := h.Svc.CreateProduct(ctx, in)
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return httpError(err)
	}

	h.publish(c, prod.ID, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"product":   prod,
	})
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if bodyID := c.FormValue("id"); bodyID != "" && bodyID != c.Param("id") {
		return echo.NewHTTPError(http.StatusBadRequest, "id mismatch")
	}

	in, err := h.productInput(c)
	if err != nil {
		return err
	}

	prod, err := h.Svc.UpdateProduct(ctx, uint(id), in)
	if err != nil {
		l.Warn("update_product_error", "product_id", id, "error", err)
		return httpError(err)
	}

	h.publish(c, prod.ID, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"product":   prod,
	})
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteProduct(ctx, uint(id)); err != nil {
		l.Warn("delete_product_error", "product_id", id, "error", err)
		return httpError(err)
	}

	h.publish(c, uint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return c.NoContent(http.StatusNoContent)
}
