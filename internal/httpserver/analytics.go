package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vmakarenko/storefront-api/internal/service"
)

type AnalyticsHTTP struct {
	Svc *service.AnalyticsService
}

func (h *AnalyticsHTTP) Summary(c echo.Context) error {
	out, err := h.Svc.Summary(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHTTP) BestSellingProducts(c echo.Context) error {
	out, err := h.Svc.BestSellingProducts(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHTTP) SalesReport(c echo.Context) error {
	out, err := h.Svc.SalesReport(
		c.Request().Context(),
		c.QueryParam("startDate"),
		c.QueryParam("endDate"),
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHTTP) UserStatistics(c echo.Context) error {
	out, err := h.Svc.UserStatistics(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHTTP) OrderStatusDistribution(c echo.Context) error {
	out, err := h.Svc.OrderStatusDistribution(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}
