package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vmakarenko/storefront-api/internal/events"
	"github.com/vmakarenko/storefront-api/internal/logging"
	authmw "github.com/vmakarenko/storefront-api/internal/middleware/auth"
	"github.com/vmakarenko/storefront-api/internal/service"
	"github.com/vmakarenko/storefront-api/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

func (h *OrderHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka publish failed", "error", err)
	}
}

// PlaceOrder checks out the caller's stored cart (the cart is the single
// source of lines and prices).
func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.PlaceOrder(ctx, userID)
	if err != nil {
		l.Warn("place_order_error", "error", err)
		return httpError(err)
	}

	l.Info("order_placed", "order_id", order.ID, "total", order.Total)
	h.publish(c, fmt.Sprint(userID), map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.Total,
	})

	return c.JSON(http.StatusCreated, transport.OrderResponse{
		OrderID: order.ID,
		Total:   order.Total,
		Status:  order.Status,
		Details: order.Details,
	})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, uint(id), req.Status)
	if err != nil {
		l.Warn("update_status_error", "order_id", id, "error", err)
		return httpError(err)
	}

	h.publish(c, fmt.Sprint(order.UserID), map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  order.Status,
	})
	return c.JSON(http.StatusOK, order)
}
