package httpserver_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmakarenko/storefront-api/internal/models"
	"github.com/vmakarenko/storefront-api/internal/transport"
)

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	token := env.login("alice", "password")

	rec := env.do(http.MethodPost, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var orders, details int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, env.DB.Model(&models.OrderDetail{}).Count(&details).Error)
	require.EqualValues(t, 0, orders)
	require.EqualValues(t, 0, details)
}

func TestPlaceOrderMaterializesCart(t *testing.T) {
	env := newTestEnv(t)
	token := env.login("alice", "password")

	p := env.createProduct("keyboard", 10.0, 5)
	require.NoError(t, env.DB.Create(&models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 2}).Error)

	rec := env.do(http.MethodPost, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeJSON[transport.OrderResponse](t, rec)
	require.Equal(t, 20.0, resp.Total)
	require.Equal(t, models.StatusPending, resp.Status)
	require.Len(t, resp.Details, 1)
	require.Equal(t, p.ID, resp.Details[0].ProductID)
	require.Equal(t, uint(2), resp.Details[0].Quantity)
	require.Equal(t, 10.0, resp.Details[0].Price)

	// the consumed cart rows are gone
	var cartCount int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount).Error)
	require.EqualValues(t, 0, cartCount)
}

func TestPlaceOrderCapturesPriceAtPurchaseTime(t *testing.T) {
	env := newTestEnv(t)
	token := env.login("alice", "password")

	p := env.createProduct("keyboard", 10.0, 5)
	require.NoError(t, env.DB.Create(&models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 1}).Error)

	rec := env.do(http.MethodPost, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeJSON[transport.OrderResponse](t, rec)

	// raise the live price; the placed order keeps the old one
	require.NoError(t, env.DB.Model(&models.Product{}).Where("id = ?", p.ID).Update("price", 99.0).Error)

	var detail models.OrderDetail
	require.NoError(t, env.DB.Where("order_id = ?", resp.OrderID).First(&detail).Error)
	require.Equal(t, 10.0, detail.Price)
}

func TestSecondCheckoutAgainstConsumedCartFails(t *testing.T) {
	env := newTestEnv(t)
	token := env.login("alice", "password")

	p := env.createProduct("keyboard", 10.0, 5)
	require.NoError(t, env.DB.Create(&models.CartItem{UserID: 1, ProductID: p.ID, Quantity: 2}).Error)

	rec := env.do(http.MethodPost, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// the cart snapshot was consumed; the second checkout must not win too
	rec = env.do(http.MethodPost, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var orders int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&orders).Error)
	require.EqualValues(t, 1, orders)
}

func TestListOrdersScopedToCaller(t *testing.T) {
	env := newTestEnv(t)
	aliceToken := env.login("alice", "password")
	env.login("bob", "password2")

	p := env.createProduct("keyboard", 10.0, 5)
	require.NoError(t, env.DB.Create(&models.Order{UserID: 1, Total: 10, Status: models.StatusPending}).Error)
	require.NoError(t, env.DB.Create(&models.Order{UserID: 2, Total: 30, Status: models.StatusPending}).Error)
	require.NoError(t, env.DB.Create(&models.OrderDetail{OrderID: 1, ProductID: p.ID, Quantity: 1, Price: 10}).Error)

	rec := env.do(http.MethodGet, "/api/v1/orders", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	orders := decodeJSON[[]models.Order](t, rec)
	require.Len(t, orders, 1)
	require.Equal(t, uint(1), orders[0].UserID)
	require.Len(t, orders[0].Details, 1)
	require.NotNil(t, orders[0].Details[0].Product)
	require.Equal(t, "keyboard", orders[0].Details[0].Product.Name)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginAdmin()

	order := models.Order{UserID: 1, Total: 10, Status: models.StatusPending}
	require.NoError(t, env.DB.Create(&order).Error)
	path := fmt.Sprintf("/api/v1/admin/orders/%d/status", order.ID)

	// skipping Shipped is rejected
	rec := env.do(http.MethodPatch, path, adminToken, map[string]string{"status": "Delivered"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown value is rejected
	rec = env.do(http.MethodPatch, path, adminToken, map[string]string{"status": "Lost"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	for _, next := range []models.OrderStatus{models.StatusShipped, models.StatusDelivered, models.StatusCompleted} {
		rec = env.do(http.MethodPatch, path, adminToken, map[string]string{"status": string(next)})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Completed is terminal
	rec = env.do(http.MethodPatch, path, adminToken, map[string]string{"status": "Pending"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderStatusRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.login("alice", "password")

	order := models.Order{UserID: 1, Total: 10, Status: models.StatusPending}
	require.NoError(t, env.DB.Create(&order).Error)

	rec := env.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/status", order.ID),
		userToken, map[string]string{"status": "Shipped"})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.loginAdmin()

	rec := env.do(http.MethodPatch, "/api/v1/admin/orders/99/status", adminToken, map[string]string{"status": "Shipped"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
