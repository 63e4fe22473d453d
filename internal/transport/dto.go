package transport

import (
	"time"

	"github.com/vmakarenko/storefront-api/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IsAdmin      bool   `json:"is_admin"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type OrderResponse struct {
	OrderID uint                 `json:"order_id"`
	Total   float64              `json:"total"`
	Status  models.OrderStatus   `json:"status"`
	Details []models.OrderDetail `json:"details"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type ProductPage struct {
	Data []models.Product `json:"data"`
	Meta PageMeta         `json:"meta"`
}

type DashboardSummary struct {
	TotalUsers      int64   `json:"total_users"`
	TotalOrders     int64   `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingOrders   int64   `json:"pending_orders"`
	CompletedOrders int64   `json:"completed_orders"`
}

type BestSellingProduct struct {
	ProductID             uint    `json:"product_id"`
	ProductName           string  `json:"product_name"`
	TotalQuantitySold     uint    `json:"total_quantity_sold"`
	TotalRevenueGenerated float64 `json:"total_revenue_generated"`
}

type SalesReportBucket struct {
	Date         string  `json:"date"`
	TotalOrders  int     `json:"total_orders"`
	TotalRevenue float64 `json:"total_revenue"`
}

type UserStatsBucket struct {
	Date     string `json:"date"`
	NewUsers int    `json:"new_users"`
}

type OrderStatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

type ProductEvent struct {
	Type      string          `json:"type"`
	ProductID uint            `json:"productID"`
	Product   *models.Product `json:"product,omitempty"`
	At        time.Time       `json:"at"`
}
