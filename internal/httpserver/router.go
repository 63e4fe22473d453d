package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/vmakarenko/storefront-api/internal/middleware/auth"
)

type Deps struct {
	AuthHandler      *AuthHTTP
	CartHandler      *CartHTTP
	OrderHandler     *OrderHTTP
	CatalogHandler   *CatalogHTTP
	AnalyticsHandler *AnalyticsHTTP
	SearchHandler    *SearchHTTP
	JWTSecret        []byte
	UploadDir        string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	mw := authmw.New(d.JWTSecret)

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/refresh", d.AuthHandler.Refresh)
	v1.POST("/logout", d.AuthHandler.Logout)

	products := v1.Group("/products")
	if d.SearchHandler != nil {
		products.GET("/search", d.SearchHandler.SearchProducts)
	}
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct, mw.RequireAdmin)
	products.PUT("/:id", d.CatalogHandler.UpdateProduct, mw.RequireAdmin)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct, mw.RequireAdmin)

	cart := v1.Group("/cart", mw.RequireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)

	orders := v1.Group("/orders", mw.RequireLogin)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.POST("", d.OrderHandler.PlaceOrder)

	admin := v1.Group("/admin", mw.RequireAdmin)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)

	analytics := admin.Group("/analytics")
	analytics.GET("/summary", d.AnalyticsHandler.Summary)
	analytics.GET("/best-selling-products", d.AnalyticsHandler.BestSellingProducts)
	analytics.GET("/sales-report", d.AnalyticsHandler.SalesReport)
	analytics.GET("/user-statistics", d.AnalyticsHandler.UserStatistics)
	analytics.GET("/order-status", d.AnalyticsHandler.OrderStatusDistribution)
}
