package repo

import (
	"context"
	"sort"
	"time"

	"github.com/vmakarenko/storefront-api/internal/models"
	"github.com/vmakarenko/storefront-api/internal/transport"
)

func (r *GormRepo) DashboardSummary(ctx context.Context) (*transport.DashboardSummary, error) {
	db := r.DB.WithContext(ctx)
	var out transport.DashboardSummary

	if err := db.Model(&models.User{}).Count(&out.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Count(&out.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Select("COALESCE(SUM(total), 0)").Scan(&out.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Where("status = ?", models.StatusPending).Count(&out.PendingOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Where("status = ?", models.StatusCompleted).Count(&out.CompletedOrders).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GormRepo) BestSellingProducts(ctx context.Context, limit int) ([]transport.BestSellingProduct, error) {
	var out []transport.BestSellingProduct
	err := r.DB.WithContext(ctx).
		Model(&models.OrderDetail{}).
		Select("order_details.product_id AS product_id, products.name AS product_name, SUM(order_details.quantity) AS total_quantity_sold, SUM(order_details.price * order_details.quantity) AS total_revenue_generated").
		Joins("JOIN products ON products.id = order_details.product_id").
		Group("order_details.product_id, products.name").
		Order("total_quantity_sold DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SalesReport buckets orders per calendar day. Day bucketing happens here
// rather than in SQL so the same query runs on postgres and sqlite.
func (r *GormRepo) SalesReport(ctx context.Context, start, end time.Time) ([]transport.SalesReportBucket, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end.Add(24*time.Hour)).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*transport.SalesReportBucket)
	for _, o := range orders {
		day := o.CreatedAt.UTC().Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &transport.SalesReportBucket{Date: day}
			buckets[day] = b
		}
		b.TotalOrders++
		b.TotalRevenue += o.Total
	}
	return sortedByDate(buckets), nil
}

func (r *GormRepo) UserStatistics(ctx context.Context) ([]transport.UserStatsBucket, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]int)
	for _, u := range users {
		byDay[u.CreatedAt.UTC().Format("2006-01-02")]++
	}

	out := make([]transport.UserStatsBucket, 0, len(byDay))
	for day, n := range byDay {
		out = append(out, transport.UserStatsBucket{Date: day, NewUsers: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *GormRepo) OrderStatusDistribution(ctx context.Context) ([]transport.OrderStatusCount, error) {
	var out []transport.OrderStatusCount
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func sortedByDate(buckets map[string]*transport.SalesReportBucket) []transport.SalesReportBucket {
	out := make([]transport.SalesReportBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
