package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vmakarenko/storefront-api/internal/cache"
	"github.com/vmakarenko/storefront-api/internal/repo"
	"github.com/vmakarenko/storefront-api/internal/transport"
)

const bestSellingLimit = 5

// AnalyticsService serves dashboard reads. Results go through a short-TTL
// redis cache since none of these queries are transactional.
type AnalyticsService struct {
	Repo  *repo.GormRepo
	Cache *cache.Cache
}

func (s *AnalyticsService) Summary(ctx context.Context) (*transport.DashboardSummary, error) {
	var out transport.DashboardSummary
	if s.Cache.GetJSON(ctx, cache.KeySummary, &out) {
		return &out, nil
	}

	summary, err := s.Repo.DashboardSummary(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.SetJSON(ctx, cache.KeySummary, summary)
	return summary, nil
}

func (s *AnalyticsService) BestSellingProducts(ctx context.Context) ([]transport.BestSellingProduct, error) {
	var out []transport.BestSellingProduct
	if s.Cache.GetJSON(ctx, cache.KeyBestSelling, &out) {
		return out, nil
	}

	out, err := s.Repo.BestSellingProducts(ctx, bestSellingLimit)
	if err != nil {
		return nil, err
	}
	s.Cache.SetJSON(ctx, cache.KeyBestSelling, out)
	return out, nil
}

func (s *AnalyticsService) SalesReport(ctx context.Context, startDate, endDate string) ([]transport.SalesReportBucket, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate", ErrValidation)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate", ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endDate before startDate", ErrValidation)
	}

	key := fmt.Sprintf(cache.KeySalesReport, startDate, endDate)
	var out []transport.SalesReportBucket
	if s.Cache.GetJSON(ctx, key, &out) {
		return out, nil
	}

	out, err = s.Repo.SalesReport(ctx, start, end)
	if err != nil {
		return nil, err
	}
	s.Cache.SetJSON(ctx, key, out)
	return out, nil
}

func (s *AnalyticsService) UserStatistics(ctx context.Context) ([]transport.UserStatsBucket, error) {
	var out []transport.UserStatsBucket
	if s.Cache.GetJSON(ctx, cache.KeyUserStats, &out) {
		return out, nil
	}

	out, err := s.Repo.UserStatistics(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.SetJSON(ctx, cache.KeyUserStats, out)
	return out, nil
}

func (s *AnalyticsService) OrderStatusDistribution(ctx context.Context) ([]transport.OrderStatusCount, error) {
	var out []transport.OrderStatusCount
	if s.Cache.GetJSON(ctx, cache.KeyOrderStatus, &out) {
		return out, nil
	}

	out, err := s.Repo.OrderStatusDistribution(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.SetJSON(ctx, cache.KeyOrderStatus, out)
	return out, nil
}
