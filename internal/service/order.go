package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vmakarenko/storefront-api/internal/models"
	"github.com/vmakarenko/storefront-api/internal/repo"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// PlaceOrder materializes the caller's cart into an order. The cart is the
// only price source: submitted lines or prices are never accepted.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint) (*models.Order, error) {
	order, err := s.Repo.PlaceOrder(ctx, userID)
	if errors.Is(err, repo.ErrEmptyCart) {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product no longer exists", ErrValidation)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}

// UpdateStatus applies a forward-only transition within the closed status
// enumeration.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move %s order to %s", ErrValidation, order.Status, next)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	order.Status = next
	return order, nil
}
