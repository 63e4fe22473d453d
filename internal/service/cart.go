package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vmakarenko/storefront-api/internal/models"
	"github.com/vmakarenko/storefront-api/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  uint(quantity),
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID uint) error {
	if itemID == 0 {
		return fmt.Errorf("%w: id required", ErrValidation)
	}
	err := s.Repo.DeleteFromCart(ctx, itemID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
	}
	return err
}
