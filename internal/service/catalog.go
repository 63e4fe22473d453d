package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vmakarenko/storefront-api/internal/models"
	"github.com/vmakarenko/storefront-api/internal/repo"
	"github.com/vmakarenko/storefront-api/internal/util"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       uint
	ImageURL    string
}

func (in ProductInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return p, err
}

func (s *CatalogService) GetProducts(ctx context.Context, page, size int) (int64, []models.Product, int, error) {
	offset, limit := util.Calculate(page, size)
	total, items, err := s.Repo.GetProducts(ctx, offset, limit)
	return total, items, limit, err
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	prod := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

// UpdateProduct replaces the row's fields; an empty ImageURL keeps the
// stored image.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	prod.Name = in.Name
	prod.Description = in.Description
	prod.Price = in.Price
	prod.Stock = in.Stock
	if in.ImageURL != "" {
		prod.ImageURL = in.ImageURL
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return err
}
