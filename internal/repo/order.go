package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vmakarenko/storefront-api/internal/models"
)

// PlaceOrder runs the whole checkout in one transaction: lock and read the
// user's cart rows, price them against the live catalog, write the order
// with its details, then delete the consumed cart rows. A concurrent
// checkout for the same user blocks on the row locks and finds the cart
// empty once the first transaction commits.
func (r *GormRepo) PlaceOrder(ctx context.Context, userID uint) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ?", userID)
		if tx.Dialector.Name() == "postgres" {
			// sqlite has no row locks; its writes are serialized anyway.
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var items []models.CartItem
		if err := q.Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var total float64
		details := make([]models.OrderDetail, 0, len(items))
		for _, it := range items {
			var p models.Product
			if err := tx.First(&p, it.ProductID).Error; err != nil {
				return err
			}
			total += p.Price * float64(it.Quantity)
			details = append(details, models.OrderDetail{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     p.Price,
			})
		}

		order = models.Order{
			UserID: userID,
			Total:  total,
			Status: models.StatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range details {
			details[i].OrderID = order.ID
		}
		if err := tx.Create(&details).Error; err != nil {
			return err
		}
		order.Details = details

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Details").
		Preload("Details.Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Details").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Update("status", status).Error
}
