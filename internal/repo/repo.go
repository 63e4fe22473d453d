package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrEmptyCart is returned by PlaceOrder when the locked cart has no rows.
var ErrEmptyCart = errors.New("cart is empty")

type GormRepo struct {
	DB *gorm.DB
}
