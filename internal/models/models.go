package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null"                 json:"role"`
	CreatedAt    time.Time `gorm:"not null"                 json:"created_at"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"          json:"id"`
	Token     string    `gorm:"unique;not null"     json:"token"`
	UserID    uint      `gorm:"index;not null"      json:"user_id"`
	Role      string    `gorm:"not null"            json:"role"`
	ExpiresAt time.Time `gorm:"not null"            json:"expires_at"`
	Revoked   bool      `gorm:"default:false"       json:"revoked"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"not null"                  json:"name"`
	Description string  `gorm:"not null"                  json:"description"`
	Price       float64 `gorm:"not null"                  json:"price"`
	ImageURL    string  `json:"image_url"`
	Stock       uint    `json:"stock"`
}

// One row per (user, product); repeated adds bump the quantity.
type CartItem struct {
	ID        uint     `gorm:"primaryKey"                                json:"id"`
	UserID    uint     `gorm:"index;not null;uniqueIndex:idx_user_prod"  json:"user_id"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_user_prod"        json:"product_id"`
	Quantity  uint     `gorm:"not null;check:quantity>0"                 json:"quantity"`
	Product   *Product `gorm:"foreignKey:ProductID"                      json:"product,omitempty"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCompleted OrderStatus = "Completed"
)

// nextStatuses holds the allowed forward transitions. Completed is terminal.
var nextStatuses = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusShipped},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {StatusCompleted},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCompleted:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range nextStatuses[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID        uint          `gorm:"primaryKey"         json:"id"`
	UserID    uint          `gorm:"index;not null"     json:"user_id"`
	CreatedAt time.Time     `gorm:"not null"           json:"created_at"`
	Total     float64       `gorm:"not null"           json:"total"`
	Status    OrderStatus   `gorm:"not null"           json:"status"`
	Details   []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"`
}

// OrderDetail keeps the unit price at purchase time so old orders stay
// stable when the catalog price changes.
type OrderDetail struct {
	ID        uint     `gorm:"primaryKey"           json:"id"`
	OrderID   uint     `gorm:"index;not null"       json:"order_id"`
	ProductID uint     `gorm:"not null"             json:"product_id"`
	Quantity  uint     `gorm:"not null"             json:"quantity"`
	Price     float64  `gorm:"not null"             json:"price"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
