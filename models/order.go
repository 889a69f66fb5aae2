package models

import (
	"time"
)

// Order status values. An order moves pending → processing → delivered,
// or is cancelled.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is one of the defined status values
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an immutable snapshot of a checked-out cart. Items never change
// after creation except through AddOrderItem, which re-derives the total.
type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	User           User        `gorm:"foreignKey:UserID" json:"user"`
	DeliveryCrewID *uint       `gorm:"index" json:"delivery_crew_id"`
	DeliveryCrew   *User       `gorm:"foreignKey:DeliveryCrewID" json:"delivery_crew,omitempty"`
	Status         string      `gorm:"not null;default:'pending'" json:"status"`
	Total          float64     `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	Items          []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order, copied from a cart line at checkout.
// UnitPrice and Price are snapshots, immune to later menu price changes.
type OrderItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	OrderID    uint     `gorm:"not null;uniqueIndex:idx_order_menu_item" json:"-"`
	MenuItemID uint     `gorm:"not null;uniqueIndex:idx_order_menu_item" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item"`
	Quantity   int      `gorm:"not null" json:"quantity"`
	UnitPrice  float64  `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      float64  `gorm:"type:decimal(6,2);not null" json:"price"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
