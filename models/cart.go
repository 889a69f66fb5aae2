package models

// CartItem is a single line in a user's cart: one row per (user, menu item).
// UnitPrice is a snapshot of the menu item price at the time the line was
// written and Price is always UnitPrice × Quantity, recomputed on every write.
type CartItem struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	UserID     uint     `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"-"`
	MenuItemID uint     `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item"`
	Quantity   int      `gorm:"not null" json:"quantity"`
	UnitPrice  float64  `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      float64  `gorm:"type:decimal(6,2);not null" json:"price"`
}

// TableName specifies the table name for the CartItem model
func (CartItem) TableName() string {
	return "cart_items"
}
