package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/little-lemon/little-lemon-api/models"
)

// ErrEmptyCart is returned when a checkout is attempted with no cart items
var ErrEmptyCart = errors.New("cart is empty")

// Checkout converts the user's cart into a new pending order. The whole
// sequence — read cart, create order, snapshot items, clear cart — runs in
// one transaction so a failure at any step leaves no partial order behind.
func Checkout(db *gorm.DB, userID uint) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		order = models.Order{
			UserID: userID,
			Status: models.OrderStatusPending,
			Total:  CartTotal(cartItems),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: item.MenuItemID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				Price:      item.Price,
			})
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// AddOrderItem appends a menu item to an existing order, snapshotting the
// current menu price, and re-derives the order total from all items.
func AddOrderItem(db *gorm.DB, orderID, menuItemID uint, quantity int) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}

		var menuItem models.MenuItem
		if err := tx.First(&menuItem, menuItemID).Error; err != nil {
			return err
		}

		item := models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: menuItem.ID,
			Quantity:   quantity,
			UnitPrice:  menuItem.Price,
			Price:      LinePrice(menuItem.Price, quantity),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		return RecomputeTotal(tx, &order)
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// RecomputeTotal re-derives the order total from its current items and
// persists it
func RecomputeTotal(tx *gorm.DB, order *models.Order) error {
	var items []models.OrderItem
	if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return err
	}

	order.Total = OrderTotal(items)
	return tx.Model(order).Update("total", order.Total).Error
}
