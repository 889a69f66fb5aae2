package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/middleware"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/little-lemon/little-lemon-api/services"
)

// CartItemRequest represents the request body for adding an item to the cart
type CartItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// ListCartItems handles GET /cart/menu-items - returns the caller's cart
func ListCartItems(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			},
		})
		return
	}

	db := config.GetDB()
	var items []models.CartItem
	if err := db.Preload("MenuItem").Preload("MenuItem.Category").
		Where("user_id = ?", user.ID).Order("id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list cart items",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"items": items,
			"total": services.CartTotal(items),
		},
	})
}

// UpsertCartItem handles POST /cart/menu-items - creates or replaces the
// single cart line for (caller, menu item). The unit price is always re-read
// from the current menu item price; the line price is recomputed from it.
func UpsertCartItem(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			},
		})
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "menu_item_id and quantity are required",
				"details": err.Error(),
			},
		})
		return
	}

	if req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Quantity must be at least 1",
			},
		})
		return
	}

	db := config.GetDB()
	var menuItem models.MenuItem
	if err := db.First(&menuItem, req.MenuItemID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Menu item does not exist",
			},
		})
		return
	}

	var item models.CartItem
	err = db.Where("user_id = ? AND menu_item_id = ?", user.ID, menuItem.ID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity = req.Quantity
		item.UnitPrice = menuItem.Price
		item.Price = services.LinePrice(menuItem.Price, req.Quantity)
		err = db.Save(&item).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			UserID:     user.ID,
			MenuItemID: menuItem.ID,
			Quantity:   req.Quantity,
			UnitPrice:  menuItem.Price,
			Price:      services.LinePrice(menuItem.Price, req.Quantity),
		}
		err = db.Create(&item).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save cart item",
			},
		})
		return
	}

	item.MenuItem = menuItem
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// ClearCart handles DELETE /cart/menu-items - removes all of the caller's cart lines
func ClearCart(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			},
		})
		return
	}

	db := config.GetDB()
	if err := db.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to clear cart",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
