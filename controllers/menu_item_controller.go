package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/little-lemon/little-lemon-api/services"
)

// MenuItemRequest represents the request body for creating or replacing a menu item
type MenuItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Description string   `json:"description"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	IsFeatured  bool     `json:"is_featured"`
}

// MenuItemPatchRequest represents the request body for partially updating a menu item
type MenuItemPatchRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Description *string  `json:"description"`
	CategoryID  *uint    `json:"category_id"`
	IsFeatured  *bool    `json:"is_featured"`
}

// ListMenuItems handles GET /menu-items with optional category and featured filters
func ListMenuItems(c *gin.Context) {
	db := config.GetDB()

	query := db.Preload("Category").Joins("JOIN categories ON categories.id = menu_items.category_id")

	if category := c.Query("category"); category != "" {
		// Case-insensitive exact match on the category name
		query = query.Where("LOWER(categories.name) = ?", strings.ToLower(category))
	}
	if featured := c.Query("featured"); strings.EqualFold(featured, "true") {
		query = query.Where("menu_items.is_featured = ?", true)
	}

	var items []models.MenuItem
	if err := query.Order("menu_items.id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list menu items",
			},
		})
		return
	}

	for i := range items {
		attachImageURL(&items[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// CreateMenuItem handles POST /menu-items (managers only)
func CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid menu item data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var category models.Category
	if err := db.First(&category, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Category does not exist",
			},
		})
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Price:       *req.Price,
		Description: req.Description,
		CategoryID:  category.ID,
		IsFeatured:  req.IsFeatured,
	}

	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create menu item",
			},
		})
		return
	}

	item.Category = category
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// GetMenuItem handles GET /menu-items/:id
func GetMenuItem(c *gin.Context) {
	db := config.GetDB()

	var item models.MenuItem
	if err := db.Preload("Category").First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Menu item not found",
			},
		})
		return
	}

	attachImageURL(&item)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateMenuItem handles PUT /menu-items/:id (managers only)
func UpdateMenuItem(c *gin.Context) {
	db := config.GetDB()

	var item models.MenuItem
	if err := db.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Menu item not found",
			},
		})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid menu item data",
				"details": err.Error(),
			},
		})
		return
	}

	var category models.Category
	if err := db.First(&category, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Category does not exist",
			},
		})
		return
	}

	item.Name = req.Name
	item.Price = *req.Price
	item.Description = req.Description
	item.CategoryID = category.ID
	item.IsFeatured = req.IsFeatured

	if err := db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update menu item",
			},
		})
		return
	}

	item.Category = category
	attachImageURL(&item)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// PatchMenuItem handles PATCH /menu-items/:id (managers only)
func PatchMenuItem(c *gin.Context) {
	db := config.GetDB()

	var item models.MenuItem
	if err := db.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Menu item not found",
			},
		})
		return
	}

	var req MenuItemPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid menu item data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := db.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Category does not exist",
				},
			})
			return
		}
		item.CategoryID = category.ID
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}

	if err := db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update menu item",
			},
		})
		return
	}

	if err := db.Preload("Category").First(&item, item.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load menu item",
			},
		})
		return
	}

	attachImageURL(&item)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// DeleteMenuItem handles DELETE /menu-items/:id (managers only).
// Deletion is blocked while cart lines or order items still reference the
// item, so order history keeps valid snapshots.
func DeleteMenuItem(c *gin.Context) {
	db := config.GetDB()

	var item models.MenuItem
	if err := db.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Menu item not found",
			},
		})
		return
	}

	var cartRefs, orderRefs int64
	if err := db.Model(&models.CartItem{}).Where("menu_item_id = ?", item.ID).Count(&cartRefs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check menu item references",
			},
		})
		return
	}
	if err := db.Model(&models.OrderItem{}).Where("menu_item_id = ?", item.ID).Count(&orderRefs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check menu item references",
			},
		})
		return
	}
	if cartRefs > 0 || orderRefs > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": "Menu item is referenced by carts or orders and cannot be deleted",
			},
		})
		return
	}

	// Remove the stored photo alongside the item; a failure here is logged
	// by the image service but does not block the delete
	if item.ImageS3Key != nil && *item.ImageS3Key != "" {
		if imageService := services.GetImageService(); imageService != nil {
			_ = imageService.DeleteImage(*item.ImageS3Key)
		}
	}

	if err := db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete menu item",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadMenuItemImage handles POST /menu-items/:id/image (managers only).
// Accepts a multipart "image" field, stores it in S3, and replaces any
// previous photo for the item.
func UploadMenuItemImage(c *gin.Context) {
	db := config.GetDB()

	var item models.MenuItem
	if err := db.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Menu item not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "An image file is required",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE",
				"message": err.Error(),
			},
		})
		return
	}

	oldKey := item.ImageS3Key
	item.ImageS3Key = &imageKey
	if err := db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save menu item image",
			},
		})
		return
	}

	if oldKey != nil && *oldKey != "" && *oldKey != imageKey {
		_ = imageService.DeleteImage(*oldKey)
	}

	attachImageURL(&item)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}
