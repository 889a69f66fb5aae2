package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/models"
)

// CategoryRequest represents the request body for creating or updating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

// ListCategories handles GET /categories
func ListCategories(c *gin.Context) {
	db := config.GetDB()

	var categories []models.Category
	if err := db.Order("id").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// CreateCategory handles POST /categories (managers only)
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name and slug are required",
				"details": err.Error(),
			},
		})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}

	db := config.GetDB()
	if err := db.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "A category with this name or slug already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// GetCategory handles GET /categories/:id
func GetCategory(c *gin.Context) {
	db := config.GetDB()

	var category models.Category
	if err := db.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Category not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// UpdateCategory handles PUT /categories/:id (managers only)
func UpdateCategory(c *gin.Context) {
	db := config.GetDB()

	var category models.Category
	if err := db.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Category not found",
			},
		})
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name and slug are required",
				"details": err.Error(),
			},
		})
		return
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.Description = req.Description

	if err := db.Save(&category).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CONFLICT",
					"message": "A category with this name or slug already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update category",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// DeleteCategory handles DELETE /categories/:id (managers only).
// Deletion is blocked while any menu item still references the category.
func DeleteCategory(c *gin.Context) {
	db := config.GetDB()

	var category models.Category
	if err := db.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Category not found",
			},
		})
		return
	}

	var refs int64
	if err := db.Model(&models.MenuItem{}).Where("category_id = ?", category.ID).Count(&refs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check category references",
			},
		})
		return
	}
	if refs > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": "Category is referenced by menu items and cannot be deleted",
			},
		})
		return
	}

	if err := db.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete category",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
