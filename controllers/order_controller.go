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

// OrderUpdateRequest represents the request body for updating an order
type OrderUpdateRequest struct {
	Status         *string `json:"status"`
	DeliveryCrewID *uint   `json:"delivery_crew_id"`
}

// orderScope narrows an order query to what the user may see: managers see
// everything, delivery crew see assigned orders, customers see their own.
// Reads outside the scope come back as not-found, never as forbidden.
func orderScope(db *gorm.DB, user *models.User) *gorm.DB {
	switch {
	case user.HasRole(models.RoleManager):
		return db
	case user.HasRole(models.RoleDeliveryCrew):
		return db.Where("delivery_crew_id = ?", user.ID)
	default:
		return db.Where("user_id = ?", user.ID)
	}
}

// ListOrders handles GET /orders - role-scoped listing
func ListOrders(c *gin.Context) {
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
	var orders []models.Order
	err = orderScope(db, user).
		Preload("User").Preload("DeliveryCrew").
		Preload("Items").Preload("Items.MenuItem").
		Order("id").Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// CreateOrder handles POST /orders - checks out the caller's cart
func CreateOrder(c *gin.Context) {
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
	order, err := services.Checkout(db, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMPTY_CART",
					"message": "Your cart is empty",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	if err := db.Preload("User").Preload("Items").Preload("Items.MenuItem").
		First(order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrder handles GET /orders/:id - role-scoped read
func GetOrder(c *gin.Context) {
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
	var order models.Order
	err = orderScope(db, user).
		Preload("User").Preload("DeliveryCrew").
		Preload("Items").Preload("Items.MenuItem").
		First(&order, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PUT and PATCH /orders/:id.
// Managers may change status and delivery crew assignment. Delivery crew may
// change only the status of orders assigned to them; any other submitted
// field is silently ignored. Customers may not mutate orders at all.
func UpdateOrder(c *gin.Context) {
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

	isManager := user.HasRole(models.RoleManager)
	isCrew := user.HasRole(models.RoleDeliveryCrew)
	if !isManager && !isCrew {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Orders cannot be modified after creation",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := orderScope(db, user).First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	var req OrderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order data",
				"details": err.Error(),
			},
		})
		return
	}

	if req.Status != nil {
		if !models.ValidOrderStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown order status",
				},
			})
			return
		}
		order.Status = *req.Status
	}

	// Only managers may reassign delivery crew; for crew callers the field
	// is dropped without error
	if req.DeliveryCrewID != nil && isManager {
		var crew models.User
		if err := db.Preload("Roles").First(&crew, *req.DeliveryCrewID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Delivery crew user does not exist",
				},
			})
			return
		}
		if !crew.HasRole(models.RoleDeliveryCrew) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "User is not a delivery crew member",
				},
			})
			return
		}
		order.DeliveryCrewID = &crew.ID
	}

	if err := db.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	if err := db.Preload("User").Preload("DeliveryCrew").
		Preload("Items").Preload("Items.MenuItem").
		First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrder handles DELETE /orders/:id (managers only)
func DeleteOrder(c *gin.Context) {
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

	if !user.HasRole(models.RoleManager) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only managers can delete orders",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete order",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
