package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/models"
)

// GroupMemberRequest represents the request body for adding a user to a role group
type GroupMemberRequest struct {
	Username string `json:"username" binding:"required"`
}

// ListManagers handles GET /groups/manager/users
func ListManagers(c *gin.Context) {
	listGroupMembers(c, models.RoleManager)
}

// AddManager handles POST /groups/manager/users
func AddManager(c *gin.Context) {
	addGroupMember(c, models.RoleManager)
}

// RemoveManager handles DELETE /groups/manager/users/:id
func RemoveManager(c *gin.Context) {
	removeGroupMember(c, models.RoleManager)
}

// ListDeliveryCrew handles GET /groups/delivery-crew/users
func ListDeliveryCrew(c *gin.Context) {
	listGroupMembers(c, models.RoleDeliveryCrew)
}

// AddDeliveryCrew handles POST /groups/delivery-crew/users
func AddDeliveryCrew(c *gin.Context) {
	addGroupMember(c, models.RoleDeliveryCrew)
}

// RemoveDeliveryCrew handles DELETE /groups/delivery-crew/users/:id
func RemoveDeliveryCrew(c *gin.Context) {
	removeGroupMember(c, models.RoleDeliveryCrew)
}

func listGroupMembers(c *gin.Context, roleName string) {
	db := config.GetDB()

	var users []models.User
	err := db.Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ?", roleName).
		Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list group members",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

func addGroupMember(c *gin.Context, roleName string) {
	var req GroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Username is required",
			},
		})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "User not found",
			},
		})
		return
	}

	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Role not found",
			},
		})
		return
	}

	if err := db.Model(&user).Association("Roles").Append(&role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to add user to group",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

func removeGroupMember(c *gin.Context, roleName string) {
	db := config.GetDB()

	var user models.User
	if err := db.Preload("Roles").First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "User not found",
			},
		})
		return
	}

	// Removing a user who is not in the group is a 404, matching the
	// role-scoped listing
	if !user.HasRole(roleName) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "User is not a member of this group",
			},
		})
		return
	}

	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Role not found",
			},
		})
		return
	}

	if err := db.Model(&user).Association("Roles").Delete(&role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to remove user from group",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
