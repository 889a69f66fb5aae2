package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/little-lemon/little-lemon-api/middleware"
	"github.com/little-lemon/little-lemon-api/models"
)

func TestManagerGroupMembership(t *testing.T) {
	db := setupTestDB(t)
	manager := createUser(t, db, "manny", models.RoleManager)
	alice := createUser(t, db, "alice", models.RoleCustomer)

	router := setupTestRouter()
	router.GET("/groups/manager/users", asUser(manager), ListManagers)
	router.POST("/groups/manager/users", asUser(manager), AddManager)
	router.DELETE("/groups/manager/users/:id", asUser(manager), RemoveManager)

	t.Run("Initial listing shows the seeded manager", func(t *testing.T) {
		w, response := doJSON(t, router, http.MethodGet, "/groups/manager/users", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, response["data"].([]interface{}), 1)
	})

	t.Run("Promote a customer to manager", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPost, "/groups/manager/users",
			map[string]interface{}{"username": "alice"})
		assert.Equal(t, http.StatusCreated, w.Code)

		var loaded models.User
		assert.NoError(t, db.Preload("Roles").First(&loaded, alice.ID).Error)
		assert.True(t, loaded.HasRole(models.RoleManager))
		assert.True(t, loaded.HasRole(models.RoleCustomer), "Promotion adds a role, it does not replace one")
	})

	t.Run("Unknown username is 404", func(t *testing.T) {
		w, response := doJSON(t, router, http.MethodPost, "/groups/manager/users",
			map[string]interface{}{"username": "ghost"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(response))
	})

	t.Run("Demote removes only the manager role", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/groups/manager/users/%d", alice.ID), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		var loaded models.User
		assert.NoError(t, db.Preload("Roles").First(&loaded, alice.ID).Error)
		assert.False(t, loaded.HasRole(models.RoleManager))
		assert.True(t, loaded.HasRole(models.RoleCustomer))
	})

	t.Run("Demoting a non-member is 404", func(t *testing.T) {
		w, response := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/groups/manager/users/%d", alice.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorCode(response))
	})
}

func TestDeliveryCrewGroupMembership(t *testing.T) {
	db := setupTestDB(t)
	manager := createUser(t, db, "manny", models.RoleManager)
	carla := createUser(t, db, "carla", models.RoleCustomer)

	router := setupTestRouter()
	router.GET("/groups/delivery-crew/users", asUser(manager), ListDeliveryCrew)
	router.POST("/groups/delivery-crew/users", asUser(manager), AddDeliveryCrew)
	router.DELETE("/groups/delivery-crew/users/:id", asUser(manager), RemoveDeliveryCrew)

	w, _ := doJSON(t, router, http.MethodPost, "/groups/delivery-crew/users",
		map[string]interface{}{"username": "carla"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, response := doJSON(t, router, http.MethodGet, "/groups/delivery-crew/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	members := response["data"].([]interface{})
	assert.Len(t, members, 1)
	assert.Equal(t, "carla", members[0].(map[string]interface{})["username"])

	w, _ = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/groups/delivery-crew/users/%d", carla.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, response = doJSON(t, router, http.MethodGet, "/groups/delivery-crew/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 0)
}

func TestGroupEndpointsRequireManager(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice", models.RoleCustomer)

	router := setupTestRouter()
	router.GET("/groups/manager/users", asUser(alice), middleware.RequireRoles(models.RoleManager), ListManagers)

	w, response := doJSON(t, router, http.MethodGet, "/groups/manager/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(response))
}
