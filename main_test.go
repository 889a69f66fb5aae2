package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/models"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", healthCheck)

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Little Lemon API is running")
}

func TestAutoMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	assert.NoError(t, autoMigrate(db))

	for _, table := range []string{
		"users", "roles", "user_roles", "categories", "menu_items",
		"cart_items", "orders", "order_items", "bookings",
	} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestRegisterRoutesProtectsManagerEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	assert.NoError(t, autoMigrate(db))
	assert.NoError(t, models.SeedRoles(db))
	config.SetDB(db)

	router := gin.New()
	registerRoutes(router, db)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"catalog write", http.MethodPost, "/menu-items"},
		{"cart read", http.MethodGet, "/cart/menu-items"},
		{"order read", http.MethodGet, "/orders"},
		{"group management", http.MethodGet, "/groups/manager/users"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" requires authentication", func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	t.Run("booking creation stays open", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/bookings", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("slot availability stays open", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/available-slots", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
