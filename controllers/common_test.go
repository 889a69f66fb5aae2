package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/middleware"
	"github.com/little-lemon/little-lemon-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Category{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Booking{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	if err := models.SeedRoles(db); err != nil {
		t.Fatalf("Failed to seed roles: %v", err)
	}

	config.SetDB(db)
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser injects an authenticated user into the context the way RequireAuth
// does, so handlers and RequireRoles behave exactly as in production
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCurrentUser(c, user)
		c.Next()
	}
}

// createUser inserts a user holding the given roles and returns it with
// roles preloaded
func createUser(t *testing.T, db *gorm.DB, username string, roleNames ...string) *models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}

	for _, name := range roleNames {
		var role models.Role
		if err := db.Where("name = ?", name).First(&role).Error; err != nil {
			t.Fatalf("Role %s not seeded: %v", name, err)
		}
		if err := db.Model(&user).Association("Roles").Append(&role); err != nil {
			t.Fatalf("Failed to attach role %s: %v", name, err)
		}
	}

	var loaded models.User
	if err := db.Preload("Roles").First(&loaded, user.ID).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	return &loaded
}

func createCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := models.Category{Name: name, Slug: slug}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return &category
}

func createMenuItem(t *testing.T, db *gorm.DB, name string, price float64, categoryID uint) *models.MenuItem {
	t.Helper()
	item := models.MenuItem{Name: name, Price: price, CategoryID: categoryID}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create menu item: %v", err)
	}
	return &item
}

// doJSON performs a JSON request against the router and decodes the response body
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	response := map[string]interface{}{}
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &response)
	}
	return w, response
}

func errorCode(response map[string]interface{}) string {
	errData, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errData["code"].(string)
	return code
}
