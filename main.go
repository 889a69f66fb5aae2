package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/controllers"
	"github.com/little-lemon/little-lemon-api/middleware"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/little-lemon/little-lemon-api/services"
)

func main() {
	log.Println("Starting Little Lemon API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if err := models.SeedRoles(db); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	// Image storage is optional: without a bucket the API runs fine, menu
	// item photo uploads just return 503
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		services.InitImageService(s3Service)
		log.Printf("Image storage enabled (bucket %s)", cfg.AWSS3Bucket)
	} else {
		log.Println("AWS_S3_BUCKET not set, menu item image uploads disabled")
	}

	router := gin.Default()
	router.Use(cors.Default())
	registerRoutes(router, db)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Category{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Booking{},
	)
}

// registerRoutes wires the HTTP surface. Authorization follows the role
// table: catalog reads need authentication, catalog writes and group
// management need the Manager role, carts and orders are per-caller, and
// bookings are open for create/read but authenticated for update/delete.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	auth := middleware.RequireAuth(db)
	manager := middleware.RequireRoles(models.RoleManager)

	router.GET("/health", healthCheck)

	router.POST("/auth/register", controllers.Register)
	router.POST("/auth/login", controllers.Login)
	router.GET("/auth/me", auth, controllers.Me)

	router.GET("/categories", auth, controllers.ListCategories)
	router.POST("/categories", auth, manager, controllers.CreateCategory)
	router.GET("/categories/:id", auth, manager, controllers.GetCategory)
	router.PUT("/categories/:id", auth, manager, controllers.UpdateCategory)
	router.DELETE("/categories/:id", auth, manager, controllers.DeleteCategory)

	router.GET("/menu-items", auth, controllers.ListMenuItems)
	router.POST("/menu-items", auth, manager, controllers.CreateMenuItem)
	router.GET("/menu-items/:id", auth, controllers.GetMenuItem)
	router.PUT("/menu-items/:id", auth, manager, controllers.UpdateMenuItem)
	router.PATCH("/menu-items/:id", auth, manager, controllers.PatchMenuItem)
	router.DELETE("/menu-items/:id", auth, manager, controllers.DeleteMenuItem)
	router.POST("/menu-items/:id/image", auth, manager, controllers.UploadMenuItemImage)

	router.GET("/cart/menu-items", auth, controllers.ListCartItems)
	router.POST("/cart/menu-items", auth, controllers.UpsertCartItem)
	router.DELETE("/cart/menu-items", auth, controllers.ClearCart)

	router.GET("/orders", auth, controllers.ListOrders)
	router.POST("/orders", auth, controllers.CreateOrder)
	router.GET("/orders/:id", auth, controllers.GetOrder)
	router.PUT("/orders/:id", auth, controllers.UpdateOrder)
	router.PATCH("/orders/:id", auth, controllers.UpdateOrder)
	router.DELETE("/orders/:id", auth, controllers.DeleteOrder)

	router.GET("/groups/manager/users", auth, manager, controllers.ListManagers)
	router.POST("/groups/manager/users", auth, manager, controllers.AddManager)
	router.DELETE("/groups/manager/users/:id", auth, manager, controllers.RemoveManager)
	router.GET("/groups/delivery-crew/users", auth, manager, controllers.ListDeliveryCrew)
	router.POST("/groups/delivery-crew/users", auth, manager, controllers.AddDeliveryCrew)
	router.DELETE("/groups/delivery-crew/users/:id", auth, manager, controllers.RemoveDeliveryCrew)

	router.GET("/bookings", controllers.ListBookings)
	router.POST("/bookings", controllers.CreateBooking)
	router.GET("/bookings/:id", controllers.GetBooking)
	router.PUT("/bookings/:id", auth, controllers.UpdateBooking)
	router.DELETE("/bookings/:id", auth, controllers.DeleteBooking)

	router.GET("/available-slots", controllers.GetAvailableSlots)
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Little Lemon API is running",
	})
}
