package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/models"
)

// BookingRequest represents the request body for creating or updating a booking
type BookingRequest struct {
	FirstName       string `json:"first_name" binding:"required"`
	ReservationDate string `json:"reservation_date" binding:"required"`
	ReservationSlot int    `json:"reservation_slot" binding:"required"`
}

// ListBookings handles GET /bookings with an optional date filter.
// An unparseable date filter yields an empty list rather than an error.
func ListBookings(c *gin.Context) {
	db := config.GetDB()

	bookings := []models.Booking{}
	query := db.Order("reservation_date, reservation_slot")

	if dateParam := c.Query("date"); dateParam != "" {
		if _, err := time.Parse(models.DateLayout, dateParam); err != nil {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"data":    bookings,
			})
			return
		}
		query = query.Where("reservation_date = ?", dateParam)
	}

	if err := query.Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list bookings",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookings,
	})
}

// CreateBooking handles POST /bookings - open to anonymous callers.
// The (date, slot) unique index is the final arbiter: when two bookings race
// for the same slot, exactly one insert succeeds and the loser surfaces here
// as a slot conflict.
func CreateBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "first_name, reservation_date and reservation_slot are required",
				"details": err.Error(),
			},
		})
		return
	}

	if _, err := time.Parse(models.DateLayout, req.ReservationDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid date format. Use YYYY-MM-DD.",
			},
		})
		return
	}

	if !models.ValidSlot(req.ReservationSlot) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown reservation slot",
			},
		})
		return
	}

	booking := models.Booking{
		FirstName:       req.FirstName,
		ReservationDate: req.ReservationDate,
		ReservationSlot: req.ReservationSlot,
	}

	db := config.GetDB()
	if err := db.Create(&booking).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SLOT_ALREADY_BOOKED",
					"message": "This time slot is already booked. Please choose another time.",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create booking",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    booking,
	})
}

// GetBooking handles GET /bookings/:id - open read
func GetBooking(c *gin.Context) {
	db := config.GetDB()

	var booking models.Booking
	if err := db.First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Booking not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

// UpdateBooking handles PUT /bookings/:id (authenticated).
// Changing the date or slot re-validates slot exclusivity.
func UpdateBooking(c *gin.Context) {
	db := config.GetDB()

	var booking models.Booking
	if err := db.First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Booking not found",
			},
		})
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "first_name, reservation_date and reservation_slot are required",
				"details": err.Error(),
			},
		})
		return
	}

	if _, err := time.Parse(models.DateLayout, req.ReservationDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid date format. Use YYYY-MM-DD.",
			},
		})
		return
	}

	if !models.ValidSlot(req.ReservationSlot) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown reservation slot",
			},
		})
		return
	}

	booking.FirstName = req.FirstName
	booking.ReservationDate = req.ReservationDate
	booking.ReservationSlot = req.ReservationSlot

	if err := db.Save(&booking).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SLOT_ALREADY_BOOKED",
					"message": "This time slot is already booked. Please choose another time.",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update booking",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
	})
}

// DeleteBooking handles DELETE /bookings/:id (authenticated)
func DeleteBooking(c *gin.Context) {
	db := config.GetDB()

	var booking models.Booking
	if err := db.First(&booking, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Booking not found",
			},
		})
		return
	}

	if err := db.Delete(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete booking",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAvailableSlots handles GET /available-slots?date=YYYY-MM-DD.
// Defaults to today when no date is given; a malformed date is a 400.
func GetAvailableSlots(c *gin.Context) {
	dateParam := c.Query("date")
	if dateParam == "" {
		dateParam = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, dateParam); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid date format. Use YYYY-MM-DD.",
			},
		})
		return
	}

	db := config.GetDB()
	slots, err := models.AvailableSlots(db, dateParam)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load slot availability",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"date":            dateParam,
			"available_slots": slots,
		},
	})
}
