package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/little-lemon/little-lemon-api/models"
)

func TestCreateBooking(t *testing.T) {
	db := setupTestDB(t)

	router := setupTestRouter()
	router.POST("/bookings", CreateBooking)

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Valid booking",
			body:           map[string]interface{}{"first_name": "Tilly", "reservation_date": "2024-06-01", "reservation_slot": 12},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Same slot on same date conflicts",
			body:           map[string]interface{}{"first_name": "Mario", "reservation_date": "2024-06-01", "reservation_slot": 12},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "SLOT_ALREADY_BOOKED",
		},
		{
			name:           "Same slot on another date is fine",
			body:           map[string]interface{}{"first_name": "Mario", "reservation_date": "2024-06-02", "reservation_slot": 12},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Another slot on same date is fine",
			body:           map[string]interface{}{"first_name": "Mario", "reservation_date": "2024-06-01", "reservation_slot": 13},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Malformed date rejected",
			body:           map[string]interface{}{"first_name": "Adrian", "reservation_date": "01/06/2024", "reservation_slot": 12},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Slot outside the fixed enumeration rejected",
			body:           map[string]interface{}{"first_name": "Adrian", "reservation_date": "2024-06-03", "reservation_slot": 15},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:           "Missing first name rejected",
			body:           map[string]interface{}{"reservation_date": "2024-06-03", "reservation_slot": 12},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := doJSON(t, router, http.MethodPost, "/bookings", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorCode(response))
			}
		})
	}

	var count int64
	db.Model(&models.Booking{}).Where("reservation_date = ? AND reservation_slot = ?", "2024-06-01", 12).Count(&count)
	assert.Equal(t, int64(1), count, "Exactly one booking survives for a contested slot")
}

func TestListBookings(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Booking{FirstName: "Tilly", ReservationDate: "2024-06-01", ReservationSlot: 12})
	db.Create(&models.Booking{FirstName: "Mario", ReservationDate: "2024-06-01", ReservationSlot: 18})
	db.Create(&models.Booking{FirstName: "Adrian", ReservationDate: "2024-06-02", ReservationSlot: 12})

	router := setupTestRouter()
	router.GET("/bookings", ListBookings)

	t.Run("All bookings without a filter", func(t *testing.T) {
		w, response := doJSON(t, router, http.MethodGet, "/bookings", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, response["data"].([]interface{}), 3)
	})

	t.Run("Filtered by date", func(t *testing.T) {
		w, response := doJSON(t, router, http.MethodGet, "/bookings?date=2024-06-01", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, response["data"].([]interface{}), 2)
	})

	t.Run("Unparseable date filter yields empty list", func(t *testing.T) {
		w, response := doJSON(t, router, http.MethodGet, "/bookings?date=tomorrow", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, response["data"].([]interface{}), 0)
	})
}

func TestUpdateBooking(t *testing.T) {
	db := setupTestDB(t)
	booking := models.Booking{FirstName: "Tilly", ReservationDate: "2024-06-01", ReservationSlot: 12}
	db.Create(&booking)
	db.Create(&models.Booking{FirstName: "Mario", ReservationDate: "2024-06-01", ReservationSlot: 18})

	user := createUser(t, db, "staff", models.RoleCustomer)
	router := setupTestRouter()
	router.PUT("/bookings/:id", asUser(user), UpdateBooking)

	t.Run("Move to a free slot", func(t *testing.T) {
		w, response := doJSON(t, router, http.MethodPut, fmt.Sprintf("/bookings/%d", booking.ID),
			map[string]interface{}{"first_name": "Tilly", "reservation_date": "2024-06-01", "reservation_slot": 13})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(13), response["data"].(map[string]interface{})["reservation_slot"])
	})

	t.Run("Move onto a taken slot conflicts", func(t *testing.T) {
		w, response := doJSON(t, router, http.MethodPut, fmt.Sprintf("/bookings/%d", booking.ID),
			map[string]interface{}{"first_name": "Tilly", "reservation_date": "2024-06-01", "reservation_slot": 18})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "SLOT_ALREADY_BOOKED", errorCode(response))
	})

	t.Run("Unknown booking is 404", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPut, "/bookings/999",
			map[string]interface{}{"first_name": "Tilly", "reservation_date": "2024-06-01", "reservation_slot": 19})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteBooking(t *testing.T) {
	db := setupTestDB(t)
	booking := models.Booking{FirstName: "Tilly", ReservationDate: "2024-06-01", ReservationSlot: 12}
	db.Create(&booking)

	user := createUser(t, db, "staff", models.RoleCustomer)
	router := setupTestRouter()
	router.DELETE("/bookings/:id", asUser(user), DeleteBooking)

	w, _ := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/bookings/%d", booking.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetAvailableSlots(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Booking{FirstName: "Tilly", ReservationDate: "2024-06-01", ReservationSlot: 12})
	db.Create(&models.Booking{FirstName: "Mario", ReservationDate: "2024-06-01", ReservationSlot: 20})

	router := setupTestRouter()
	router.GET("/available-slots", GetAvailableSlots)

	t.Run("Booked slots flagged unavailable", func(t *testing.T) {
		w, response := doJSON(t, router, http.MethodGet, "/available-slots?date=2024-06-01", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		data := response["data"].(map[string]interface{})
		assert.Equal(t, "2024-06-01", data["date"])

		slots := data["available_slots"].([]interface{})
		assert.Len(t, slots, len(models.TimeSlots), "Every fixed slot appears exactly once")

		unavailable := map[float64]bool{}
		for _, raw := range slots {
			slot := raw.(map[string]interface{})
			if !slot["is_available"].(bool) {
				unavailable[slot["value"].(float64)] = true
			}
		}
		assert.Equal(t, map[float64]bool{12: true, 20: true}, unavailable)
	})

	t.Run("Date defaults to today", func(t *testing.T) {
		w, response := doJSON(t, router, http.MethodGet, "/available-slots", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, time.Now().Format(models.DateLayout), data["date"])
	})

	t.Run("Malformed date is 400", func(t *testing.T) {
		w, response := doJSON(t, router, http.MethodGet, "/available-slots?date=June+1st", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
	})
}
