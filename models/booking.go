package models

import (
	"time"

	"gorm.io/gorm"
)

// DateLayout is the wire format for reservation dates
const DateLayout = "2006-01-02"

// TimeSlot is one bookable hour of the day
type TimeSlot struct {
	Value   int    `json:"value"`
	Display string `json:"display"`
}

// TimeSlots is the fixed set of reservation slots offered per day
var TimeSlots = []TimeSlot{
	{11, "11:00 AM - 12:00 PM"},
	{12, "12:00 PM - 1:00 PM"},
	{13, "1:00 PM - 2:00 PM"},
	{18, "6:00 PM - 7:00 PM"},
	{19, "7:00 PM - 8:00 PM"},
	{20, "8:00 PM - 9:00 PM"},
	{21, "9:00 PM - 10:00 PM"},
}

// ValidSlot reports whether value is one of the fixed reservation slots
func ValidSlot(value int) bool {
	for _, s := range TimeSlots {
		if s.Value == value {
			return true
		}
	}
	return false
}

// Booking reserves one time slot on one date. The (date, slot) pair is
// unique; the database index is the authoritative arbiter when two bookings
// race for the same slot.
type Booking struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FirstName       string    `gorm:"not null" json:"first_name"`
	ReservationDate string    `gorm:"type:date;not null;uniqueIndex:idx_booking_date_slot" json:"reservation_date"`
	ReservationSlot int       `gorm:"not null;uniqueIndex:idx_booking_date_slot" json:"reservation_slot"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// SlotAvailability is one entry of the derived availability view
type SlotAvailability struct {
	Value       int    `json:"value"`
	Display     string `json:"display"`
	IsAvailable bool   `json:"is_available"`
}

// AvailableSlots returns every fixed time slot for the given date with a flag
// saying whether it is still free. Purely a derived read, no mutation.
func AvailableSlots(db *gorm.DB, date string) ([]SlotAvailability, error) {
	var booked []int
	if err := db.Model(&Booking{}).
		Where("reservation_date = ?", date).
		Pluck("reservation_slot", &booked).Error; err != nil {
		return nil, err
	}

	bookedSet := make(map[int]bool, len(booked))
	for _, s := range booked {
		bookedSet[s] = true
	}

	slots := make([]SlotAvailability, 0, len(TimeSlots))
	for _, ts := range TimeSlots {
		slots = append(slots, SlotAvailability{
			Value:       ts.Value,
			Display:     ts.Display,
			IsAvailable: !bookedSet[ts.Value],
		})
	}
	return slots, nil
}
