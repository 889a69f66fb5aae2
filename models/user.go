package models

import (
	"time"
)

// Role names used for authorization. They mirror the restaurant staff
// structure: managers run the catalog and order assignment, delivery crew
// move assigned orders through delivery, everyone else is a customer.
const (
	RoleManager      = "Manager"
	RoleDeliveryCrew = "Delivery Crew"
	RoleCustomer     = "Customer"
)

// User represents an account in the system
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `gorm:"not null" json:"last_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Roles        []Role    `gorm:"many2many:user_roles" json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// HasRole reports whether the user holds the named role.
// Roles must have been loaded (Preload("Roles")) before calling this.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
