package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Role is a named authorization group users can belong to
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// SeedRoles ensures the three fixed roles exist. Safe to call on every startup.
func SeedRoles(db *gorm.DB) error {
	roles := []Role{
		{Name: RoleManager},
		{Name: RoleDeliveryCrew},
		{Name: RoleCustomer},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}
