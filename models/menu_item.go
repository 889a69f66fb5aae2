package models

import (
	"time"
)

// MenuItem represents a dish on the menu
type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Price       float64   `gorm:"type:decimal(6,2);not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	ImageS3Key  *string   `json:"image_s3_key,omitempty"`       // S3 key for the uploaded dish photo
	ImageURL    *string   `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for the photo
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category"`
	IsFeatured  bool      `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
