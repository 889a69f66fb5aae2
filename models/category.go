package models

// Category groups menu items on the menu
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
