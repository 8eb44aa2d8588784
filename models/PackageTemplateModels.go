package models

import "time"

// PackageTemplate represents the package_template table with GORM tags.
// Template descriptions are the retrieval corpus for the quotation
// assistant: on create/update the description text is embedded and upserted
// into the vector index.
type PackageTemplate struct {
	ID            uint      `gorm:"primaryKey;column:id" json:"id"`
	Title         string    `gorm:"column:title;not null" json:"title"`
	DestinationID int       `gorm:"column:destination_id" json:"destination_id"`
	Nights        int       `gorm:"column:nights;not null" json:"nights"`
	Description   string    `gorm:"column:description;type:text;not null" json:"description"`
	BasePrice     float64   `gorm:"column:base_price;type:numeric(12,2)" json:"base_price"`
	Active        bool      `gorm:"column:active;default:true" json:"active"`
	CreatedBy     string    `gorm:"column:created_by" json:"created_by"`
	CreatedAt     time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for PackageTemplate
func (PackageTemplate) TableName() string {
	return "package_template"
}
