package models

import "time"

// ServiceType identifies which markup/tax rule table a priced line item
// belongs to.
type ServiceType string

const (
	ServiceTypeHotel   ServiceType = "HOTEL"
	ServiceTypeFlight  ServiceType = "FLIGHT"
	ServiceTypeVehicle ServiceType = "VEHICLE"
	ServiceTypePackage ServiceType = "PACKAGE"
	ServiceTypeMeal    ServiceType = "MEAL"
)

// ValidServiceType reports whether s is one of the known service types.
func ValidServiceType(s ServiceType) bool {
	switch s {
	case ServiceTypeHotel, ServiceTypeFlight, ServiceTypeVehicle, ServiceTypePackage, ServiceTypeMeal:
		return true
	}
	return false
}

// MarkupRule represents the markup_rule table with GORM tags. Uniqueness per
// service type is not enforced by the schema; when several rows exist the
// highest id wins.
type MarkupRule struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	ServiceType string    `gorm:"column:service_type;not null;index" json:"service_type"`
	Percentage  float64   `gorm:"column:percentage;type:numeric(5,2);not null" json:"percentage"`
	CreatedBy   string    `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for MarkupRule
func (MarkupRule) TableName() string {
	return "markup_rule"
}

// Tax represents the tax table with GORM tags. Applied after markup, on the
// marked-up subtotal, per service type.
type Tax struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	ServiceType string    `gorm:"column:service_type;not null;index" json:"service_type"`
	Name        string    `gorm:"column:name" json:"name"`
	Percentage  float64   `gorm:"column:percentage;type:numeric(5,2);not null" json:"percentage"`
	CreatedBy   string    `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for Tax
func (Tax) TableName() string {
	return "tax"
}

// Discount represents the discount table with GORM tags. Applied once to the
// overall subtotal when the quotation's reference date falls inside
// [valid_from, valid_to] inclusive.
type Discount struct {
	ID         uint      `gorm:"primaryKey;column:id" json:"id"`
	Code       string    `gorm:"column:code;uniqueIndex;not null" json:"code"`
	Percentage float64   `gorm:"column:percentage;type:numeric(5,2);not null" json:"percentage"`
	ValidFrom  time.Time `gorm:"column:valid_from;not null" json:"valid_from"`
	ValidTo    time.Time `gorm:"column:valid_to;not null" json:"valid_to"`
	CreatedBy  string    `gorm:"column:created_by" json:"created_by"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for Discount
func (Discount) TableName() string {
	return "discount"
}
