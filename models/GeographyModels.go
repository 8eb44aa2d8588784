package models

import "time"

// Country represents the country table. Meal plans and transfer rates are
// defined per country.
type Country struct {
	ID        int    `json:"id" example:"1"`
	Name      string `json:"name" example:"Sri Lanka"`
	IsoCode   string `json:"iso_code" example:"LK"`
	PhoneCode string `json:"phone_code" example:"+94"`
	Currency  string `json:"currency" example:"LKR"`
}

// Destination represents the destination table.
type Destination struct {
	ID          int       `json:"id" example:"1"`
	CountryID   int       `json:"country_id" example:"1"`
	Name        string    `json:"name" example:"Kandy"`
	Description string    `json:"description" example:"Hill country cultural capital"`
	ImageURL    string    `json:"image_url,omitempty" example:""`
	Active      bool      `json:"active" example:"true"`
	CreatedAt   time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
	CountryName string    `json:"country_name,omitempty" example:"Sri Lanka"`
}
