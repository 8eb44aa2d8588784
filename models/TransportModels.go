package models

import "time"

// FlightRoute represents the flight_route table.
type FlightRoute struct {
	ID        int       `json:"id" example:"1"`
	Origin    string    `json:"origin" example:"CMB"`
	Dest      string    `json:"destination" example:"MLE"`
	Airline   string    `json:"airline,omitempty" example:"UL"`
	BaseFare  float64   `json:"base_fare" example:"185.00"`
	Currency  string    `json:"currency" example:"USD"`
	Active    bool      `json:"active" example:"true"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// VehicleType represents the vehicle_type table. Transfer pricing is per day
// or per km depending on how the administrator filled the rate columns.
type VehicleType struct {
	ID         int     `json:"id" example:"1"`
	Name       string  `json:"name" example:"Mini Coach"`
	Seats      int     `json:"seats" example:"18"`
	RatePerDay float64 `json:"rate_per_day" example:"90.00"`
	RatePerKM  float64 `json:"rate_per_km" example:"0.45"`
	Active     bool    `json:"active" example:"true"`
}

// Transfer represents the transfer table: a named per-country transfer
// product priced against a vehicle category.
type Transfer struct {
	ID            int     `json:"id" example:"1"`
	CountryID     int     `json:"country_id" example:"1"`
	Code          string  `json:"code" example:"APT-CMB"`
	Name          string  `json:"name" example:"Airport pickup, Colombo"`
	VehicleTypeID int     `json:"vehicle_type_id" example:"1"`
	RatePerDay    float64 `json:"rate_per_day" example:"65.00"`
	Active        bool    `json:"active" example:"true"`
}
