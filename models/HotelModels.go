package models

import "time"

// Hotel represents the hotel table with GORM tags.
type Hotel struct {
	ID            uint      `gorm:"primaryKey;column:id" json:"id"`
	DestinationID int       `gorm:"column:destination_id;not null" json:"destination_id"`
	Name          string    `gorm:"column:name;not null" json:"name"`
	Stars         int       `gorm:"column:stars" json:"stars"`
	Address       string    `gorm:"column:address" json:"address"`
	ContactEmail  string    `gorm:"column:contact_email" json:"contact_email"`
	ContactPhone  string    `gorm:"column:contact_phone" json:"contact_phone"`
	Active        bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt     time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	RateCards []HotelRateCard `gorm:"foreignKey:HotelID" json:"rate_cards,omitempty"`
}

// TableName specifies the table name for Hotel
func (Hotel) TableName() string {
	return "hotel"
}

// HotelRateCard represents the hotel_rate_card table. The lookup key is
// (hotel_id, room_type, season); season is an opaque label defined by the
// administrator, matched exactly.
type HotelRateCard struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	HotelID   uint      `gorm:"column:hotel_id;not null;index" json:"hotel_id"`
	RoomType  string    `gorm:"column:room_type;not null" json:"room_type"`
	Season    string    `gorm:"column:season;not null" json:"season"`
	Rate      float64   `gorm:"column:rate;type:numeric(12,2);not null" json:"rate"`
	Currency  string    `gorm:"column:currency;default:'USD'" json:"currency"`
	CreatedBy string    `gorm:"column:created_by" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for HotelRateCard
func (HotelRateCard) TableName() string {
	return "hotel_rate_card"
}
