package models

import (
	"time"

	"github.com/lib/pq"
)

// Quotation statuses. A quotation is an immutable cost snapshot; only the
// status moves after creation.
const (
	QuotationStatusDraft     = "DRAFT"
	QuotationStatusSent      = "SENT"
	QuotationStatusApproved  = "APPROVED"
	QuotationStatusRejected  = "REJECTED"
	QuotationStatusCancelled = "CANCELLED"
)

var quotationTransitions = map[string][]string{
	QuotationStatusDraft: {QuotationStatusSent, QuotationStatusCancelled},
	QuotationStatusSent:  {QuotationStatusApproved, QuotationStatusRejected, QuotationStatusCancelled},
}

// CanTransitionQuotationStatus reports whether a quotation may move from one
// status to another. APPROVED, REJECTED and CANCELLED are terminal.
func CanTransitionQuotationStatus(from, to string) bool {
	for _, allowed := range quotationTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Quotation represents the quotation table with GORM tags. It is the
// aggregate root: line-item collections are created atomically with it and
// the stored money fields always satisfy total = subtotal + tax - discount.
type Quotation struct {
	ID          uint   `gorm:"primaryKey;column:id" json:"id"`
	QuotationNo string `gorm:"column:quotation_no;uniqueIndex;not null" json:"quotation_no"`

	ClientName  string `gorm:"column:client_name;not null" json:"client_name"`
	ClientEmail string `gorm:"column:client_email" json:"client_email"`
	ClientPhone string `gorm:"column:client_phone" json:"client_phone"`

	DestinationID int       `gorm:"column:destination_id" json:"destination_id"`
	Place         string    `gorm:"column:place" json:"place"`
	TravelStart   time.Time `gorm:"column:travel_start;not null" json:"travel_start"`
	TravelEnd     time.Time `gorm:"column:travel_end;not null" json:"travel_end"`
	Travelers     int       `gorm:"column:travelers;not null" json:"travelers"`
	Nights        int       `gorm:"column:nights;not null" json:"nights"`

	MealPlanID   *int   `gorm:"column:meal_plan_id" json:"meal_plan_id,omitempty"`
	MealPlanName string `gorm:"column:meal_plan_name" json:"meal_plan_name,omitempty"`

	Subtotal       float64 `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	TaxTotal       float64 `gorm:"column:tax_total;type:numeric(12,2);not null" json:"tax_total"`
	DiscountCode   string  `gorm:"column:discount_code" json:"discount_code,omitempty"`
	DiscountAmount float64 `gorm:"column:discount_amount;type:numeric(12,2);not null" json:"discount_amount"`
	Total          float64 `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Currency       string  `gorm:"column:currency;default:'USD'" json:"currency"`

	Status    string    `gorm:"column:status;not null;default:'DRAFT'" json:"status"`
	CreatedBy int       `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	Inclusions pq.StringArray `gorm:"column:inclusions;type:text[]" json:"inclusions"`
	Exclusions pq.StringArray `gorm:"column:exclusions;type:text[]" json:"exclusions"`

	Accommodations []QuotationAccommodation `gorm:"foreignKey:QuotationID" json:"accommodations"`
	Transfers      []QuotationTransfer      `gorm:"foreignKey:QuotationID" json:"transfers"`
	Flights        []QuotationFlight        `gorm:"foreignKey:QuotationID" json:"flights"`
	ItineraryDays  []QuotationItineraryDay  `gorm:"foreignKey:QuotationID" json:"itinerary_days"`
	Activities     []QuotationActivity      `gorm:"foreignKey:QuotationID" json:"activities"`
}

// TableName specifies the table name for Quotation
func (Quotation) TableName() string {
	return "quotation"
}

// QuotationAccommodation represents the quotation_accommodation table.
type QuotationAccommodation struct {
	ID          uint    `gorm:"primaryKey;column:id" json:"id"`
	QuotationID uint    `gorm:"column:quotation_id;not null;index" json:"quotation_id"`
	HotelID     uint    `gorm:"column:hotel_id;not null" json:"hotel_id"`
	HotelName   string  `gorm:"column:hotel_name;not null" json:"hotel_name"`
	RoomType    string  `gorm:"column:room_type;not null" json:"room_type"`
	Season      string  `gorm:"column:season;not null" json:"season"`
	Nights      int     `gorm:"column:nights;not null" json:"nights"`
	Rate        float64 `gorm:"column:rate;type:numeric(12,2);not null" json:"rate"`
	BaseCost    float64 `gorm:"column:base_cost;type:numeric(12,2);not null" json:"base_cost"`
}

// TableName specifies the table name for QuotationAccommodation
func (QuotationAccommodation) TableName() string {
	return "quotation_accommodation"
}

// QuotationTransfer represents the quotation_transfer table.
type QuotationTransfer struct {
	ID           uint    `gorm:"primaryKey;column:id" json:"id"`
	QuotationID  uint    `gorm:"column:quotation_id;not null;index" json:"quotation_id"`
	TransferCode string  `gorm:"column:transfer_code;not null" json:"transfer_code"`
	Description  string  `gorm:"column:description" json:"description"`
	VehicleType  string  `gorm:"column:vehicle_type" json:"vehicle_type"`
	Days         int     `gorm:"column:days;not null" json:"days"`
	RatePerDay   float64 `gorm:"column:rate_per_day;type:numeric(12,2);not null" json:"rate_per_day"`
	BaseCost     float64 `gorm:"column:base_cost;type:numeric(12,2);not null" json:"base_cost"`
}

// TableName specifies the table name for QuotationTransfer
func (QuotationTransfer) TableName() string {
	return "quotation_transfer"
}

// QuotationFlight represents the quotation_flight table.
type QuotationFlight struct {
	ID          uint    `gorm:"primaryKey;column:id" json:"id"`
	QuotationID uint    `gorm:"column:quotation_id;not null;index" json:"quotation_id"`
	Origin      string  `gorm:"column:origin;not null" json:"origin"`
	Dest        string  `gorm:"column:destination;not null" json:"destination"`
	Airline     string  `gorm:"column:airline" json:"airline"`
	BaseFare    float64 `gorm:"column:base_fare;type:numeric(12,2);not null" json:"base_fare"`
	Travelers   int     `gorm:"column:travelers;not null" json:"travelers"`
	BaseCost    float64 `gorm:"column:base_cost;type:numeric(12,2);not null" json:"base_cost"`
}

// TableName specifies the table name for QuotationFlight
func (QuotationFlight) TableName() string {
	return "quotation_flight"
}

// QuotationItineraryDay represents the quotation_itinerary_day table.
type QuotationItineraryDay struct {
	ID          uint   `gorm:"primaryKey;column:id" json:"id"`
	QuotationID uint   `gorm:"column:quotation_id;not null;index" json:"quotation_id"`
	DayNumber   int    `gorm:"column:day_number;not null" json:"day_number"`
	Title       string `gorm:"column:title;not null" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

// TableName specifies the table name for QuotationItineraryDay
func (QuotationItineraryDay) TableName() string {
	return "quotation_itinerary_day"
}

// QuotationActivity represents the quotation_activity table.
type QuotationActivity struct {
	ID          uint    `gorm:"primaryKey;column:id" json:"id"`
	QuotationID uint    `gorm:"column:quotation_id;not null;index" json:"quotation_id"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Description string  `gorm:"column:description" json:"description"`
	Cost        float64 `gorm:"column:cost;type:numeric(12,2);not null" json:"cost"`
}

// TableName specifies the table name for QuotationActivity
func (QuotationActivity) TableName() string {
	return "quotation_activity"
}
