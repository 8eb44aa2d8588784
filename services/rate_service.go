package services

import (
	"database/sql"
	"fmt"

	"travomine/models"

	"gorm.io/gorm"
)

// RateResolver resolves concrete rates for service requests. Swappable so
// tests can substitute deterministic fixtures.
type RateResolver interface {
	HotelRate(hotelID uint, roomType, season string) (float64, error)
	MealPlanRate(countryID int, code string) (float64, error)
	TransferRate(countryID int, code string) (float64, error)
	FlightFare(origin, dest string) (float64, error)
}

type dbRateResolver struct {
	gdb *gorm.DB
	db  *sql.DB
}

// NewRateResolver returns the database-backed resolver used by the
// quotation handlers.
func NewRateResolver(gdb *gorm.DB, db *sql.DB) RateResolver {
	return &dbRateResolver{gdb: gdb, db: db}
}

// HotelRate looks up the nightly rate for (hotel, room type, season).
// Season is an opaque label matched exactly; more than one matching card is
// an ambiguity the resolver refuses to break arbitrarily.
func (r *dbRateResolver) HotelRate(hotelID uint, roomType, season string) (float64, error) {
	var cards []models.HotelRateCard
	err := r.gdb.Where("hotel_id = ? AND room_type = ? AND season = ?", hotelID, roomType, season).Find(&cards).Error
	if err != nil {
		return 0, err
	}
	return SelectHotelRateCard(cards, hotelID, roomType, season)
}

// SelectHotelRateCard picks the rate from an already-filtered card list,
// enforcing the exactly-one-match rule.
func SelectHotelRateCard(cards []models.HotelRateCard, hotelID uint, roomType, season string) (float64, error) {
	key := fmt.Sprintf("hotel=%d room=%s season=%s", hotelID, roomType, season)
	switch len(cards) {
	case 0:
		return 0, &RateNotFoundError{Kind: "hotel rate card", Key: key}
	case 1:
		return cards[0].Rate, nil
	default:
		return 0, &AmbiguousRateError{Kind: "hotel rate card", Key: key, Matches: len(cards)}
	}
}

func (r *dbRateResolver) MealPlanRate(countryID int, code string) (float64, error) {
	var rate float64
	err := r.db.QueryRow(`SELECT rate_per_person FROM meal_plan WHERE country_id = $1 AND code = $2 AND active = TRUE`, countryID, code).Scan(&rate)
	if err == sql.ErrNoRows {
		return 0, &RateNotFoundError{Kind: "meal plan", Key: fmt.Sprintf("country=%d code=%s", countryID, code)}
	}
	if err != nil {
		return 0, err
	}
	return rate, nil
}

func (r *dbRateResolver) TransferRate(countryID int, code string) (float64, error) {
	var rate float64
	err := r.db.QueryRow(`SELECT rate_per_day FROM transfer WHERE country_id = $1 AND code = $2 AND active = TRUE`, countryID, code).Scan(&rate)
	if err == sql.ErrNoRows {
		return 0, &RateNotFoundError{Kind: "transfer", Key: fmt.Sprintf("country=%d code=%s", countryID, code)}
	}
	if err != nil {
		return 0, err
	}
	return rate, nil
}

func (r *dbRateResolver) FlightFare(origin, dest string) (float64, error) {
	var fare float64
	err := r.db.QueryRow(`SELECT base_fare FROM flight_route WHERE origin = $1 AND destination = $2 AND active = TRUE`, origin, dest).Scan(&fare)
	if err == sql.ErrNoRows {
		return 0, &RateNotFoundError{Kind: "flight route", Key: fmt.Sprintf("%s-%s", origin, dest)}
	}
	if err != nil {
		return 0, err
	}
	return fare, nil
}

// LoadRuleSet snapshots the current markup/tax rules. Rows are scanned in
// ascending id order and later rows overwrite earlier ones, so when the
// schema holds several rules for one service type the most recently defined
// wins.
func LoadRuleSet(gdb *gorm.DB) (RuleSet, error) {
	rules := RuleSet{
		Markups: make(map[models.ServiceType]float64),
		Taxes:   make(map[models.ServiceType]float64),
	}

	var markups []models.MarkupRule
	if err := gdb.Order("id ASC").Find(&markups).Error; err != nil {
		return rules, err
	}
	for _, m := range markups {
		rules.Markups[models.ServiceType(m.ServiceType)] = m.Percentage
	}

	var taxes []models.Tax
	if err := gdb.Order("id ASC").Find(&taxes).Error; err != nil {
		return rules, err
	}
	for _, t := range taxes {
		rules.Taxes[models.ServiceType(t.ServiceType)] = t.Percentage
	}

	return rules, nil
}

// FindDiscountByCode fetches a discount row; an unknown code is an
// InvalidDiscountError, not a RateNotFoundError, so the caller can offer to
// retry without it.
func FindDiscountByCode(gdb *gorm.DB, code string) (*models.Discount, error) {
	var d models.Discount
	err := gdb.Where("code = ?", code).First(&d).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &InvalidDiscountError{Code: code, Reason: "unknown code"}
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
