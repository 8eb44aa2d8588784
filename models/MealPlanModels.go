package models

// MealPlan represents the meal_plan table. Lookup is by (country_id, code).
type MealPlan struct {
	ID            int     `json:"id" example:"1"`
	CountryID     int     `json:"country_id" example:"1"`
	Code          string  `json:"code" example:"HB"`
	Name          string  `json:"name" example:"Half Board"`
	RatePerPerson float64 `json:"rate_per_person" example:"22.50"`
	Active        bool    `json:"active" example:"true"`
}
