package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"travomine/models"

	"github.com/gin-gonic/gin"
)

// CreateMealPlan godoc
// @Summary      Create meal plan
// @Tags         meal-plan
// @Accept       json
// @Produce      json
// @Param        body  body      models.MealPlan  true  "Meal plan"
// @Success      201   {object}  models.MealPlan
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/meal-plan [post]
func CreateMealPlan(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var mp models.MealPlan
		if err := c.ShouldBindJSON(&mp); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		mp.Code = strings.ToUpper(strings.TrimSpace(mp.Code))
		if mp.Code == "" || mp.CountryID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code and country_id are required"})
			return
		}
		if mp.RatePerPerson < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rate must not be negative"})
			return
		}

		query := `INSERT INTO meal_plan (country_id, code, name, rate_per_person, active) VALUES ($1, $2, $3, $4, true) RETURNING id`
		err := db.QueryRow(query, mp.CountryID, mp.Code, mp.Name, mp.RatePerPerson).Scan(&mp.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		mp.Active = true
		c.JSON(http.StatusCreated, mp)
	}
}

// GetMealPlans godoc
// @Summary      List meal plans
// @Tags         meal-plan
// @Param        country_id  query  int  false  "Country ID"
// @Success      200  {array}  models.MealPlan
// @Router       /api/meal-plan [get]
func GetMealPlans(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `SELECT id, country_id, code, name, rate_per_person, active FROM meal_plan WHERE 1=1`
		args := []interface{}{}

		if countryID := c.Query("country_id"); countryID != "" {
			args = append(args, countryID)
			query += ` AND country_id = $1`
		}
		query += ` ORDER BY code`

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		var plans []models.MealPlan
		for rows.Next() {
			var mp models.MealPlan
			if err := rows.Scan(&mp.ID, &mp.CountryID, &mp.Code, &mp.Name, &mp.RatePerPerson, &mp.Active); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			plans = append(plans, mp)
		}

		c.JSON(http.StatusOK, plans)
	}
}

// UpdateMealPlan godoc
// @Summary      Update meal plan
// @Tags         meal-plan
// @Param        id    path      int              true  "Meal plan ID"
// @Param        body  body      models.MealPlan  true  "Meal plan"
// @Success      200   {object}  models.MealPlan
// @Router       /api/meal-plan/{id} [put]
func UpdateMealPlan(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var mp models.MealPlan
		if err := c.ShouldBindJSON(&mp); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if mp.RatePerPerson < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rate must not be negative"})
			return
		}

		query := `UPDATE meal_plan SET country_id=$1, code=$2, name=$3, rate_per_person=$4, active=$5 WHERE id=$6`
		res, err := db.Exec(query, mp.CountryID, strings.ToUpper(mp.Code), mp.Name, mp.RatePerPerson, mp.Active, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
			return
		}

		c.JSON(http.StatusOK, mp)
	}
}

// DeactivateMealPlan godoc
// @Summary      Deactivate meal plan
// @Tags         meal-plan
// @Param        id   path      int  true  "Meal plan ID"
// @Success      200  {object}  models.SuccessResponse
// @Router       /api/meal-plan/{id} [delete]
func DeactivateMealPlan(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res, err := db.Exec(`UPDATE meal_plan SET active=false WHERE id=$1`, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Meal plan deactivated"})
	}
}
