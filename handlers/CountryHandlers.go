package handlers

import (
	"database/sql"
	"net/http"

	"travomine/models"

	"github.com/gin-gonic/gin"
)

// CreateCountry godoc
// @Summary      Create country
// @Tags         country
// @Accept       json
// @Produce      json
// @Param        body  body      models.Country  true  "Country"
// @Success      201   {object}  models.Country
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/country [post]
func CreateCountry(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var country models.Country
		if err := c.ShouldBindJSON(&country); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if country.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Country name is required"})
			return
		}

		query := `INSERT INTO country (name, iso_code, phone_code, currency) VALUES ($1, $2, $3, $4) RETURNING id`
		err := db.QueryRow(query, country.Name, country.IsoCode, country.PhoneCode, country.Currency).Scan(&country.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, country)
	}
}

// GetCountries godoc
// @Summary      List countries
// @Tags         country
// @Success      200  {array}  models.Country
// @Router       /api/country [get]
func GetCountries(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Query(`SELECT id, name, iso_code, phone_code, currency FROM country ORDER BY name`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		var countries []models.Country
		for rows.Next() {
			var country models.Country
			if err := rows.Scan(&country.ID, &country.Name, &country.IsoCode, &country.PhoneCode, &country.Currency); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			countries = append(countries, country)
		}

		c.JSON(http.StatusOK, countries)
	}
}

// GetCountryByID godoc
// @Summary      Get country by ID
// @Tags         country
// @Param        id   path      int  true  "Country ID"
// @Success      200  {object}  models.Country
// @Router       /api/country/{id} [get]
func GetCountryByID(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var country models.Country
		err := db.QueryRow(`SELECT id, name, iso_code, phone_code, currency FROM country WHERE id=$1`, id).
			Scan(&country.ID, &country.Name, &country.IsoCode, &country.PhoneCode, &country.Currency)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, country)
	}
}

// UpdateCountry godoc
// @Summary      Update country
// @Tags         country
// @Param        id    path      int             true  "Country ID"
// @Param        body  body      models.Country  true  "Country"
// @Success      200   {object}  models.Country
// @Router       /api/country/{id} [put]
func UpdateCountry(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var country models.Country
		if err := c.ShouldBindJSON(&country); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		query := `UPDATE country SET name=$1, iso_code=$2, phone_code=$3, currency=$4 WHERE id=$5`
		res, err := db.Exec(query, country.Name, country.IsoCode, country.PhoneCode, country.Currency, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
			return
		}

		c.JSON(http.StatusOK, country)
	}
}

// DeleteCountry godoc
// @Summary      Delete country
// @Tags         country
// @Param        id   path      int  true  "Country ID"
// @Success      200  {object}  models.SuccessResponse
// @Router       /api/country/{id} [delete]
func DeleteCountry(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res, err := db.Exec(`DELETE FROM country WHERE id=$1`, id)
		if err != nil {
			// Destinations, meal plans and transfers reference country rows.
			c.JSON(http.StatusConflict, gin.H{"error": "Country is in use", "details": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Country not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Country deleted"})
	}
}
