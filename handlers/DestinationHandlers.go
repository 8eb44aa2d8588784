package handlers

import (
	"database/sql"
	"net/http"

	"travomine/models"

	"github.com/gin-gonic/gin"
)

// CreateDestination godoc
// @Summary      Create destination
// @Tags         destination
// @Accept       json
// @Produce      json
// @Param        body  body      models.Destination  true  "Destination"
// @Success      201   {object}  models.Destination
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/destination [post]
func CreateDestination(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dest models.Destination
		if err := c.ShouldBindJSON(&dest); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if dest.Name == "" || dest.CountryID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and country_id are required"})
			return
		}

		query := `INSERT INTO destination (country_id, name, description, image_url, active, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, true, NOW(), NOW()) RETURNING id, created_at, updated_at`
		err := db.QueryRow(query, dest.CountryID, dest.Name, dest.Description, dest.ImageURL).
			Scan(&dest.ID, &dest.CreatedAt, &dest.UpdatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		dest.Active = true
		c.JSON(http.StatusCreated, dest)
	}
}

// GetDestinations godoc
// @Summary      List destinations
// @Description  List destinations, optionally filtered by country_id or active
// @Tags         destination
// @Param        country_id  query  int     false  "Country ID"
// @Param        active      query  bool    false  "Only active"
// @Success      200  {array}  models.Destination
// @Router       /api/destination [get]
func GetDestinations(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `
			SELECT d.id, d.country_id, d.name, d.description, d.image_url, d.active, d.created_at, d.updated_at, co.name AS country_name
			FROM destination d
			JOIN country co ON d.country_id = co.id
			WHERE 1=1`
		args := []interface{}{}

		if countryID := c.Query("country_id"); countryID != "" {
			args = append(args, countryID)
			query += ` AND d.country_id = $1`
		}
		if c.Query("active") == "true" {
			query += ` AND d.active = TRUE`
		}
		query += ` ORDER BY co.name, d.name`

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		var dests []models.Destination
		for rows.Next() {
			var d models.Destination
			if err := rows.Scan(&d.ID, &d.CountryID, &d.Name, &d.Description, &d.ImageURL, &d.Active, &d.CreatedAt, &d.UpdatedAt, &d.CountryName); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			dests = append(dests, d)
		}

		c.JSON(http.StatusOK, dests)
	}
}

// GetDestinationByID godoc
// @Summary      Get destination by ID
// @Tags         destination
// @Param        id   path      int  true  "Destination ID"
// @Success      200  {object}  models.Destination
// @Router       /api/destination/{id} [get]
func GetDestinationByID(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var d models.Destination
		err := db.QueryRow(`
			SELECT d.id, d.country_id, d.name, d.description, d.image_url, d.active, d.created_at, d.updated_at, co.name AS country_name
			FROM destination d
			JOIN country co ON d.country_id = co.id
			WHERE d.id = $1`, id).
			Scan(&d.ID, &d.CountryID, &d.Name, &d.Description, &d.ImageURL, &d.Active, &d.CreatedAt, &d.UpdatedAt, &d.CountryName)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, d)
	}
}

// UpdateDestination godoc
// @Summary      Update destination
// @Tags         destination
// @Param        id    path      int                 true  "Destination ID"
// @Param        body  body      models.Destination  true  "Destination"
// @Success      200   {object}  models.Destination
// @Router       /api/destination/{id} [put]
func UpdateDestination(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var d models.Destination
		if err := c.ShouldBindJSON(&d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		query := `UPDATE destination SET country_id=$1, name=$2, description=$3, image_url=$4, active=$5, updated_at=NOW() WHERE id=$6`
		res, err := db.Exec(query, d.CountryID, d.Name, d.Description, d.ImageURL, d.Active, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
			return
		}

		c.JSON(http.StatusOK, d)
	}
}

// DeactivateDestination godoc
// @Summary      Deactivate destination
// @Description  Soft delete; quotations already issued keep their snapshot
// @Tags         destination
// @Param        id   path      int  true  "Destination ID"
// @Success      200  {object}  models.SuccessResponse
// @Router       /api/destination/{id} [delete]
func DeactivateDestination(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res, err := db.Exec(`UPDATE destination SET active=false, updated_at=NOW() WHERE id=$1`, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Destination deactivated"})
	}
}
