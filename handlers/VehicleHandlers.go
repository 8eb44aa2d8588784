package handlers

import (
	"database/sql"
	"net/http"

	"travomine/models"

	"github.com/gin-gonic/gin"
)

// CreateVehicleType godoc
// @Summary      Create vehicle type
// @Tags         vehicle
// @Accept       json
// @Produce      json
// @Param        body  body      models.VehicleType  true  "Vehicle type"
// @Success      201   {object}  models.VehicleType
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/vehicle-type [post]
func CreateVehicleType(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vt models.VehicleType
		if err := c.ShouldBindJSON(&vt); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if vt.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		if vt.RatePerDay < 0 || vt.RatePerKM < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rates must not be negative"})
			return
		}

		query := `INSERT INTO vehicle_type (name, seats, rate_per_day, rate_per_km, active) VALUES ($1, $2, $3, $4, true) RETURNING id`
		err := db.QueryRow(query, vt.Name, vt.Seats, vt.RatePerDay, vt.RatePerKM).Scan(&vt.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		vt.Active = true
		c.JSON(http.StatusCreated, vt)
	}
}

// GetVehicleTypes godoc
// @Summary      List vehicle types
// @Tags         vehicle
// @Success      200  {array}  models.VehicleType
// @Router       /api/vehicle-type [get]
func GetVehicleTypes(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Query(`SELECT id, name, seats, rate_per_day, rate_per_km, active FROM vehicle_type ORDER BY name`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		var types []models.VehicleType
		for rows.Next() {
			var vt models.VehicleType
			if err := rows.Scan(&vt.ID, &vt.Name, &vt.Seats, &vt.RatePerDay, &vt.RatePerKM, &vt.Active); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			types = append(types, vt)
		}

		c.JSON(http.StatusOK, types)
	}
}

// UpdateVehicleType godoc
// @Summary      Update vehicle type
// @Tags         vehicle
// @Param        id    path      int                 true  "Vehicle type ID"
// @Param        body  body      models.VehicleType  true  "Vehicle type"
// @Success      200   {object}  models.VehicleType
// @Router       /api/vehicle-type/{id} [put]
func UpdateVehicleType(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var vt models.VehicleType
		if err := c.ShouldBindJSON(&vt); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if vt.RatePerDay < 0 || vt.RatePerKM < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rates must not be negative"})
			return
		}

		query := `UPDATE vehicle_type SET name=$1, seats=$2, rate_per_day=$3, rate_per_km=$4, active=$5 WHERE id=$6`
		res, err := db.Exec(query, vt.Name, vt.Seats, vt.RatePerDay, vt.RatePerKM, vt.Active, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle type not found"})
			return
		}

		c.JSON(http.StatusOK, vt)
	}
}

// CreateTransfer godoc
// @Summary      Create transfer product
// @Description  Create a per-country transfer (airport pickup, intercity, etc.)
// @Tags         vehicle
// @Param        body  body      models.Transfer  true  "Transfer"
// @Success      201   {object}  models.Transfer
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/transfer [post]
func CreateTransfer(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var t models.Transfer
		if err := c.ShouldBindJSON(&t); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if t.Code == "" || t.CountryID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code and country_id are required"})
			return
		}
		if t.RatePerDay < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rate must not be negative"})
			return
		}

		query := `INSERT INTO transfer (country_id, code, name, vehicle_type_id, rate_per_day, active) VALUES ($1, $2, $3, $4, $5, true) RETURNING id`
		err := db.QueryRow(query, t.CountryID, t.Code, t.Name, t.VehicleTypeID, t.RatePerDay).Scan(&t.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		t.Active = true
		c.JSON(http.StatusCreated, t)
	}
}

// GetTransfers godoc
// @Summary      List transfers
// @Tags         vehicle
// @Param        country_id  query  int  false  "Country ID"
// @Success      200  {array}  models.Transfer
// @Router       /api/transfer [get]
func GetTransfers(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `SELECT id, country_id, code, name, vehicle_type_id, rate_per_day, active FROM transfer WHERE 1=1`
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

		var transfers []models.Transfer
		for rows.Next() {
			var t models.Transfer
			if err := rows.Scan(&t.ID, &t.CountryID, &t.Code, &t.Name, &t.VehicleTypeID, &t.RatePerDay, &t.Active); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			transfers = append(transfers, t)
		}

		c.JSON(http.StatusOK, transfers)
	}
}

// UpdateTransfer godoc
// @Summary      Update transfer
// @Tags         vehicle
// @Param        id    path      int              true  "Transfer ID"
// @Param        body  body      models.Transfer  true  "Transfer"
// @Success      200   {object}  models.Transfer
// @Router       /api/transfer/{id} [put]
func UpdateTransfer(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var t models.Transfer
		if err := c.ShouldBindJSON(&t); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if t.RatePerDay < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rate must not be negative"})
			return
		}

		query := `UPDATE transfer SET country_id=$1, code=$2, name=$3, vehicle_type_id=$4, rate_per_day=$5, active=$6 WHERE id=$7`
		res, err := db.Exec(query, t.CountryID, t.Code, t.Name, t.VehicleTypeID, t.RatePerDay, t.Active, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transfer not found"})
			return
		}

		c.JSON(http.StatusOK, t)
	}
}
