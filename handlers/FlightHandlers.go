package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"travomine/models"

	"github.com/gin-gonic/gin"
)

// CreateFlightRoute godoc
// @Summary      Create flight route
// @Tags         flight
// @Accept       json
// @Produce      json
// @Param        body  body      models.FlightRoute  true  "Flight route"
// @Success      201   {object}  models.FlightRoute
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/flight-route [post]
func CreateFlightRoute(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var route models.FlightRoute
		if err := c.ShouldBindJSON(&route); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		route.Origin = strings.ToUpper(strings.TrimSpace(route.Origin))
		route.Dest = strings.ToUpper(strings.TrimSpace(route.Dest))
		if route.Origin == "" || route.Dest == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Origin and destination are required"})
			return
		}
		if route.BaseFare < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Base fare must not be negative"})
			return
		}

		query := `INSERT INTO flight_route (origin, destination, airline, base_fare, currency, active, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, true, NOW(), NOW()) RETURNING id, created_at, updated_at`
		err := db.QueryRow(query, route.Origin, route.Dest, route.Airline, route.BaseFare, route.Currency).
			Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		route.Active = true
		c.JSON(http.StatusCreated, route)
	}
}

// GetFlightRoutes godoc
// @Summary      List flight routes
// @Tags         flight
// @Param        origin  query  string  false  "Origin airport code"
// @Success      200  {array}  models.FlightRoute
// @Router       /api/flight-route [get]
func GetFlightRoutes(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `SELECT id, origin, destination, airline, base_fare, currency, active, created_at, updated_at FROM flight_route WHERE 1=1`
		args := []interface{}{}

		if origin := c.Query("origin"); origin != "" {
			args = append(args, strings.ToUpper(origin))
			query += ` AND origin = $1`
		}
		query += ` ORDER BY origin, destination`

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		var routes []models.FlightRoute
		for rows.Next() {
			var r models.FlightRoute
			if err := rows.Scan(&r.ID, &r.Origin, &r.Dest, &r.Airline, &r.BaseFare, &r.Currency, &r.Active, &r.CreatedAt, &r.UpdatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			routes = append(routes, r)
		}

		c.JSON(http.StatusOK, routes)
	}
}

// UpdateFlightRoute godoc
// @Summary      Update flight route
// @Tags         flight
// @Param        id    path      int                 true  "Route ID"
// @Param        body  body      models.FlightRoute  true  "Flight route"
// @Success      200   {object}  models.FlightRoute
// @Router       /api/flight-route/{id} [put]
func UpdateFlightRoute(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var route models.FlightRoute
		if err := c.ShouldBindJSON(&route); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if route.BaseFare < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Base fare must not be negative"})
			return
		}

		query := `UPDATE flight_route SET origin=$1, destination=$2, airline=$3, base_fare=$4, currency=$5, active=$6, updated_at=NOW() WHERE id=$7`
		res, err := db.Exec(query, strings.ToUpper(route.Origin), strings.ToUpper(route.Dest), route.Airline, route.BaseFare, route.Currency, route.Active, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Flight route not found"})
			return
		}

		c.JSON(http.StatusOK, route)
	}
}

// DeactivateFlightRoute godoc
// @Summary      Deactivate flight route
// @Tags         flight
// @Param        id   path      int  true  "Route ID"
// @Success      200  {object}  models.SuccessResponse
// @Router       /api/flight-route/{id} [delete]
func DeactivateFlightRoute(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res, err := db.Exec(`UPDATE flight_route SET active=false, updated_at=NOW() WHERE id=$1`, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Flight route not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Flight route deactivated"})
	}
}
