package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"travomine/models"
	"travomine/utils"

	"github.com/gin-gonic/gin"
)

// CreateUser godoc
// @Summary      Create user
// @Description  Create a new back-office user (Admin only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      models.User  true  "User"
// @Success      201   {object}  models.User
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/user [post]
func CreateUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if user.Email == "" || user.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		if user.Role == "" {
			user.Role = models.RoleEmployee
		}
		if user.Role != models.RoleAdmin && user.Role != models.RoleEmployee {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
			return
		}

		hashed, err := utils.HashPassword(user.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		query := `INSERT INTO users (employee_id, email, password, first_name, last_name, role, phone_no, branch_city, suspended, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, NOW(), NOW()) RETURNING id`
		err = db.QueryRow(query, user.EmployeeId, user.Email, hashed, user.FirstName, user.LastName, user.Role, user.PhoneNo, user.BranchCity).Scan(&user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		user.Password = ""
		c.JSON(http.StatusCreated, user)
	}
}

// GetUsers godoc
// @Summary      List users
// @Tags         users
// @Success      200  {array}  models.User
// @Router       /api/user [get]
func GetUsers(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Query(`SELECT id, employee_id, email, first_name, last_name, role, suspended, phone_no, branch_city, created_at FROM users ORDER BY id`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		var users []models.User
		for rows.Next() {
			var u models.User
			if err := rows.Scan(&u.ID, &u.EmployeeId, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.Suspended, &u.PhoneNo, &u.BranchCity, &u.CreatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			users = append(users, u)
		}

		c.JSON(http.StatusOK, users)
	}
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Tags         users
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  models.User
// @Router       /api/user/{id} [get]
func GetUserByID(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var u models.User
		err := db.QueryRow(`SELECT id, employee_id, email, first_name, last_name, role, suspended, phone_no, branch_city, created_at FROM users WHERE id=$1`, id).
			Scan(&u.ID, &u.EmployeeId, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.Suspended, &u.PhoneNo, &u.BranchCity, &u.CreatedAt)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, u)
	}
}

// UpdateUser godoc
// @Summary      Update user
// @Tags         users
// @Param        id    path      int          true  "User ID"
// @Param        body  body      models.User  true  "User"
// @Success      200   {object}  models.SuccessResponse
// @Router       /api/user/{id} [put]
func UpdateUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var u models.User
		if err := c.ShouldBindJSON(&u); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		query := `UPDATE users SET first_name=$1, last_name=$2, phone_no=$3, branch_city=$4, updated_at=$5 WHERE id=$6`
		res, err := db.Exec(query, u.FirstName, u.LastName, u.PhoneNo, u.BranchCity, time.Now(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User updated"})
	}
}

// SuspendUser godoc
// @Summary      Suspend or reinstate user
// @Description  Toggle the suspended flag; suspended users cannot log in
// @Tags         users
// @Param        id    path      int                true  "User ID"
// @Param        body  body      map[string]bool    true  "suspended"
// @Success      200   {object}  models.SuccessResponse
// @Router       /api/user/{id}/suspend [patch]
func SuspendUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var req struct {
			Suspended bool `json:"suspended"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := db.Exec(`UPDATE users SET suspended=$1, updated_at=NOW() WHERE id=$2`, req.Suspended, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		// Suspension takes effect immediately: drop every live session.
		if req.Suspended {
			if _, err := db.Exec(`DELETE FROM session WHERE user_id=$1`, id); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "User updated"})
	}
}

// ChangePassword godoc
// @Summary      Change password
// @Tags         users
// @Param        body  body      map[string]string  true  "old_password, new_password"
// @Success      200   {object}  models.SuccessResponse
// @Failure      401   {object}  models.ErrorResponse
// @Router       /api/user/change-password [post]
func ChangePassword(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := utils.TokenFromRequest(c)
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		var req struct {
			OldPassword string `json:"old_password" binding:"required"`
			NewPassword string `json:"new_password" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var userID int
		var stored string
		err := db.QueryRow(`SELECT u.id, u.password FROM session s JOIN users u ON s.user_id = u.id WHERE s.session_id = $1`, sessionID).Scan(&userID, &stored)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		if !utils.ValidatePassword(stored, req.OldPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
			return
		}

		hashed, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		if _, err := db.Exec(`UPDATE users SET password=$1, updated_at=NOW() WHERE id=$2`, hashed, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
	}
}
