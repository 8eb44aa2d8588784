package handlers

import (
	"database/sql"
	"net/http"

	"travomine/storage"
	"travomine/utils"

	"github.com/gin-gonic/gin"
)

// ValidateSessionHandler checks whether the presented session is still valid
// @Summary Validate session
// @Description Validate the caller's session token and return the user
// @Tags Authentication
// @Accept json
// @Produce json
// @Success 200 {object} models.ValidateSessionResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/validate-session [get]
func ValidateSessionHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := utils.TokenFromRequest(c)
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "No token provided"})
			return
		}

		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": err.Error()})
			return
		}

		user.Password = ""
		c.JSON(http.StatusOK, gin.H{
			"valid": true,
			"email": user.Email,
			"user":  user,
		})
	}
}
