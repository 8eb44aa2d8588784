package handlers

import (
	"database/sql"
	"net/http"

	"travomine/services"
	"travomine/storage"
	"travomine/utils"

	"github.com/gin-gonic/gin"
)

// RegisterFCMTokenHandler godoc
// @Summary      Register FCM token
// @Description  Register a device token so the user gets quotation status pushes
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      map[string]string  true  "token"
// @Success      200   {object}  models.SuccessResponse
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/fcm-token [post]
func RegisterFCMTokenHandler(db *sql.DB, fcmService *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := utils.TokenFromRequest(c)
		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		var request struct {
			Token string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
			return
		}

		if fcmService != nil {
			if err := fcmService.SaveFCMToken(user.ID, request.Token); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save token", "details": err.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Token registered"})
	}
}

// RemoveFCMTokenHandler godoc
// @Summary      Remove FCM tokens
// @Description  Remove all device tokens for the current user
// @Tags         notifications
// @Success      200  {object}  models.SuccessResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /api/fcm-token [delete]
func RemoveFCMTokenHandler(db *sql.DB, fcmService *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := utils.TokenFromRequest(c)
		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		if fcmService != nil {
			if err := fcmService.RemoveFCMToken(user.ID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove tokens", "details": err.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Tokens removed"})
	}
}
