package handlers

import (
	"errors"
	"net/http"

	"travomine/models"
	"travomine/services"
	"travomine/utils"

	"github.com/gin-gonic/gin"
)

// AssistantChatHandler godoc
// @Summary      Quotation drafting assistant
// @Description  Turn a chat conversation into a reply plus an optional quotation draft
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body      models.AssistantRequest  true  "Conversation so far"
// @Success      200   {object}  models.AssistantResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      502   {object}  models.ErrorResponse
// @Failure      503   {object}  models.ErrorResponse
// @Failure      504   {object}  models.ErrorResponse
// @Router       /api/assistant [post]
func AssistantChatHandler(svc *services.AssistantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
			return
		}

		var req models.AssistantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := utils.GetQueryContext(c.Request.Context(), utils.AssistantTimeout)
		defer cancel()

		resp, err := svc.DraftQuotation(ctx, req.Messages)
		if err != nil {
			var invalidInput *services.InvalidInputError
			var timeout *services.ExternalServiceTimeoutError
			var parseErr *services.GenerationParseError

			switch {
			case errors.As(err, &invalidInput):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.As(err, &timeout):
				c.JSON(http.StatusGatewayTimeout, gin.H{"error": "The assistant took too long to respond. Please try again."})
			case errors.As(err, &parseErr):
				c.JSON(http.StatusBadGateway, gin.H{"error": "The assistant could not generate a usable draft. Please try again."})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
