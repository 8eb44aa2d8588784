package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"travomine/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateHotel godoc
// @Summary      Create hotel
// @Tags         hotel
// @Accept       json
// @Produce      json
// @Param        body  body      models.Hotel  true  "Hotel"
// @Success      201   {object}  models.Hotel
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/hotel [post]
func CreateHotel(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var hotel models.Hotel
		if err := c.ShouldBindJSON(&hotel); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if hotel.Name == "" || hotel.DestinationID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and destination_id are required"})
			return
		}

		hotel.Active = true
		if err := gdb.Create(&hotel).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, hotel)
	}
}

// GetHotels godoc
// @Summary      List hotels
// @Description  List hotels with their rate cards, optionally by destination
// @Tags         hotel
// @Param        destination_id  query  int  false  "Destination ID"
// @Success      200  {array}  models.Hotel
// @Router       /api/hotel [get]
func GetHotels(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := gdb.Preload("RateCards").Order("name")
		if destID := c.Query("destination_id"); destID != "" {
			q = q.Where("destination_id = ?", destID)
		}
		if c.Query("active") == "true" {
			q = q.Where("active = ?", true)
		}

		var hotels []models.Hotel
		if err := q.Find(&hotels).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, hotels)
	}
}

// GetHotelByID godoc
// @Summary      Get hotel by ID
// @Tags         hotel
// @Param        id   path      int  true  "Hotel ID"
// @Success      200  {object}  models.Hotel
// @Router       /api/hotel/{id} [get]
func GetHotelByID(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var hotel models.Hotel
		err := gdb.Preload("RateCards").First(&hotel, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, hotel)
	}
}

// UpdateHotel godoc
// @Summary      Update hotel
// @Tags         hotel
// @Param        id    path      int           true  "Hotel ID"
// @Param        body  body      models.Hotel  true  "Hotel"
// @Success      200   {object}  models.Hotel
// @Router       /api/hotel/{id} [put]
func UpdateHotel(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var hotel models.Hotel
		err := gdb.First(&hotel, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var input models.Hotel
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{
			"destination_id": input.DestinationID,
			"name":           input.Name,
			"stars":          input.Stars,
			"address":        input.Address,
			"contact_email":  input.ContactEmail,
			"contact_phone":  input.ContactPhone,
			"active":         input.Active,
		}
		if err := gdb.Model(&hotel).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, hotel)
	}
}

// DeactivateHotel godoc
// @Summary      Deactivate hotel
// @Tags         hotel
// @Param        id   path      int  true  "Hotel ID"
// @Success      200  {object}  models.SuccessResponse
// @Router       /api/hotel/{id} [delete]
func DeactivateHotel(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res := gdb.Model(&models.Hotel{}).Where("id = ?", id).Update("active", false)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Hotel deactivated"})
	}
}

// CreateHotelRateCard godoc
// @Summary      Create hotel rate card
// @Description  Add a (room type, season) rate row for a hotel
// @Tags         hotel
// @Param        id    path      int                   true  "Hotel ID"
// @Param        body  body      models.HotelRateCard  true  "Rate card"
// @Success      201   {object}  models.HotelRateCard
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/hotel/{id}/rate-card [post]
func CreateHotelRateCard(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hotel ID"})
			return
		}

		var card models.HotelRateCard
		if err := c.ShouldBindJSON(&card); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if card.RoomType == "" || card.Season == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_type and season are required"})
			return
		}
		if card.Rate < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rate must not be negative"})
			return
		}

		var count int64
		if err := gdb.Model(&models.Hotel{}).Where("id = ?", hotelID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
			return
		}

		card.HotelID = uint(hotelID)
		if err := gdb.Create(&card).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, card)
	}
}

// GetHotelRateCards godoc
// @Summary      List rate cards for a hotel
// @Tags         hotel
// @Param        id   path      int  true  "Hotel ID"
// @Success      200  {array}  models.HotelRateCard
// @Router       /api/hotel/{id}/rate-card [get]
func GetHotelRateCards(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var cards []models.HotelRateCard
		if err := gdb.Where("hotel_id = ?", id).Order("room_type, season").Find(&cards).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, cards)
	}
}

// UpdateHotelRateCard godoc
// @Summary      Update hotel rate card
// @Tags         hotel
// @Param        id       path      int                   true  "Hotel ID"
// @Param        card_id  path      int                   true  "Rate card ID"
// @Param        body     body      models.HotelRateCard  true  "Rate card"
// @Success      200      {object}  models.HotelRateCard
// @Router       /api/hotel/{id}/rate-card/{card_id} [put]
func UpdateHotelRateCard(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID := c.Param("id")
		cardID := c.Param("card_id")

		var card models.HotelRateCard
		err := gdb.First(&card, "id = ? AND hotel_id = ?", cardID, hotelID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate card not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var input models.HotelRateCard
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Rate < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rate must not be negative"})
			return
		}

		updates := map[string]interface{}{
			"room_type": input.RoomType,
			"season":    input.Season,
			"rate":      input.Rate,
			"currency":  input.Currency,
		}
		if err := gdb.Model(&card).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, card)
	}
}

// DeleteHotelRateCard godoc
// @Summary      Delete hotel rate card
// @Tags         hotel
// @Param        id       path      int  true  "Hotel ID"
// @Param        card_id  path      int  true  "Rate card ID"
// @Success      200      {object}  models.SuccessResponse
// @Router       /api/hotel/{id}/rate-card/{card_id} [delete]
func DeleteHotelRateCard(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := gdb.Where("id = ? AND hotel_id = ?", c.Param("card_id"), c.Param("id")).Delete(&models.HotelRateCard{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate card not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Rate card deleted"})
	}
}
