package handlers

import (
	"errors"
	"net/http"

	"travomine/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func validPercentage(p float64) bool {
	return p >= 0 && p <= 100
}

// CreateMarkupRule godoc
// @Summary      Create markup rule
// @Description  Percentage markup applied to the base cost of a service type
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body      models.MarkupRule  true  "Markup rule"
// @Success      201   {object}  models.MarkupRule
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/markup-rule [post]
func CreateMarkupRule(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rule models.MarkupRule
		if err := c.ShouldBindJSON(&rule); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !models.ValidServiceType(models.ServiceType(rule.ServiceType)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown service type"})
			return
		}
		if !validPercentage(rule.Percentage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage must be between 0 and 100"})
			return
		}

		if err := gdb.Create(&rule).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, rule)
	}
}

// GetMarkupRules godoc
// @Summary      List markup rules
// @Tags         pricing
// @Success      200  {array}  models.MarkupRule
// @Router       /api/markup-rule [get]
func GetMarkupRules(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rules []models.MarkupRule
		if err := gdb.Order("service_type, id").Find(&rules).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, rules)
	}
}

// UpdateMarkupRule godoc
// @Summary      Update markup rule
// @Tags         pricing
// @Param        id    path      int                true  "Rule ID"
// @Param        body  body      models.MarkupRule  true  "Markup rule"
// @Success      200   {object}  models.MarkupRule
// @Router       /api/markup-rule/{id} [put]
func UpdateMarkupRule(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rule models.MarkupRule
		err := gdb.First(&rule, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Markup rule not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var input models.MarkupRule
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !models.ValidServiceType(models.ServiceType(input.ServiceType)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown service type"})
			return
		}
		if !validPercentage(input.Percentage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage must be between 0 and 100"})
			return
		}

		updates := map[string]interface{}{
			"service_type": input.ServiceType,
			"percentage":   input.Percentage,
		}
		if err := gdb.Model(&rule).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, rule)
	}
}

// DeleteMarkupRule godoc
// @Summary      Delete markup rule
// @Description  Removing a rule makes the service type price at 0% markup
// @Tags         pricing
// @Param        id   path      int  true  "Rule ID"
// @Success      200  {object}  models.SuccessResponse
// @Router       /api/markup-rule/{id} [delete]
func DeleteMarkupRule(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := gdb.Delete(&models.MarkupRule{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Markup rule not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Markup rule deleted"})
	}
}

// CreateTax godoc
// @Summary      Create tax
// @Description  Percentage tax applied to the marked-up cost of a service type
// @Tags         pricing
// @Param        body  body      models.Tax  true  "Tax"
// @Success      201   {object}  models.Tax
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/tax [post]
func CreateTax(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tax models.Tax
		if err := c.ShouldBindJSON(&tax); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !models.ValidServiceType(models.ServiceType(tax.ServiceType)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown service type"})
			return
		}
		if !validPercentage(tax.Percentage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage must be between 0 and 100"})
			return
		}

		if err := gdb.Create(&tax).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, tax)
	}
}

// GetTaxes godoc
// @Summary      List taxes
// @Tags         pricing
// @Success      200  {array}  models.Tax
// @Router       /api/tax [get]
func GetTaxes(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var taxes []models.Tax
		if err := gdb.Order("service_type, id").Find(&taxes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, taxes)
	}
}

// UpdateTax godoc
// @Summary      Update tax
// @Tags         pricing
// @Param        id    path      int         true  "Tax ID"
// @Param        body  body      models.Tax  true  "Tax"
// @Success      200   {object}  models.Tax
// @Router       /api/tax/{id} [put]
func UpdateTax(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tax models.Tax
		err := gdb.First(&tax, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var input models.Tax
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !models.ValidServiceType(models.ServiceType(input.ServiceType)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown service type"})
			return
		}
		if !validPercentage(input.Percentage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage must be between 0 and 100"})
			return
		}

		updates := map[string]interface{}{
			"service_type": input.ServiceType,
			"name":         input.Name,
			"percentage":   input.Percentage,
		}
		if err := gdb.Model(&tax).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, tax)
	}
}

// DeleteTax godoc
// @Summary      Delete tax
// @Tags         pricing
// @Param        id   path      int  true  "Tax ID"
// @Success      200  {object}  models.SuccessResponse
// @Router       /api/tax/{id} [delete]
func DeleteTax(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := gdb.Delete(&models.Tax{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Tax deleted"})
	}
}

// CreateDiscount godoc
// @Summary      Create discount
// @Description  Code-gated percentage discount valid inside [valid_from, valid_to]
// @Tags         pricing
// @Param        body  body      models.Discount  true  "Discount"
// @Success      201   {object}  models.Discount
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/discount [post]
func CreateDiscount(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var d models.Discount
		if err := c.ShouldBindJSON(&d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if d.Code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code is required"})
			return
		}
		if !validPercentage(d.Percentage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage must be between 0 and 100"})
			return
		}
		if d.ValidTo.Before(d.ValidFrom) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid_to must not be before valid_from"})
			return
		}

		if err := gdb.Create(&d).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, d)
	}
}

// GetDiscounts godoc
// @Summary      List discounts
// @Tags         pricing
// @Success      200  {array}  models.Discount
// @Router       /api/discount [get]
func GetDiscounts(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var discounts []models.Discount
		if err := gdb.Order("code").Find(&discounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, discounts)
	}
}

// UpdateDiscount godoc
// @Summary      Update discount
// @Tags         pricing
// @Param        id    path      int              true  "Discount ID"
// @Param        body  body      models.Discount  true  "Discount"
// @Success      200   {object}  models.Discount
// @Router       /api/discount/{id} [put]
func UpdateDiscount(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var d models.Discount
		err := gdb.First(&d, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var input models.Discount
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !validPercentage(input.Percentage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage must be between 0 and 100"})
			return
		}
		if input.ValidTo.Before(input.ValidFrom) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid_to must not be before valid_from"})
			return
		}

		updates := map[string]interface{}{
			"code":       input.Code,
			"percentage": input.Percentage,
			"valid_from": input.ValidFrom,
			"valid_to":   input.ValidTo,
		}
		if err := gdb.Model(&d).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, d)
	}
}

// DeleteDiscount godoc
// @Summary      Delete discount
// @Tags         pricing
// @Param        id   path      int  true  "Discount ID"
// @Success      200  {object}  models.SuccessResponse
// @Router       /api/discount/{id} [delete]
func DeleteDiscount(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := gdb.Delete(&models.Discount{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Discount deleted"})
	}
}
