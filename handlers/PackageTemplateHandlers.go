package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"travomine/models"
	"travomine/services"
	"travomine/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func indexPackageTemplate(c *gin.Context, index services.PackageIndex, tpl *models.PackageTemplate) {
	if index == nil {
		return
	}

	ctx, cancel := utils.GetQueryContext(c.Request.Context(), utils.DefaultQueryTimeout)
	defer cancel()

	text := fmt.Sprintf("%s (%d nights): %s", tpl.Title, tpl.Nights, tpl.Description)
	if err := index.Upsert(ctx, fmt.Sprintf("pkg-%d", tpl.ID), text); err != nil {
		// Indexing failure must not block the admin save; the assistant
		// degrades to answering without package context.
		log.Printf("Warning: failed to index package template %d: %v", tpl.ID, err)
	}
}

// CreatePackageTemplate godoc
// @Summary      Create package template
// @Description  Create a package template; the description is indexed for the assistant
// @Tags         package-template
// @Accept       json
// @Produce      json
// @Param        body  body      models.PackageTemplate  true  "Package template"
// @Success      201   {object}  models.PackageTemplate
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/package-template [post]
func CreatePackageTemplate(gdb *gorm.DB, index services.PackageIndex) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tpl models.PackageTemplate
		if err := c.ShouldBindJSON(&tpl); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if tpl.Title == "" || tpl.Description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
			return
		}
		if tpl.Nights <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nights must be positive"})
			return
		}

		tpl.Active = true
		if err := gdb.Create(&tpl).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		indexPackageTemplate(c, index, &tpl)

		c.JSON(http.StatusCreated, tpl)
	}
}

// GetPackageTemplates godoc
// @Summary      List package templates
// @Tags         package-template
// @Param        destination_id  query  int  false  "Destination ID"
// @Success      200  {array}  models.PackageTemplate
// @Router       /api/package-template [get]
func GetPackageTemplates(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := gdb.Order("title")
		if destID := c.Query("destination_id"); destID != "" {
			q = q.Where("destination_id = ?", destID)
		}
		if c.Query("active") == "true" {
			q = q.Where("active = ?", true)
		}

		var templates []models.PackageTemplate
		if err := q.Find(&templates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, templates)
	}
}

// GetPackageTemplateByID godoc
// @Summary      Get package template by ID
// @Tags         package-template
// @Param        id   path      int  true  "Template ID"
// @Success      200  {object}  models.PackageTemplate
// @Router       /api/package-template/{id} [get]
func GetPackageTemplateByID(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tpl models.PackageTemplate
		err := gdb.First(&tpl, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package template not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, tpl)
	}
}

// UpdatePackageTemplate godoc
// @Summary      Update package template
// @Description  Update a template; the new description replaces the indexed one
// @Tags         package-template
// @Param        id    path      int                     true  "Template ID"
// @Param        body  body      models.PackageTemplate  true  "Package template"
// @Success      200   {object}  models.PackageTemplate
// @Router       /api/package-template/{id} [put]
func UpdatePackageTemplate(gdb *gorm.DB, index services.PackageIndex) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tpl models.PackageTemplate
		err := gdb.First(&tpl, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package template not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var input models.PackageTemplate
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Nights <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nights must be positive"})
			return
		}

		updates := map[string]interface{}{
			"title":          input.Title,
			"destination_id": input.DestinationID,
			"nights":         input.Nights,
			"description":    input.Description,
			"base_price":     input.BasePrice,
			"active":         input.Active,
		}
		if err := gdb.Model(&tpl).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		indexPackageTemplate(c, index, &tpl)

		c.JSON(http.StatusOK, tpl)
	}
}

// DeactivatePackageTemplate godoc
// @Summary      Deactivate package template
// @Tags         package-template
// @Param        id   path      int  true  "Template ID"
// @Success      200  {object}  models.SuccessResponse
// @Router       /api/package-template/{id} [delete]
func DeactivatePackageTemplate(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := gdb.Model(&models.PackageTemplate{}).Where("id = ?", c.Param("id")).Update("active", false)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Package template not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Package template deactivated"})
	}
}
