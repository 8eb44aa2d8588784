package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"travomine/models"
	"travomine/repository"
	"travomine/services"
	"travomine/storage"
	"travomine/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateQuotationRequest is the employee-facing input for drafting a
// quotation. Rates are never taken from the client; every money figure is
// resolved server-side and snapshotted.
type CreateQuotationRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`

	DestinationID int       `json:"destination_id" binding:"required"`
	TravelStart   time.Time `json:"travel_start" binding:"required"`
	TravelEnd     time.Time `json:"travel_end" binding:"required"`
	Travelers     int       `json:"travelers" binding:"required"`

	MealPlanCode string `json:"meal_plan_code"`
	DiscountCode string `json:"discount_code"`
	Currency     string `json:"currency"`

	Accommodations []struct {
		HotelID  uint   `json:"hotel_id" binding:"required"`
		RoomType string `json:"room_type" binding:"required"`
		Season   string `json:"season" binding:"required"`
		Nights   int    `json:"nights" binding:"required"`
	} `json:"accommodations"`

	Transfers []struct {
		Code string `json:"code" binding:"required"`
		Days int    `json:"days" binding:"required"`
	} `json:"transfers"`

	Flights []struct {
		Origin string `json:"origin" binding:"required"`
		Dest   string `json:"destination" binding:"required"`
	} `json:"flights"`

	Activities []struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Cost        float64 `json:"cost"`
	} `json:"activities"`

	ItineraryDays []struct {
		DayNumber   int    `json:"day_number"`
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"itinerary_days"`

	Inclusions []string `json:"inclusions"`
	Exclusions []string `json:"exclusions"`
}

func quotationErrorStatus(err error) int {
	var invalidInput *services.InvalidInputError
	var rateNotFound *services.RateNotFoundError
	var ambiguous *services.AmbiguousRateError
	var invalidDiscount *services.InvalidDiscountError

	switch {
	case errors.As(err, &invalidInput):
		return http.StatusBadRequest
	case errors.As(err, &invalidDiscount):
		return http.StatusBadRequest
	case errors.As(err, &rateNotFound):
		return http.StatusNotFound
	case errors.As(err, &ambiguous):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// CreateQuotation godoc
// @Summary      Create quotation
// @Description  Resolve rates for the selected services, price them, and store the quotation
// @Tags         quotation
// @Accept       json
// @Produce      json
// @Param        body  body      handlers.CreateQuotationRequest  true  "Quotation input"
// @Success      201   {object}  models.Quotation
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/quotation [post]
func CreateQuotation(db *sql.DB, repo *repository.QuotationRepository, resolver services.RateResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := utils.TokenFromRequest(c)
		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		var req CreateQuotationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !req.TravelEnd.After(req.TravelStart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "travel_end must be after travel_start"})
			return
		}
		if req.Travelers <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Travelers must be positive"})
			return
		}

		nights := int(req.TravelEnd.Sub(req.TravelStart).Hours() / 24)

		var place string
		var countryID int
		err = db.QueryRow(`SELECT d.name, d.country_id FROM destination d WHERE d.id = $1 AND d.active = TRUE`, req.DestinationID).
			Scan(&place, &countryID)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		q := models.Quotation{
			ClientName:    req.ClientName,
			ClientEmail:   req.ClientEmail,
			ClientPhone:   req.ClientPhone,
			DestinationID: req.DestinationID,
			Place:         place,
			TravelStart:   req.TravelStart,
			TravelEnd:     req.TravelEnd,
			Travelers:     req.Travelers,
			Nights:        nights,
			Currency:      req.Currency,
			CreatedBy:     user.ID,
			Inclusions:    req.Inclusions,
			Exclusions:    req.Exclusions,
		}

		var selections []services.ServiceSelection

		for _, acc := range req.Accommodations {
			rate, err := resolver.HotelRate(acc.HotelID, acc.RoomType, acc.Season)
			if err != nil {
				c.JSON(quotationErrorStatus(err), gin.H{"error": err.Error()})
				return
			}

			var hotelName string
			if err := db.QueryRow(`SELECT name FROM hotel WHERE id = $1`, acc.HotelID).Scan(&hotelName); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			baseCost := rate * float64(acc.Nights)
			q.Accommodations = append(q.Accommodations, models.QuotationAccommodation{
				HotelID:   acc.HotelID,
				HotelName: hotelName,
				RoomType:  acc.RoomType,
				Season:    acc.Season,
				Nights:    acc.Nights,
				Rate:      rate,
				BaseCost:  baseCost,
			})
			selections = append(selections, services.ServiceSelection{
				ServiceType: models.ServiceTypeHotel,
				Description: fmt.Sprintf("%s, %s (%s), %d nights", hotelName, acc.RoomType, acc.Season, acc.Nights),
				BaseCost:    baseCost,
			})
		}

		for _, tr := range req.Transfers {
			rate, err := resolver.TransferRate(countryID, tr.Code)
			if err != nil {
				c.JSON(quotationErrorStatus(err), gin.H{"error": err.Error()})
				return
			}

			baseCost := rate * float64(tr.Days)
			q.Transfers = append(q.Transfers, models.QuotationTransfer{
				TransferCode: tr.Code,
				Days:         tr.Days,
				RatePerDay:   rate,
				BaseCost:     baseCost,
			})
			selections = append(selections, services.ServiceSelection{
				ServiceType: models.ServiceTypeVehicle,
				Description: fmt.Sprintf("Transfer %s, %d days", tr.Code, tr.Days),
				BaseCost:    baseCost,
			})
		}

		for _, fl := range req.Flights {
			fare, err := resolver.FlightFare(fl.Origin, fl.Dest)
			if err != nil {
				c.JSON(quotationErrorStatus(err), gin.H{"error": err.Error()})
				return
			}

			baseCost := fare * float64(req.Travelers)
			q.Flights = append(q.Flights, models.QuotationFlight{
				Origin:    fl.Origin,
				Dest:      fl.Dest,
				BaseFare:  fare,
				Travelers: req.Travelers,
				BaseCost:  baseCost,
			})
			selections = append(selections, services.ServiceSelection{
				ServiceType: models.ServiceTypeFlight,
				Description: fmt.Sprintf("Flight %s-%s x%d", fl.Origin, fl.Dest, req.Travelers),
				BaseCost:    baseCost,
			})
		}

		if req.MealPlanCode != "" {
			rate, err := resolver.MealPlanRate(countryID, req.MealPlanCode)
			if err != nil {
				c.JSON(quotationErrorStatus(err), gin.H{"error": err.Error()})
				return
			}

			var mealPlanID int
			var mealPlanName string
			if err := db.QueryRow(`SELECT id, name FROM meal_plan WHERE country_id = $1 AND code = $2 AND active = TRUE`, countryID, req.MealPlanCode).
				Scan(&mealPlanID, &mealPlanName); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			q.MealPlanID = &mealPlanID
			q.MealPlanName = mealPlanName

			baseCost := rate * float64(req.Travelers) * float64(nights)
			selections = append(selections, services.ServiceSelection{
				ServiceType: models.ServiceTypeMeal,
				Description: fmt.Sprintf("%s x%d travelers x%d nights", mealPlanName, req.Travelers, nights),
				BaseCost:    baseCost,
			})
		}

		for _, act := range req.Activities {
			q.Activities = append(q.Activities, models.QuotationActivity{
				Name:        act.Name,
				Description: act.Description,
				Cost:        act.Cost,
			})
			selections = append(selections, services.ServiceSelection{
				ServiceType: models.ServiceTypePackage,
				Description: act.Name,
				BaseCost:    act.Cost,
			})
		}

		for _, day := range req.ItineraryDays {
			q.ItineraryDays = append(q.ItineraryDays, models.QuotationItineraryDay{
				DayNumber:   day.DayNumber,
				Title:       day.Title,
				Description: day.Description,
			})
		}

		gdb := storage.GetGormDB()

		ruleSet, err := services.LoadRuleSet(gdb)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var discount *models.Discount
		if req.DiscountCode != "" {
			discount, err = services.FindDiscountByCode(gdb, req.DiscountCode)
			if err != nil {
				c.JSON(quotationErrorStatus(err), gin.H{"error": err.Error()})
				return
			}
		}

		breakdown, err := services.Price(selections, ruleSet, discount, time.Now())
		if err != nil {
			c.JSON(quotationErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		q.Subtotal = breakdown.Subtotal
		q.TaxTotal = breakdown.TaxTotal
		q.DiscountAmount = breakdown.DiscountAmount
		q.Total = breakdown.Total
		if discount != nil {
			q.DiscountCode = discount.Code
		}

		if err := repo.CreateWithItems(&q); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"quotation": q,
			"breakdown": breakdown,
		})
	}
}

// GetQuotationByNumber godoc
// @Summary      Get quotation by number
// @Tags         quotation
// @Param        quotation_no  path      string  true  "Quotation number"
// @Success      200  {object}  models.Quotation
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotation/by-number/{quotation_no} [get]
func GetQuotationByNumber(repo *repository.QuotationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := repo.FetchByNumber(c.Param("quotation_no"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
			return
		}

		c.JSON(http.StatusOK, q)
	}
}

// GetQuotationByID godoc
// @Summary      Get quotation by ID
// @Tags         quotation
// @Param        id   path      int  true  "Quotation ID"
// @Success      200  {object}  models.Quotation
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotation/{id} [get]
func GetQuotationByID(repo *repository.QuotationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quotation ID"})
			return
		}

		q, err := repo.FetchByID(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
			return
		}

		c.JSON(http.StatusOK, q)
	}
}

// ListQuotations godoc
// @Summary      List quotations
// @Tags         quotation
// @Param        status     query  string  false  "Status filter"
// @Param        page       query  int     false  "Page number"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /api/quotation [get]
func ListQuotations(repo *repository.QuotationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
		page, pageSize = repository.NormalizePage(page, pageSize)
		status := c.Query("status")

		quotations, total, err := repo.List(status, page, pageSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		totalPages := int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}

		c.JSON(http.StatusOK, models.PaginatedResponse{
			Data: quotations,
			Pagination: models.Pagination{
				CurrentPage:  page,
				PageSize:     pageSize,
				TotalRecords: int(total),
				TotalPages:   totalPages,
				HasNext:      page < totalPages,
				HasPrev:      page > 1,
			},
		})
	}
}

// UpdateQuotationStatus godoc
// @Summary      Update quotation status
// @Description  Move a quotation along DRAFT -> SENT -> APPROVED/REJECTED; CANCELLED from any non-terminal state
// @Tags         quotation
// @Param        id    path      int                true  "Quotation ID"
// @Param        body  body      map[string]string  true  "status"
// @Success      200   {object}  models.Quotation
// @Failure      400   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /api/quotation/{id}/status [patch]
func UpdateQuotationStatus(db *sql.DB, repo *repository.QuotationRepository, fcmService *services.FCMService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quotation ID"})
			return
		}

		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}

		q, err := repo.UpdateStatus(uint(id), req.Status)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
				return
			}
			var transitionErr *repository.InvalidTransitionError
			if errors.As(err, &transitionErr) {
				c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Push is best-effort; the status change already committed.
		if fcmService != nil {
			go func(userID int, quotationNo, status string) {
				ctx, cancel := utils.GetQueryContext(nil, utils.FastQueryTimeout)
				defer cancel()
				if err := fcmService.NotifyQuotationStatus(ctx, userID, quotationNo, status); err != nil {
					log.Printf("Warning: failed to push status notification for %s: %v", quotationNo, err)
				}
			}(q.CreatedBy, q.QuotationNo, q.Status)
		}

		c.JSON(http.StatusOK, q)
	}
}

// SendQuotationEmailHandler godoc
// @Summary      Email quotation to client
// @Description  Send the quotation summary to the client's email and mark it SENT
// @Tags         quotation
// @Param        id   path      int  true  "Quotation ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotation/{id}/send [post]
func SendQuotationEmailHandler(db *sql.DB, repo *repository.QuotationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quotation ID"})
			return
		}

		q, err := repo.FetchByID(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
			return
		}

		if q.ClientEmail == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quotation has no client email"})
			return
		}

		agentName := ""
		sessionID := utils.TokenFromRequest(c)
		if user, err := storage.GetUserBySessionID(db, sessionID); err == nil {
			agentName = user.FirstName + " " + user.LastName
		}

		emailService := services.NewEmailService()
		if err := emailService.SendQuotationEmail(q, agentName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email", "details": err.Error()})
			return
		}

		// A freshly drafted quotation becomes SENT on first dispatch;
		// re-sending an already SENT quotation is fine and changes nothing.
		if q.Status == models.QuotationStatusDraft {
			if _, err := repo.UpdateStatus(q.ID, models.QuotationStatusSent); err != nil {
				log.Printf("Warning: quotation %s emailed but status update failed: %v", q.QuotationNo, err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Quotation emailed to " + q.ClientEmail})
	}
}
