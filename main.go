// @title           Travomine API
// @version         1.0
// @description     Travomine travel-agency back office - destinations, rates, pricing rules and quotations.

// @contact.name   API Support

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	_ "travomine/docs"
	"travomine/handlers"
	"travomine/models"
	"travomine/repository"
	"travomine/services"
	"travomine/storage"
	"travomine/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"https://office.travomine.com",
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding", "X-XSRF-TOKEN",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Authorization", "Content-Type",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

// RequireRole gates a route to sessions whose user carries the given role.
// Admins pass employee-gated routes too.
func RequireRole(db *sql.DB, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := utils.TokenFromRequest(c)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		if user.Role != role && user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_role", user.Role)
		c.Next()
	}
}

var cronRunning int32

func safeGo(
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	fn func(context.Context) error,
	cronLogger *log.Logger,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				if cronLogger != nil {
					cronLogger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				}
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
			if cronLogger != nil {
				cronLogger.Printf("%s failed: %v", name, err)
			}
		} else {
			log.Printf("%s completed successfully", name)
		}
	}()
}

func main() {
	db := storage.InitDB()
	gdb := storage.InitGormDB()

	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	quotationRepo := repository.NewQuotationRepository(gdb)
	rateResolver := services.NewRateResolver(gdb, db)

	// Firebase Cloud Messaging via HTTP v1 API; push is optional.
	credentialsPath := os.Getenv("FCM_CREDENTIALS_PATH")
	if credentialsPath == "" {
		credentialsPath = "firebase-credentials.json"
	}
	fcmService, err := services.NewFCMService(credentialsPath, db)
	if err != nil {
		log.Printf("Warning: Failed to initialize FCM service: %v. Push notifications will be disabled.", err)
		fcmService = nil
	} else {
		log.Println("FCM service initialized successfully")
	}

	// The assistant stack is optional too: without an API key the admin and
	// quotation surfaces keep working and /api/assistant answers 503.
	var packageIndex services.PackageIndex
	var assistantService *services.AssistantService

	openAIKey := os.Getenv("OPENAI_API_KEY")
	if openAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set. Assistant and package indexing will be disabled.")
	} else {
		embedder, err := services.NewOpenAIEmbedder(openAIKey, os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_EMBEDDING_MODEL"))
		if err != nil {
			log.Printf("Warning: Failed to initialize embedder: %v", err)
		} else {
			indexDir := os.Getenv("VECTOR_INDEX_DIR")
			if indexDir == "" {
				indexDir = "data"
			}
			packageIndex, err = services.NewPackageIndex(indexDir, embedder)
			if err != nil {
				log.Printf("Warning: Failed to open package index: %v", err)
				packageIndex = nil
			}
		}

		chatModel, err := services.NewOpenAIChatModel(openAIKey, os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_CHAT_MODEL"))
		if err != nil {
			log.Printf("Warning: Failed to initialize chat model: %v", err)
		} else {
			assistantService = services.NewAssistantService(chatModel, packageIndex, quotationRepo)
			log.Println("Assistant service initialized successfully")
		}
	}

	// Daily maintenance at 02:30.
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	_, err = c.AddFunc("30 2 * * *", func() {
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous cron still running. Skipping this run.")
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		log.Println("Starting daily maintenance cron job")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		var wg sync.WaitGroup

		safeGo(ctx, &wg, "CleanupExpiredSessions", func(ctx context.Context) error {
			return storage.CleanupExpiredSessions(db)
		}, cronLogger)

		safeGo(ctx, &wg, "CancelStaleDrafts", func(ctx context.Context) error {
			cancelled, err := quotationRepo.CancelStaleDrafts(30 * 24 * time.Hour)
			if err != nil {
				return err
			}
			if cancelled > 0 {
				log.Printf("Cancelled %d stale draft quotations", cancelled)
			}
			return nil
		}, cronLogger)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("All cron jobs finished")
		case <-ctx.Done():
			log.Println("Cron timeout reached, jobs cancelled")
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily maintenance cron job: %v", err)
	}

	c.Start()

	r := gin.Default()

	r.Use(cors.New(CORSConfig()))

	// ==================== 1. AUTH & LOGIN ====================
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/refresh", handlers.RefreshTokenHandler(db))
	r.POST("/api/logout", handlers.LogoutHandler(db))
	r.GET("/api/validate-session", handlers.ValidateSessionHandler(db))
	r.GET("/api/active-devices", handlers.GetActiveDevicesHandler(db))
	r.POST("/api/logout-device", handlers.LogoutDeviceHandler(db))

	// ==================== 2. USERS ====================
	r.POST("/api/user", RequireRole(db, models.RoleAdmin), handlers.CreateUser(db))
	r.GET("/api/user", RequireRole(db, models.RoleAdmin), handlers.GetUsers(db))
	r.GET("/api/user/:id", RequireRole(db, models.RoleAdmin), handlers.GetUserByID(db))
	r.PUT("/api/user/:id", RequireRole(db, models.RoleAdmin), handlers.UpdateUser(db))
	r.PATCH("/api/user/:id/suspend", RequireRole(db, models.RoleAdmin), handlers.SuspendUser(db))
	r.POST("/api/user/change-password", RequireRole(db, models.RoleEmployee), handlers.ChangePassword(db))

	// ==================== 3. GEOGRAPHY ====================
	r.POST("/api/country", RequireRole(db, models.RoleAdmin), handlers.CreateCountry(db))
	r.GET("/api/country", RequireRole(db, models.RoleEmployee), handlers.GetCountries(db))
	r.GET("/api/country/:id", RequireRole(db, models.RoleEmployee), handlers.GetCountryByID(db))
	r.PUT("/api/country/:id", RequireRole(db, models.RoleAdmin), handlers.UpdateCountry(db))
	r.DELETE("/api/country/:id", RequireRole(db, models.RoleAdmin), handlers.DeleteCountry(db))

	r.POST("/api/destination", RequireRole(db, models.RoleAdmin), handlers.CreateDestination(db))
	r.GET("/api/destination", RequireRole(db, models.RoleEmployee), handlers.GetDestinations(db))
	r.GET("/api/destination/:id", RequireRole(db, models.RoleEmployee), handlers.GetDestinationByID(db))
	r.PUT("/api/destination/:id", RequireRole(db, models.RoleAdmin), handlers.UpdateDestination(db))
	r.DELETE("/api/destination/:id", RequireRole(db, models.RoleAdmin), handlers.DeactivateDestination(db))

	// ==================== 4. HOTELS & RATE CARDS ====================
	r.POST("/api/hotel", RequireRole(db, models.RoleAdmin), handlers.CreateHotel(gdb))
	r.GET("/api/hotel", RequireRole(db, models.RoleEmployee), handlers.GetHotels(gdb))
	r.GET("/api/hotel/:id", RequireRole(db, models.RoleEmployee), handlers.GetHotelByID(gdb))
	r.PUT("/api/hotel/:id", RequireRole(db, models.RoleAdmin), handlers.UpdateHotel(gdb))
	r.DELETE("/api/hotel/:id", RequireRole(db, models.RoleAdmin), handlers.DeactivateHotel(gdb))
	r.POST("/api/hotel/:id/rate-card", RequireRole(db, models.RoleAdmin), handlers.CreateHotelRateCard(gdb))
	r.GET("/api/hotel/:id/rate-card", RequireRole(db, models.RoleEmployee), handlers.GetHotelRateCards(gdb))
	r.PUT("/api/hotel/:id/rate-card/:card_id", RequireRole(db, models.RoleAdmin), handlers.UpdateHotelRateCard(gdb))
	r.DELETE("/api/hotel/:id/rate-card/:card_id", RequireRole(db, models.RoleAdmin), handlers.DeleteHotelRateCard(gdb))

	// ==================== 5. TRANSPORT ====================
	r.POST("/api/flight-route", RequireRole(db, models.RoleAdmin), handlers.CreateFlightRoute(db))
	r.GET("/api/flight-route", RequireRole(db, models.RoleEmployee), handlers.GetFlightRoutes(db))
	r.PUT("/api/flight-route/:id", RequireRole(db, models.RoleAdmin), handlers.UpdateFlightRoute(db))
	r.DELETE("/api/flight-route/:id", RequireRole(db, models.RoleAdmin), handlers.DeactivateFlightRoute(db))

	r.POST("/api/vehicle-type", RequireRole(db, models.RoleAdmin), handlers.CreateVehicleType(db))
	r.GET("/api/vehicle-type", RequireRole(db, models.RoleEmployee), handlers.GetVehicleTypes(db))
	r.PUT("/api/vehicle-type/:id", RequireRole(db, models.RoleAdmin), handlers.UpdateVehicleType(db))

	r.POST("/api/transfer", RequireRole(db, models.RoleAdmin), handlers.CreateTransfer(db))
	r.GET("/api/transfer", RequireRole(db, models.RoleEmployee), handlers.GetTransfers(db))
	r.PUT("/api/transfer/:id", RequireRole(db, models.RoleAdmin), handlers.UpdateTransfer(db))

	// ==================== 6. MEAL PLANS ====================
	r.POST("/api/meal-plan", RequireRole(db, models.RoleAdmin), handlers.CreateMealPlan(db))
	r.GET("/api/meal-plan", RequireRole(db, models.RoleEmployee), handlers.GetMealPlans(db))
	r.PUT("/api/meal-plan/:id", RequireRole(db, models.RoleAdmin), handlers.UpdateMealPlan(db))
	r.DELETE("/api/meal-plan/:id", RequireRole(db, models.RoleAdmin), handlers.DeactivateMealPlan(db))

	// ==================== 7. PRICING RULES ====================
	r.POST("/api/markup-rule", RequireRole(db, models.RoleAdmin), handlers.CreateMarkupRule(gdb))
	r.GET("/api/markup-rule", RequireRole(db, models.RoleEmployee), handlers.GetMarkupRules(gdb))
	r.PUT("/api/markup-rule/:id", RequireRole(db, models.RoleAdmin), handlers.UpdateMarkupRule(gdb))
	r.DELETE("/api/markup-rule/:id", RequireRole(db, models.RoleAdmin), handlers.DeleteMarkupRule(gdb))

	r.POST("/api/tax", RequireRole(db, models.RoleAdmin), handlers.CreateTax(gdb))
	r.GET("/api/tax", RequireRole(db, models.RoleEmployee), handlers.GetTaxes(gdb))
	r.PUT("/api/tax/:id", RequireRole(db, models.RoleAdmin), handlers.UpdateTax(gdb))
	r.DELETE("/api/tax/:id", RequireRole(db, models.RoleAdmin), handlers.DeleteTax(gdb))

	r.POST("/api/discount", RequireRole(db, models.RoleAdmin), handlers.CreateDiscount(gdb))
	r.GET("/api/discount", RequireRole(db, models.RoleEmployee), handlers.GetDiscounts(gdb))
	r.PUT("/api/discount/:id", RequireRole(db, models.RoleAdmin), handlers.UpdateDiscount(gdb))
	r.DELETE("/api/discount/:id", RequireRole(db, models.RoleAdmin), handlers.DeleteDiscount(gdb))

	// ==================== 8. PACKAGE TEMPLATES ====================
	r.POST("/api/package-template", RequireRole(db, models.RoleAdmin), handlers.CreatePackageTemplate(gdb, packageIndex))
	r.GET("/api/package-template", RequireRole(db, models.RoleEmployee), handlers.GetPackageTemplates(gdb))
	r.GET("/api/package-template/:id", RequireRole(db, models.RoleEmployee), handlers.GetPackageTemplateByID(gdb))
	r.PUT("/api/package-template/:id", RequireRole(db, models.RoleAdmin), handlers.UpdatePackageTemplate(gdb, packageIndex))
	r.DELETE("/api/package-template/:id", RequireRole(db, models.RoleAdmin), handlers.DeactivatePackageTemplate(gdb))

	// ==================== 9. QUOTATIONS ====================
	r.POST("/api/quotation", RequireRole(db, models.RoleEmployee), handlers.CreateQuotation(db, quotationRepo, rateResolver))
	r.GET("/api/quotation", RequireRole(db, models.RoleEmployee), handlers.ListQuotations(quotationRepo))
	r.GET("/api/quotation/export", RequireRole(db, models.RoleEmployee), handlers.ExportQuotationsExcel(quotationRepo))
	r.GET("/api/quotation/by-number/:quotation_no", RequireRole(db, models.RoleEmployee), handlers.GetQuotationByNumber(quotationRepo))
	r.GET("/api/quotation/:id", RequireRole(db, models.RoleEmployee), handlers.GetQuotationByID(quotationRepo))
	r.PATCH("/api/quotation/:id/status", RequireRole(db, models.RoleEmployee), handlers.UpdateQuotationStatus(db, quotationRepo, fcmService))
	r.POST("/api/quotation/:id/send", RequireRole(db, models.RoleEmployee), handlers.SendQuotationEmailHandler(db, quotationRepo))
	r.GET("/api/quotation/:id/pdf", RequireRole(db, models.RoleEmployee), handlers.GenerateQuotationPDF(quotationRepo))
	r.GET("/api/quotation/:id/qr", RequireRole(db, models.RoleEmployee), handlers.GenerateQuotationQRCode(quotationRepo))

	// ==================== 10. ASSISTANT ====================
	r.POST("/api/assistant", RequireRole(db, models.RoleEmployee), handlers.AssistantChatHandler(assistantService))

	// ==================== 11. NOTIFICATIONS ====================
	r.POST("/api/fcm-token", RequireRole(db, models.RoleEmployee), handlers.RegisterFCMTokenHandler(db, fcmService))
	r.DELETE("/api/fcm-token", RequireRole(db, models.RoleEmployee), handlers.RemoveFCMTokenHandler(db, fcmService))

	// ==================== 12. DOCS ====================
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}

	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
