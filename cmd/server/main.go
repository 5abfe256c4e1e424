package main

import (
	"log"
	"time"

	"milk_delivery/internal/config"
	"milk_delivery/internal/database"
	"milk_delivery/internal/handlers"
	"milk_delivery/internal/middleware"
	"milk_delivery/internal/models"
	"milk_delivery/internal/redis"
	"milk_delivery/internal/repository"
	"milk_delivery/internal/services"
	"milk_delivery/pkg/whatsapp"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Bootstrap admin account
	if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize WhatsApp gateway client
	whatsappClient := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(db)
	personRepo := repository.NewDeliveryPersonRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Initialize services
	authService := services.NewAuthService(adminRepo, personRepo, redisClient, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	personService := services.NewPersonService(personRepo, redisClient)
	deliveryService := services.NewDeliveryService(deliveryRepo, personRepo, whatsappClient)
	statsService := services.NewStatsService(deliveryRepo, personRepo)
	catalogService := services.NewCatalogService(catalogRepo)
	searchService := services.NewSearchService(deliveryRepo, catalogRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(personService, deliveryService, statsService, searchService, whatsappClient)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService, statsService, personService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	api.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(authService))

	admin := authed.Group("")
	admin.Use(middleware.Authorize(models.UserTypeAdmin))
	{
		admin.POST("/delivery-persons", adminHandler.CreateDeliveryPerson)
		admin.POST("/delivery-persons/simple", adminHandler.CreateSimpleDeliveryPerson)
		admin.GET("/delivery-persons", adminHandler.GetDeliveryPersons)
		admin.PUT("/delivery-persons/:id/reset-password", adminHandler.ResetPassword)

		admin.POST("/deliveries", adminHandler.CreateDelivery)
		admin.GET("/deliveries", adminHandler.GetAllDeliveries)
		admin.PUT("/deliveries/:id/reassign", adminHandler.ReassignDelivery)
		admin.GET("/stats", adminHandler.GlobalStats)

		admin.POST("/categories", catalogHandler.CreateCategory)
		admin.GET("/categories", catalogHandler.GetCategories)
		admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
		admin.POST("/product-types", catalogHandler.CreateProductType)
		admin.GET("/product-types", catalogHandler.GetProductTypes)
		admin.POST("/characteristics", catalogHandler.CreateCharacteristic)
		admin.GET("/characteristics", catalogHandler.GetCharacteristics)
		admin.POST("/sizes", catalogHandler.CreateSize)
		admin.GET("/sizes", catalogHandler.GetSizes)
		admin.POST("/pincodes", catalogHandler.CreatePinCode)
		admin.GET("/pincodes", catalogHandler.GetPinCodes)
		admin.PUT("/pincodes/:id", catalogHandler.UpdatePinCode)
		admin.GET("/customers", catalogHandler.GetCustomers)
		admin.GET("/orders", catalogHandler.GetOrders)

		admin.GET("/admin/search", adminHandler.Search)
		admin.POST("/admin/send-whatsapp", adminHandler.SendWhatsApp)
	}

	// Delivery person routes; the handlers scope :id to the caller unless
	// the caller is an admin.
	authed.GET("/delivery-persons/:id/profile", deliveryHandler.GetProfile)
	authed.GET("/delivery-persons/:id/deliveries", deliveryHandler.GetDeliveries)
	authed.GET("/delivery-persons/:id/stats", deliveryHandler.GetStats)
	authed.PUT("/deliveries/:id/status", deliveryHandler.UpdateStatus)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
