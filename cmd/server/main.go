package main

import (
	"log"
	"os"

	"github.com/delpresence/backend/internal/auth"
	"github.com/delpresence/backend/internal/auth/campus"
	"github.com/delpresence/backend/internal/database"
	"github.com/delpresence/backend/internal/handlers"
	"github.com/delpresence/backend/internal/logging"
	"github.com/delpresence/backend/internal/middleware"
	"github.com/delpresence/backend/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	defer logging.Sync()

	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Set Gin mode
	gin.SetMode(utils.GetEnvWithDefault("GIN_MODE", "debug"))

	// Initialize database connection
	database.Initialize()

	// Initialize auth service (sets up the user repository)
	auth.Initialize()

	// Create admin user
	err = auth.CreateAdminUser()
	if err != nil {
		log.Fatalf("Error creating admin user: %v", err)
	}

	// Create a new Gin router
	router := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowCredentials = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "Content-Type")
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(config))

	// Register authentication routes
	router.POST("/api/auth/login", handlers.Login)
	router.POST("/api/auth/refresh", handlers.RefreshToken)

	examCalendarHandler := handlers.NewExamCalendarHandler()

	// Protected routes
	authRequired := router.Group("/api")
	authRequired.Use(campus.CampusAuthMiddleware())
	{
		// Current user
		authRequired.GET("/auth/me", handlers.GetCurrentUser)

		// Exam calendar routes, shared reads gated to either scheduling role
		examCalendarRoutes := authRequired.Group("/exam-calendar")
		examCalendarRoutes.Use(middleware.RoleMiddleware("jefe", "servicios"))
		{
			examCalendarRoutes.GET("/:program/:period/:evaluation", examCalendarHandler.GetCalendar)
			examCalendarRoutes.GET("/:program/:period/:evaluation/export", examCalendarHandler.ExportCalendar)
			examCalendarRoutes.POST("/sync-teaching-records", examCalendarHandler.SyncTeachingRecords)
		}

		// Generate/submit are the department head's operations
		examCalendarJefeRoutes := authRequired.Group("/exam-calendar")
		examCalendarJefeRoutes.Use(middleware.RoleMiddleware("jefe"))
		{
			examCalendarJefeRoutes.POST("/generate", examCalendarHandler.GenerateCalendar)
			examCalendarJefeRoutes.POST("/submit", examCalendarHandler.SubmitCalendar)
		}

		// Bulk approve/reject are the registrar's operations
		examCalendarServiciosRoutes := authRequired.Group("/exam-calendar")
		examCalendarServiciosRoutes.Use(middleware.RoleMiddleware("servicios"))
		{
			examCalendarServiciosRoutes.POST("/bulk-approve", examCalendarHandler.BulkApprove)
			examCalendarServiciosRoutes.POST("/bulk-reject", examCalendarHandler.BulkReject)
		}
	}

	// Start the server
	port := utils.GetEnvWithDefault("SERVER_PORT", "8080")

	log.Printf("Server running on port %s", port)
	err = router.Run(":" + port)
	if err != nil {
		log.Fatalf("Error starting server: %v", err)
		os.Exit(1)
	}
}
