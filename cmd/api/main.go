package main

import (
	"log"
	"os"

	_ "vacationhub/api/swagger" // swagger docs
	"vacationhub/internal/database"
	"vacationhub/internal/handler"
	"vacationhub/internal/middleware"
	"vacationhub/internal/repository"
	"vacationhub/internal/service"
	"vacationhub/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Vacation Hub API
// @version         1.0
// @description     Vacation request management: submission, approval workflow and balance tracking.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	vacationRepo := repository.NewVacationRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	typeRepo := repository.NewVacationTypeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, wsHub)
	userService := service.NewUserService(userRepo, auditRepo, txManager)
	vacationService := service.NewVacationService(vacationRepo, userRepo, typeRepo, auditRepo, txManager, notificationService)
	balanceService := service.NewBalanceService(userRepo, vacationRepo)
	departmentService := service.NewDepartmentService(departmentRepo, auditRepo, txManager)
	typeService := service.NewVacationTypeService(typeRepo, auditRepo, txManager)
	statisticsService := service.NewStatisticsService(db)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	vacationHandler := handler.NewVacationHandler(vacationService, balanceService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	typeHandler := handler.NewVacationTypeHandler(typeService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	api := router.Group("")
	userHandler.RegisterRoutes(api)
	vacationHandler.RegisterRoutes(api)
	departmentHandler.RegisterRoutes(api)
	typeHandler.RegisterRoutes(api)
	notificationHandler.RegisterRoutes(api)
	statisticsHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
