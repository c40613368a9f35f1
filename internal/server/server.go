package server

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/cavedevelopers/finance-docs/internal/constants"
	"github.com/cavedevelopers/finance-docs/internal/handlers"
	"github.com/cavedevelopers/finance-docs/internal/logger"
	"github.com/cavedevelopers/finance-docs/internal/middleware"
	"github.com/cavedevelopers/finance-docs/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handler Definitions
var (
	healthHandler   *handlers.HealthHandler
	documentHandler *handlers.DocumentHandler

	commonServices *handlers.CommonServices
)

// InitializeHandlers wires services and handlers from environment
// configuration. Must run before SetupRouter.
func InitializeHandlers() {
	// Load environment variables from .env file for local development
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = constants.StageLocal
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", stage)
	}
	if !constants.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			stage, constants.StageProd, constants.StageDev, constants.StageLocal)
	}

	logger.InitLogger(stage)
	logger.Info("Initializing handlers for stage", zap.String("stage", stage))

	if stage == constants.StageProd {
		gin.SetMode(gin.ReleaseMode)
	}

	totalsService := services.NewTotalsService(logger.Log)
	paymentService := services.NewPaymentService(logger.Log)
	generatorService := services.NewGeneratorService(totalsService, paymentService, logger.Log)
	recomputeService := services.NewRecomputeService(generatorService, logger.Log)

	fromEmail := os.Getenv("FROM_EMAIL")
	if fromEmail == "" {
		fromEmail = "billing@cavedevelopers.in"
	}
	fromName := os.Getenv("FROM_NAME")
	if fromName == "" {
		fromName = "Cavedevelopers Finance Desk"
	}
	emailService := services.NewEmailService(os.Getenv("RESEND_API_KEY"), fromEmail, fromName, logger.Log)

	commonServices = handlers.NewCommonServices(logger.Log)
	healthHandler = handlers.NewHealthHandler()
	documentHandler = handlers.NewDocumentHandler(commonServices, generatorService, recomputeService, emailService, logger.Log)
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(configureCORS())
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware())

	rps := 10
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			rps = parsed
		}
	}
	rateLimiter := middleware.NewRateLimiter(rps, rps*2)
	router.Use(rateLimiter.Middleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		documents := v1.Group("/documents")
		{
			documents.POST("/generate", documentHandler.GenerateDocument)
			documents.POST("/preview", documentHandler.SubmitPreview)
			documents.GET("/preview", documentHandler.GetPreview)
			documents.POST("/send", documentHandler.SendDocument)
		}
	}

	return router
}

// configureCORS builds the CORS middleware from environment variables.
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	originsEnv := os.Getenv("ALLOWED_ORIGINS")
	if originsEnv == "" {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Correlation-ID"}
	corsConfig.ExposeHeaders = []string{"X-Correlation-ID", "Retry-After"}
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
