// @title NagarAlert API
// @version 1.0
// @description Civic incident reporting: AI-verified citizen reports, official triage, live updates
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/xyz-asif/nagaralert/docs"
	"github.com/xyz-asif/nagaralert/internal/config"
	"github.com/xyz-asif/nagaralert/internal/database"
	"github.com/xyz-asif/nagaralert/internal/features/verify"
	"github.com/xyz-asif/nagaralert/internal/live"
	"github.com/xyz-asif/nagaralert/internal/middleware"
	"github.com/xyz-asif/nagaralert/internal/pkg/cloudinary"
	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
	"github.com/xyz-asif/nagaralert/internal/pkg/response"
	"github.com/xyz-asif/nagaralert/internal/pkg/s3"
	"github.com/xyz-asif/nagaralert/internal/pkg/storage"
	"github.com/xyz-asif/nagaralert/internal/routes"
)

func main() {
	cfg := config.Load()

	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		logger.SetDefault(logger.NewProduction(level))
	} else {
		logger.SetDefault(logger.New(level))
	}
	defer logger.Default().Sync()

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fb, err := database.ConnectFirebase(ctx, cfg.FirebaseServiceAccountPath, cfg.FirebaseDBURL)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase: %v", err)
	}

	var mongoDB *database.MongoDB
	switch cfg.StoreDriver {
	case config.StoreMongo:
		mongoDB, err = database.Connect(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB: %v", err)
		}
		defer mongoDB.Disconnect(context.Background())
	default:
		if fb.DB == nil {
			logger.Fatal("FIREBASE_DB_URL is required when STORE_DRIVER=%s", config.StoreFirebase)
		}
	}

	uploader, err := newUploader(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize %s storage: %v", cfg.StorageDriver, err)
	}

	// Keep the interface nil when Gemini is off; the handlers check for it
	var verifier verify.Verifier
	if cfg.GeminiAPIKey != "" {
		gemini, err := verify.NewGeminiVerifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini: %v", err)
		}
		verifier = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI verification disabled")
	}

	var relay live.Relay
	if cfg.RedisAddr != "" {
		redisRelay, err := live.NewRedisRelay(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisChannel)
		if err != nil {
			logger.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisRelay.Close()
		relay = redisRelay
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURL))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, map[string]interface{}{
			"status": "ok",
			"store":  cfg.StoreDriver,
			"time":   time.Now().Unix(),
		})
	})

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
			ginSwagger.PersistAuthorization(true),
		),
	)

	hub := routes.SetupRoutes(router, routes.Deps{
		Config:   cfg,
		Firebase: fb,
		Mongo:    mongoDB,
		Uploader: uploader,
		Verifier: verifier,
		Relay:    relay,
	})

	hubCtx, stopHub := context.WithCancel(context.Background())
	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		hub.Run(hubCtx)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting on port %s (store=%s, storage=%s)", cfg.Port, cfg.StoreDriver, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Closing subscriptions first lets websocket writers exit before Shutdown waits on them
	stopHub()
	<-hubDone

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

func newUploader(ctx context.Context, cfg *config.Config) (storage.Uploader, error) {
	if cfg.StorageDriver == config.StorageS3 {
		return s3.NewService(ctx, s3.ClientConfig{
			Bucket:        cfg.S3Bucket,
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	}
	return cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
}
