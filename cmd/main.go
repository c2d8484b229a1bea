package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Aaryan-549/CivicPulse/internal/api/handler"
	"github.com/Aaryan-549/CivicPulse/internal/lifecycle"
	"github.com/Aaryan-549/CivicPulse/internal/media"
	"github.com/Aaryan-549/CivicPulse/internal/mlclient"
	"github.com/Aaryan-549/CivicPulse/internal/models"
	"github.com/Aaryan-549/CivicPulse/internal/notifyhub"
	"github.com/Aaryan-549/CivicPulse/internal/storage"
	"github.com/Aaryan-549/CivicPulse/internal/telegram"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupDependencies() (*gorm.DB, *redis.Client) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "civicpulse"),
		envOr("DB_PORT", "5432"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Worker{},
		&models.Complaint{},
		&models.Media{},
		&models.StatusHistory{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

// setupMediaStore returns the S3 uploader, or the disabled one when no
// bucket is configured. A disabled store means complaints file without
// images, which is the same degraded path as a store outage.
func setupMediaStore() media.Uploader {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		log.Println("Warning: S3_BUCKET not set, media uploads disabled")
		return media.Disabled{}
	}
	store, err := media.NewS3Store(context.Background(), bucket,
		envOr("AWS_REGION", "ap-south-1"), os.Getenv("MEDIA_BASE_URL"))
	if err != nil {
		log.Printf("Warning: media store unavailable, uploads disabled: %v", err)
		return media.Disabled{}
	}
	return store
}

// corsConfig is the cross-origin policy: explicit origins from CORS_ORIGINS
// (comma-separated), or any origin when unset so mobile and local admin
// clients can reach a development server.
func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowCredentials = true
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowOriginFunc = func(string) bool { return true }
	}
	return cfg
}

func main() {
	log.Println("Starting CivicPulse Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set!")
	}

	db, rdb := setupDependencies()
	store := storage.NewStorageService(db, rdb)

	hub := notifyhub.NewHub(rdb)
	engine := lifecycle.NewService(store, hub)
	ml := mlclient.New(envOr("ML_SERVICE_URL", "http://localhost:8000"))
	uploader := setupMediaStore()

	go hub.Run()

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatal("TELEGRAM_CHAT_ID must be set alongside TELEGRAM_BOT_TOKEN")
		}
		alerter, err := telegram.NewAlerter(token, chatID)
		if err != nil {
			log.Fatalf("Failed to start Telegram alerts: %v", err)
		}
		alerter.Run()
		hub.RegisterCh <- alerter
	}

	h := handler.NewHandler(store, engine, hub, ml, uploader, []byte(jwtSecret))

	r := gin.Default()
	r.Use(cors.New(corsConfig()))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Civic Pulse API Server",
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":       "/api/auth",
				"complaints": "/api/complaints",
				"workers":    "/api/workers",
				"users":      "/api/users",
				"media":      "/api/media",
				"analytics":  "/api/analytics",
			},
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"ml":        ml.Healthy(c.Request.Context()),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/user/register", h.RegisterUser)
	auth.POST("/user/login", h.LoginUser)
	auth.POST("/admin/login", h.LoginAdmin)
	auth.POST("/refresh", h.RefreshToken)

	complaints := api.Group("/complaints")
	complaints.POST("/civic", h.AuthenticateUser(), h.CreateCivicComplaint)
	complaints.POST("/traffic", h.AuthenticateUser(), h.CreateTrafficComplaint)
	complaints.GET("", h.AuthenticateAdmin(), h.GetAllComplaints)
	complaints.GET("/stats", h.AuthenticateAdmin(), h.GetComplaintStats)
	complaints.GET("/user", h.AuthenticateUser(), h.GetUserComplaints)
	complaints.GET("/category/:category", h.AuthenticateAdmin(), h.GetComplaintsByCategory)
	complaints.GET("/:id", h.AuthenticateAny(), h.GetComplaintByID)
	complaints.GET("/:id/history", h.AuthenticateAny(), h.GetComplaintHistory)
	complaints.PUT("/:id/assign", h.AuthenticateAdmin(), h.AssignWorker)
	complaints.PUT("/:id/status", h.AuthenticateAdmin(), h.UpdateComplaintStatus)
	complaints.POST("/:id/reject", h.AuthenticateAdmin(), h.RejectComplaint)
	complaints.DELETE("/:id", h.AuthenticateAdmin(), h.DeleteComplaint)

	workers := api.Group("/workers", h.AuthenticateAdmin())
	workers.GET("", h.GetAllWorkers)
	workers.POST("", h.CreateWorker)
	workers.GET("/:id", h.GetWorkerByID)
	workers.PUT("/:id", h.UpdateWorker)
	workers.PUT("/:id/status", h.UpdateWorkerStatus)
	workers.GET("/:id/complaints", h.GetWorkerComplaints)

	users := api.Group("/users")
	users.GET("/profile", h.AuthenticateUser(), h.GetUserProfile)
	users.GET("", h.AuthenticateAdmin(), h.GetAllUsers)
	users.GET("/:id", h.AuthenticateAdmin(), h.GetUserByID)
	users.GET("/:id/complaints", h.AuthenticateAdmin(), h.GetUserComplaintsByID)

	mediaRoutes := api.Group("/media")
	mediaRoutes.POST("/upload", h.AuthenticateAny(), h.UploadMedia)

	analytics := api.Group("/analytics", h.AuthenticateAdmin())
	analytics.GET("/heatmap", h.GetHeatmapData)
	analytics.GET("/dashboard", h.GetDashboardStats)
	analytics.GET("/trends", h.GetTrendsData)
	analytics.GET("/categories", h.GetCategories)

	r.GET("/ws", h.ServeWebSocket)

	server := &http.Server{
		Addr:           ":" + envOr("PORT", "5000"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
