package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/waseem96525/GPStrackingapp/internal/config"
	"github.com/waseem96525/GPStrackingapp/internal/handler"
	"github.com/waseem96525/GPStrackingapp/internal/middleware"
	"github.com/waseem96525/GPStrackingapp/internal/model"
	"github.com/waseem96525/GPStrackingapp/internal/repository"
	"github.com/waseem96525/GPStrackingapp/internal/service"
	"github.com/waseem96525/GPStrackingapp/internal/ws"
	"github.com/waseem96525/GPStrackingapp/migrations"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// @title           GPS Tracking API
// @version         1.0
// @description     Real-time GPS tracking API with Go, Gin, WebSocket broadcast and PostgreSQL.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /api/v1

func main() {
	// ==================== Load Config ====================
	cfg := config.Load()
	log.Printf("🚗 Starting GPS Tracking Server [env=%s]", cfg.App.Env)

	// ==================== Database (PostgreSQL) ====================
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.App.Env == "production" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to PostgreSQL")

	// ==================== Run Migrations ====================
	if err := migrations.Run(cfg.DB.URL()); err != nil {
		log.Printf("⚠️  Migration warning: %v", err)
		log.Println("📦 Falling back to GORM AutoMigrate...")
		// Fallback to AutoMigrate if migration files fail
		if err := db.AutoMigrate(&model.Device{}, &model.Location{}); err != nil {
			log.Fatalf("❌ Failed to migrate database: %v", err)
		}
	}
	log.Println("✅ Database migrated successfully")

	// ==================== Redis (optional, cross-instance broadcast) ====================
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("⚠️  Redis not available: %v (broadcast is local-only)", err)
		rdb = nil
	} else {
		log.Println("✅ Connected to Redis")
	}

	// ==================== Initialize Layers ====================
	// Repositories
	deviceRepo := repository.NewDeviceRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	// WebSocket Hub (broadcast channel for accepted samples)
	hub := ws.NewHub(rdb)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go hub.Run(hubCtx)

	// Services
	trackingService := service.NewTrackingService(deviceRepo, locationRepo, hub)
	deviceService := service.NewDeviceService(deviceRepo)

	// Handlers
	locationHandler := handler.NewLocationHandler(trackingService)
	vehicleHandler := handler.NewVehicleHandler(deviceService)
	wsHandler := handler.NewWSHandler(hub)

	// ==================== Gin Router ====================
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Swagger configuration
	// Serve swagger.json at /docs/swagger.json to avoid conflict with /swagger/* wildcard
	router.StaticFile("/docs/swagger.json", "./docs/swagger.json")
	url := ginSwagger.URL("/docs/swagger.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))

	// Global middleware
	router.Use(middleware.CORSMiddleware(cfg.CORS.Origins))

	// Dashboard / mobile pages
	router.Static("/app", cfg.Static.Dir)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"server":    "GPS Tracking API",
			"observers": hub.ClientCount(),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// ==================== API Routes ====================
	api := router.Group("/api/v1")
	{
		// Vehicles
		api.POST("/vehicles/register", vehicleHandler.Register)
		api.GET("/vehicles", vehicleHandler.List)
		api.DELETE("/vehicles/:device_id", vehicleHandler.Delete)

		// Locations
		api.POST("/location", locationHandler.SubmitLocation)
		api.GET("/location/:device_id/latest", locationHandler.GetLatest)
		api.GET("/location/:device_id/history", locationHandler.GetHistory)
		api.GET("/locations/latest", locationHandler.GetLatestAll)
	}

	// WebSocket endpoint (live location_update stream)
	router.GET("/ws", wsHandler.HandleWebSocket)

	// ==================== Start Server ====================
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	log.Printf("📡 GPS Tracking API running on http://0.0.0.0:%s", cfg.App.Port)
	log.Printf("🗺️  Dashboard: http://0.0.0.0:%s/app/dashboard.html", cfg.App.Port)
	log.Printf("📋 API docs: http://0.0.0.0:%s/swagger/index.html", cfg.App.Port)
	log.Printf("🔌 WebSocket: ws://0.0.0.0:%s/ws", cfg.App.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	// Give ongoing requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	hubCancel()
	log.Println("✅ Server exited gracefully")
}
