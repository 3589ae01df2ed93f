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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	firebaseclient "github.com/hibi-app/hibi-server/internal/backend/firebase"
	"github.com/hibi-app/hibi-server/internal/config"
	"github.com/hibi-app/hibi-server/internal/db"
	"github.com/hibi-app/hibi-server/internal/diary"
	"github.com/hibi-app/hibi-server/internal/handlers"
	"github.com/hibi-app/hibi-server/internal/imaging"
	"github.com/hibi-app/hibi-server/internal/middleware"
	"github.com/hibi-app/hibi-server/internal/sessions"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalw("failed to load configuration", "error", err)
	}

	ctx := context.Background()

	// Initialize the Firebase backend (auth, Firestore documents, Storage objects)
	fb, err := firebaseclient.New(ctx, cfg)
	if err != nil {
		logger.Fatalw("failed to initialize Firebase", "error", err)
	}
	defer fb.Close()

	// Initialize Redis for the calendar month cache
	redisClient, err := db.InitRedis(cfg)
	if err != nil {
		logger.Fatalw("failed to initialize Redis", "error", err)
	}
	defer redisClient.Close()

	calendarIndex := diary.NewCalendarIndex(fb, redisClient, cfg.CalendarCacheTTL, logger)
	resizer := imaging.NewResizer(cfg.MaxImageWidth)

	sessionManager := sessions.NewManager(fb, fb, resizer, calendarIndex, cfg.SessionIdleTimeout, logger)
	if err := sessionManager.StartSweeper(); err != nil {
		logger.Fatalw("failed to start session sweeper", "error", err)
	}
	defer sessionManager.StopSweeper()

	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// CORS for the web client
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Request-ID, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(fb, sessionManager, logger)
	diaryHandler := handlers.NewDiaryHandler(sessionManager, logger)
	calendarHandler := handlers.NewCalendarHandler(calendarIndex, logger)

	// Define routes
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthMiddleware(fb), authHandler.Logout)
		}

		// Protected diary routes
		d := v1.Group("/diary")
		d.Use(middleware.AuthMiddleware(fb))
		{
			d.POST("/select-date", diaryHandler.SelectDate)
			d.POST("/today", diaryHandler.Today)
			d.POST("/edit", diaryHandler.Edit)
			d.POST("/save", diaryHandler.Save)
			d.POST("/delete", diaryHandler.Delete)
			d.POST("/add-images", diaryHandler.AddImages)
			d.POST("/remove-image", diaryHandler.RemoveImage)
		}

		calendar := v1.Group("/calendar")
		calendar.Use(middleware.AuthMiddleware(fb))
		{
			calendar.POST("/month", calendarHandler.Month)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Infow("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give a 5 second timeout for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalw("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
