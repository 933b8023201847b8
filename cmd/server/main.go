package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blog-cms/internal/config"
	"blog-cms/internal/handler"
	"blog-cms/internal/infrastructure/database"
	"blog-cms/internal/logger"
	"blog-cms/internal/middleware"
	"blog-cms/internal/render"
	"blog-cms/internal/repository"
	"blog-cms/internal/service"
	"blog-cms/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Configure(cfg.LogLevel, cfg.IsDevelopment())

	// Connect to database
	db, err := database.NewMongo(context.Background(), database.MongoConfig{
		URI:            cfg.MongoURI,
		Database:       cfg.DBName,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			logger.Error("Database disconnect error",
				slog.String("error", err.Error()))
		}
	}()

	// Initialize repositories
	postRepo := repository.NewMongoPostRepository(db)
	imageRepo := repository.NewMongoImageRepository(db)

	// Initialize validator and renderer
	v := validator.NewValidator()
	renderer := render.NewRenderer()

	// Initialize services
	imageService, err := service.NewImageService(imageRepo, postRepo, v, cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		logger.Fatal("Failed to create image service",
			slog.String("error", err.Error()))
	}
	postService := service.NewPostService(postRepo, imageService, v, renderer)

	// Initialize handlers
	postHandler := handler.NewPostHandler(postService)
	imageHandler := handler.NewImageHandler(imageService)
	healthHandler := handler.NewHealthHandler(db)

	// Setup Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Processed uploads are served as static files
	router.Static("/uploads", cfg.UploadDir)

	// Content routes. The admin surface is unauthenticated; it is not
	// meant to face the public internet.
	posts := router.Group("/posts")
	{
		posts.GET("", postHandler.ListPosts)
		posts.GET("/:id", postHandler.GetPost)
		posts.GET("/slug/:slug", postHandler.GetPostBySlug)
		posts.POST("", postHandler.CreatePost)
		posts.PUT("/:id", postHandler.UpdatePost)
		posts.DELETE("/:id", postHandler.DeletePost)
		posts.POST("/:id/images", imageHandler.AttachImage)
		posts.GET("/:id/images", imageHandler.ListImages)
	}
	router.POST("/upload", imageHandler.Upload)
	router.DELETE("/images/:id", imageHandler.DeleteImage)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort),
			slog.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
