// main.go
package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/princev89/chai-backend/auth"
	"github.com/princev89/chai-backend/httpx"
	"github.com/princev89/chai-backend/internal/platform"
	"github.com/princev89/chai-backend/media"
	"github.com/princev89/chai-backend/videos"
	"gorm.io/gorm"
)

type Server struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
}

func NewServer() (*Server, error) {
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()

	mediaStore, err := media.NewS3Store(context.Background())
	if err != nil {
		return nil, err
	}

	router := gin.Default()

	// CORS for the frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", os.Getenv("FRONTEND_URL"))
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	server := &Server{
		DB:     db,
		Redis:  rdb,
		Router: router,
	}

	server.setupRoutes(mediaStore)

	return server, nil
}

func (s *Server) setupRoutes(mediaStore media.Store) {
	// Health check (no auth required)
	s.Router.GET("/health", func(c *gin.Context) {
		sqlDB, err := s.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}

		if err := sqlDB.Ping(); err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"status":   "healthy",
			"database": "connected",
		})
	})

	s.Router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ChaiTube API v1"})
	})

	videoHandler := videos.NewHandler(videos.NewGormStore(s.DB), mediaStore, s.Redis)

	// All video routes require a resolved caller identity
	videoRoutes := s.Router.Group("/api/v1/videos")
	videoRoutes.Use(auth.Middleware(s.DB))
	{
		videoRoutes.GET("", httpx.Wrap(videoHandler.ListVideos))
		videoRoutes.POST("", httpx.Wrap(videoHandler.PublishAVideo))
		videoRoutes.GET("/:videoId", httpx.Wrap(videoHandler.GetVideoByID))
		videoRoutes.PATCH("/:videoId", httpx.Wrap(videoHandler.UpdateVideo))
		videoRoutes.DELETE("/:videoId", httpx.Wrap(videoHandler.DeleteVideo))
		videoRoutes.PATCH("/toggle/publish/:videoId", httpx.Wrap(videoHandler.TogglePublishStatus))
	}
}

func (s *Server) Run() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	return s.Router.Run(":" + port)
}

func main() {
	server, err := NewServer()
	if err != nil {
		log.Fatal("Failed to create server:", err)
	}

	if err := server.Run(); err != nil {
		log.Fatal("Failed to run server:", err)
	}
}
