package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/forum-backend/internal/config"
	"github.com/emilythestrangee/forum-backend/internal/database"
	"github.com/emilythestrangee/forum-backend/internal/handlers"
	"github.com/emilythestrangee/forum-backend/internal/middleware"
	"github.com/emilythestrangee/forum-backend/internal/models"
)

type Server struct {
	cfg     config.Config
	raw     *database.Database
	db      database.Service
	handler *handlers.Handler
}

// NewServer wires the database, handlers and router into an http.Server.
func NewServer(cfg config.Config) (*http.Server, error) {
	// Plain connection first: fail fast if the database is unreachable.
	raw, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	handler := handlers.NewHandler(db.GetDB(), cfg)

	newServer := &Server{
		cfg:     cfg,
		raw:     raw,
		db:      db,
		handler: handler,
	}

	router := newServer.RegisterRoutes()

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", cfg.Port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server, nil
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	if !s.cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(s.recovery())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		stats := s.db.Health()
		if err := s.raw.DB.Ping(); err != nil {
			stats["status"] = "down"
			stats["error"] = err.Error()
		}
		c.JSON(http.StatusOK, stats)
	})

	requireAuth := middleware.Auth(s.cfg, s.resolveUser)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/status", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})

		// User routes
		users := api.Group("/users")
		{
			users.POST("/register", s.handler.User.Register)
			users.POST("/login", s.handler.User.Login)
			users.GET("/profile", requireAuth, s.handler.User.GetOwnProfile)
			users.GET("/profile/:userId", s.handler.User.GetProfile)
			users.POST("/editProfile", requireAuth, s.handler.User.EditProfile)
		}

		// Post routes (public reads)
		posts := api.Group("/posts")
		{
			posts.GET("/all", s.handler.Post.GetPosts)
			posts.GET("/:postId", s.handler.Post.GetPost)
			posts.POST("/new", requireAuth, s.handler.Post.CreatePost)
			posts.PUT("/:postId/edit", requireAuth, s.handler.Post.UpdatePost)
			posts.DELETE("/:postId/delete", requireAuth, s.handler.Post.DeletePost)
		}

		// Comment routes
		comments := api.Group("/comments")
		comments.Use(requireAuth)
		{
			comments.POST("/:postId/newComment", s.handler.Comment.CreateComment)
			comments.PUT("/:commentId/edit", s.handler.Comment.UpdateComment)
			comments.DELETE("/:commentId/delete", s.handler.Comment.DeleteComment)
		}

		// Vote routes
		votes := api.Group("/votes")
		votes.Use(requireAuth)
		{
			votes.POST("/post/:postId", s.handler.Vote.VotePost)
			votes.POST("/comment/:commentId", s.handler.Vote.VoteComment)
			votes.POST("/hasVoted/:contentId", s.handler.Vote.HasVoted)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not Found"})
	})

	return r
}

// resolveUser loads the account behind a verified token, including the
// hidden admin flag the authorization checks need.
func (s *Server) resolveUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.GetDB().WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// recovery converts panics into the error envelope, hiding the message
// outside development mode.
func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		message := "Internal Server Error"
		if s.cfg.IsDev() {
			message = fmt.Sprintf("%v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": message,
		})
	})
}
