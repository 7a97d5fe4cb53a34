// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	_ "videotube/docs" // swagger docs
	"videotube/internal/cache"
	"videotube/internal/config"
	"videotube/internal/database"
	"videotube/internal/media"
	"videotube/internal/middleware"
	"videotube/internal/models"
	"videotube/internal/repository"
	"videotube/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	uploader       media.Uploader
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	videoService        *service.VideoService
	commentService      *service.CommentService
	likeService         *service.LikeService
	playlistService     *service.PlaylistService
	subscriptionService *service.SubscriptionService
	tweetService        *service.TweetService
	dashboardService    *service.DashboardService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	uploader, err := media.NewMinioUploader(cfg)
	if err != nil {
		return nil, fmt.Errorf("media storage setup failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, cache.GetClient(), uploader)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
// redisClient may be nil.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, uploader media.Uploader) (*Server, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	if uploader == nil {
		return nil, errors.New("media uploader is required")
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		uploader:       uploader,
		promMiddleware: middleware.InitMetrics("videotube-api"),

		videoService:        service.NewVideoService(videoRepo, userRepo, uploader),
		commentService:      service.NewCommentService(commentRepo, videoRepo),
		likeService:         service.NewLikeService(likeRepo),
		playlistService:     service.NewPlaylistService(playlistRepo, videoRepo, userRepo),
		subscriptionService: service.NewSubscriptionService(subRepo, userRepo),
		tweetService:        service.NewTweetService(tweetRepo, userRepo),
		dashboardService:    service.NewDashboardService(videoRepo, likeRepo, subRepo),
	}, nil
}

// NewApp builds the Fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	bodyLimit := 4 * 1024 * 1024
	if s.config.UploadMaxSizeMB > 0 {
		bodyLimit = s.config.UploadMaxSizeMB * 1024 * 1024
	}

	app := fiber.New(fiber.Config{
		AppName:      "VideoTube API",
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler renders errors that escape handlers in the failure envelope.
// Fiber's own errors (unknown route, body too large) keep their status.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(models.ErrorResponse{
			StatusCode: fe.Code,
			Message:    fe.Message,
			Success:    false,
			Errors:     []string{},
		})
	}
	return models.RespondWithError(c, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Server span per request
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api/v1")
	api.Get("/healthcheck", s.HealthCheck)
	api.Get("/swagger/*", swagger.HandlerDefault)

	protected := api.Group("", middleware.AuthRequired(s.config.JWTSecret, s.redis))

	videos := protected.Group("/videos")
	videos.Get("/", s.ListVideos)
	videos.Post("/", s.PublishVideo)
	// Specific routes before generic /:videoId
	videos.Patch("/toggle/publish/:videoId", s.TogglePublish)
	videos.Get("/:videoId", s.GetVideo)
	videos.Patch("/:videoId", s.UpdateVideo)
	videos.Delete("/:videoId", s.DeleteVideo)

	comments := protected.Group("/comments")
	comments.Patch("/c/:commentId", s.UpdateComment)
	comments.Delete("/c/:commentId", s.DeleteComment)
	comments.Get("/:videoId", s.ListVideoComments)
	comments.Post("/:videoId", s.AddComment)

	likes := protected.Group("/likes")
	likes.Post("/toggle/v/:videoId", s.ToggleVideoLike)
	likes.Post("/toggle/c/:commentId", s.ToggleCommentLike)
	likes.Post("/toggle/t/:tweetId", s.ToggleTweetLike)
	likes.Get("/videos", s.ListLikedVideos)

	playlists := protected.Group("/playlist")
	playlists.Post("/", s.CreatePlaylist)
	playlists.Get("/user/:userId", s.ListUserPlaylists)
	playlists.Patch("/add/:videoId/:playlistId", s.AddVideoToPlaylist)
	playlists.Patch("/remove/:videoId/:playlistId", s.RemoveVideoFromPlaylist)
	playlists.Get("/:playlistId", s.GetPlaylist)
	playlists.Patch("/:playlistId", s.UpdatePlaylist)
	playlists.Delete("/:playlistId", s.DeletePlaylist)

	subscriptions := protected.Group("/subscriptions")
	subscriptions.Post("/c/:channelId", s.ToggleSubscription)
	subscriptions.Get("/c/:channelId/subscribers", s.ListChannelSubscribers)
	subscriptions.Get("/u/:subscriberId", s.ListSubscribedChannels)

	tweets := protected.Group("/tweets")
	tweets.Post("/", s.CreateTweet)
	tweets.Get("/user/:userId", s.ListUserTweets)
	tweets.Patch("/:tweetId", s.UpdateTweet)
	tweets.Delete("/:tweetId", s.DeleteTweet)

	dashboard := protected.Group("/dashboard")
	dashboard.Get("/stats", s.ChannelStats)
	dashboard.Get("/videos", s.ChannelVideos)
}

// HealthCheck reports that the API process is serving requests.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /healthcheck [get]
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return models.Respond(c, fiber.StatusOK, fiber.Map{"status": "OK"}, "Service is healthy")
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so only
// the database decides readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and listens until Shutdown is called.
func (s *Server) Start() error {
	s.app = s.NewApp()
	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
