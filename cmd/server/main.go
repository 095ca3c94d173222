package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/isfaaghyth/kotlinconf-app/internal/api/handlers"
	"github.com/isfaaghyth/kotlinconf-app/internal/api/middleware"
	"github.com/isfaaghyth/kotlinconf-app/internal/clock"
	"github.com/isfaaghyth/kotlinconf-app/internal/config"
	"github.com/isfaaghyth/kotlinconf-app/internal/crypto"
	"github.com/isfaaghyth/kotlinconf-app/internal/database"
	"github.com/isfaaghyth/kotlinconf-app/internal/models"
	"github.com/isfaaghyth/kotlinconf-app/internal/schedule"
	"github.com/isfaaghyth/kotlinconf-app/internal/vote"
	"github.com/isfaaghyth/kotlinconf-app/internal/websocket"
	"github.com/isfaaghyth/kotlinconf-app/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(config.Overrides{})
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}

	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}

	// Set Gin mode
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open database
	logger.Infof("Opening database: %s", cfg.DatabasePath)
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Errorf("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize JWT manager
	jwtManager, err := crypto.NewJWTManager(cfg.MasterSecret)
	if err != nil {
		logger.Errorf("Failed to create JWT manager: %v", err)
		os.Exit(1)
	}

	// The virtual clock is the single time authority for vote gating and
	// the public time endpoint. It starts tracking real time; operators
	// install overrides through POST /v1/time.
	virtualClock := clock.NewVirtualClock()
	voteGate := vote.NewGate(virtualClock)

	// Live update server
	liveServer := websocket.NewServer(jwtManager)
	defer liveServer.Close()

	// Session catalog backing the vote path
	catalog, err := schedule.NewCatalog(models.New(db.DB))
	if err != nil {
		logger.Errorf("Failed to create session catalog: %v", err)
		os.Exit(1)
	}

	// Background schedule synchronization
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.SessionizeURL != "" {
		syncer := schedule.NewSyncer(cfg.SessionizeURL, cfg.SyncInterval, cfg.ScheduleTimezone, db.DB, catalog, liveServer)
		go syncer.Run(ctx)
		logger.Infof("Schedule sync enabled: %s every %s", cfg.SessionizeURL, cfg.SyncInterval)
	} else {
		logger.Warnf("SESSIONIZE_URL not set - schedule sync disabled")
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Logging middleware
	router.Use(middleware.LoggingMiddleware())

	// Root endpoint - returns plain text for client validation
	router.GET("/", func(c *gin.Context) {
		c.String(200, "Welcome to the Conference Companion Server!")
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db.DB, jwtManager)
	userHandler := handlers.NewUserHandler(db.DB)
	sessionHandler := handlers.NewSessionHandler(db.DB)
	conferenceHandler := handlers.NewConferenceHandler(db.DB)
	favoritesHandler := handlers.NewFavoritesHandler(db.DB)
	votesHandler := handlers.NewVotesHandler(db.DB, catalog, voteGate)
	timeHandler := handlers.NewTimeHandler(virtualClock, liveServer)
	feedHandler := handlers.NewFeedHandler(db.DB, liveServer)

	voteLimiter := middleware.NewUserRateLimiter(1, 5)

	// Public routes (no auth required)
	v1 := router.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.PostRegister)
		v1.GET("/time", timeHandler.GetTime)
	}

	// Protected routes (auth required)
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(jwtManager))
	{
		// User
		protected.GET("/user", userHandler.GetProfile)
		protected.POST("/user/profile", userHandler.UpdateProfile)

		// Conference data
		protected.GET("/conference", conferenceHandler.GetConference)
		protected.GET("/sessions", sessionHandler.ListSessions)
		protected.GET("/sessions/:id", sessionHandler.GetSession)

		// Favorites
		protected.GET("/favorites", favoritesHandler.ListFavorites)
		protected.POST("/favorites", favoritesHandler.AddFavorite)
		protected.DELETE("/favorites/:sessionId", favoritesHandler.DeleteFavorite)

		// Votes
		protected.GET("/votes", votesHandler.ListVotes)
		protected.POST("/votes", middleware.RateLimitMiddleware(voteLimiter), votesHandler.PostVote)
		protected.DELETE("/votes/:sessionId", votesHandler.DeleteVote)

		// Feed
		protected.GET("/feed", feedHandler.ListFeed)
	}

	// Admin routes (admin secret required)
	admin := v1.Group("")
	admin.Use(middleware.AdminMiddleware(cfg.AdminSecret))
	{
		admin.POST("/time", timeHandler.SetTime)
		admin.POST("/feed", feedHandler.PostFeed)
		admin.GET("/votes/summary/:sessionId", votesHandler.GetVoteSummary)
	}

	// Live updates (token checked during upgrade)
	router.GET("/v1/updates", liveServer.HandleWebSocket)

	// Start HTTP server
	logger.Infof("Conference Companion Server starting on http://localhost%s", cfg.Addr)
	logger.Infof("Database: %s", cfg.DatabasePath)

	if err := router.Run(cfg.Addr); err != nil {
		logger.Errorf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
