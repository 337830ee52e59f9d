package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/lumina-app/backend/internal/config"
	"github.com/lumina-app/backend/internal/handlers"
	"github.com/lumina-app/backend/internal/logger"
	"github.com/lumina-app/backend/internal/middleware"
	"github.com/lumina-app/backend/internal/repository"
	"github.com/lumina-app/backend/internal/service"
	"github.com/lumina-app/backend/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
	logger.SetDefault(log)

	log.Info("starting lumina api server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	secretStore, err := repository.OpenSecretStore(cfg.Secrets.Path)
	if err != nil {
		return fmt.Errorf("failed to open secret store: %w", err)
	}
	defer secretStore.Close()

	// Initialize repositories
	moodRepo := repository.NewMoodRepository(supabaseClient)
	sleepRepo := repository.NewSleepRepository(supabaseClient)
	stressRepo := repository.NewStressRepository(supabaseClient)
	journalRepo := repository.NewJournalRepository(supabaseClient)

	// Initialize services
	trackingService := service.NewTrackingService(moodRepo, sleepRepo, stressRepo)
	journalService := service.NewJournalService(journalRepo, secretStore)
	insightsService := service.NewInsightsService(moodRepo, sleepRepo, stressRepo)

	// Initialize handlers
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	journalHandler := handlers.NewJournalHandler(journalService)
	insightsHandler := handlers.NewInsightsHandler(insightsService)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimit())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(middleware.Auth(supabaseClient))
	{
		// Mood check-ins
		protected.GET("/mood", trackingHandler.GetMoodEntries)
		protected.POST("/mood", trackingHandler.CreateMoodEntry)
		protected.DELETE("/mood/:id", trackingHandler.DeleteMoodEntry)

		// Sleep check-ins
		protected.GET("/sleep", trackingHandler.GetSleepEntries)
		protected.POST("/sleep", trackingHandler.CreateSleepEntry)
		protected.DELETE("/sleep/:id", trackingHandler.DeleteSleepEntry)

		// Stress check-ins
		protected.GET("/stress", trackingHandler.GetStressEntries)
		protected.POST("/stress", trackingHandler.CreateStressEntry)
		protected.DELETE("/stress/:id", trackingHandler.DeleteStressEntry)

		// Journal, stored encrypted at rest
		protected.GET("/journal", journalHandler.GetEntries)
		protected.POST("/journal", journalHandler.CreateEntry)
		protected.GET("/journal/:id", journalHandler.GetEntry)
		protected.PUT("/journal/:id", journalHandler.UpdateEntry)
		protected.DELETE("/journal/:id", journalHandler.DeleteEntry)

		// Insights computed from check-in history
		protected.GET("/insights/summary", insightsHandler.GetSummary)
		protected.GET("/insights/trends", insightsHandler.GetTrends)
		protected.GET("/insights/correlations", insightsHandler.GetCorrelations)
		protected.GET("/insights/patterns", insightsHandler.GetPatterns)
		protected.GET("/insights/distribution", insightsHandler.GetMoodDistribution)
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
