package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"newsbrief-backend/config"
	"newsbrief-backend/database"
	"newsbrief-backend/handlers"
	"newsbrief-backend/scheduler"
	"newsbrief-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var fetchCategories []string

var rootCmd = &cobra.Command{
	Use:   "newsbrief-backend",
	Short: "AI-curated news briefing service",
	Long: `Fetches news by category, selects and summarizes the most important
stories with an LLM, and serves ranked briefings over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server with the daily refresh scheduler",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run the news pipeline once and exit",
	Run: func(cmd *cobra.Command, args []string) {
		runFetch()
	},
}

func init() {
	fetchCmd.Flags().StringSliceVar(&fetchCategories, "categories", nil, "Categories to process (default: all)")
	rootCmd.AddCommand(serveCmd, fetchCmd)
}

// app holds the wired service graph
type app struct {
	cfg      *config.Config
	handler  *handlers.BriefingHandler
	pipeline *services.PipelineService
}

func buildApp() *app {
	cfg := config.LoadConfig()

	if err := database.InitDB(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := database.GetDB()

	llm, err := services.NewLLMProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to create LLM provider: %v", err)
	}

	provider, err := services.NewNewsProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to create news provider: %v", err)
	}

	freshness := services.NewFreshnessService(cfg)
	relevance := services.NewRelevanceService(cfg)
	ranking := services.NewRankingService(cfg, freshness, relevance)
	news := services.NewNewsService(cfg, db, freshness)
	serving := services.NewServingService(cfg, news, freshness, relevance, ranking)
	pipeline := services.NewPipelineService(cfg, provider, llm, db)

	return &app{
		cfg:      cfg,
		handler:  handlers.NewBriefingHandler(cfg, db, serving, news, pipeline),
		pipeline: pipeline,
	}
}

func setupRouter(h *handlers.BriefingHandler) *gin.Engine {
	router := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	router.GET("/health", h.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/categories", h.GetCategories)
		v1.POST("/briefing", h.GenerateBriefing)
		v1.GET("/briefing/status/:categories", h.GetBriefingStatus)
		v1.POST("/briefing/refresh", h.RefreshBriefing)
		v1.GET("/articles/:id", h.GetArticleByID)
		v1.GET("/stats", h.GetStats)
	}

	return router
}

func runServer() {
	app := buildApp()

	sched := scheduler.NewScheduler(app.cfg, app.pipeline)
	sched.Start()
	defer sched.Stop()

	router := setupRouter(app.handler)

	addr := ":" + app.cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func runFetch() {
	app := buildApp()

	categories := fetchCategories
	if len(categories) == 0 {
		categories = app.cfg.AvailableCategories
	}

	opts := services.DefaultPipelineOptions(app.cfg)
	result, err := app.pipeline.ProcessCategories(context.Background(), categories, opts)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	log.Printf("Processed %d articles (%d summarized, %d failed) in %.2fs",
		result.TotalCount, result.SuccessCount, result.ErrorCount, result.ProcessingTime)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
