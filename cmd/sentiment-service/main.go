package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reddit-stock-sentiment/internal/sentiment/config"
	delivery "reddit-stock-sentiment/internal/sentiment/delivery/http"
	_ "reddit-stock-sentiment/internal/sentiment/docs"
	"reddit-stock-sentiment/internal/sentiment/repository"
	"reddit-stock-sentiment/internal/sentiment/service"
	"reddit-stock-sentiment/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the sentiment service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is optional
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Sentiment Service", logger.Field("name", cfg.App.Name))

	// Initialize repositories
	redditRepo := repository.NewRedditRepository(cfg, appLogger)

	var sentimentRepo repository.SentimentRepository
	switch cfg.Analyzer.Provider {
	case "", "vader":
		sentimentRepo = repository.NewVaderSentimentRepository()
	case "gemini":
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		sentimentRepo = repository.NewGeminiSentimentRepository(cfg, appLogger, genAiClient.Models)
	default:
		appLogger.Fatal("Invalid analyzer provider specified in config", logger.StringField("provider", cfg.Analyzer.Provider))
	}
	appLogger.Info("Sentiment analyzer selected", logger.StringField("provider", cfg.Analyzer.Provider))

	// Initialize services
	sentimentSvc := service.NewSentimentService(redditRepo, sentimentRepo, appLogger)

	// Initialize Echo server
	e, err := delivery.NewServer(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize HTTP server", logger.ErrorField(err))
	}

	// Initialize handlers and routes
	sentimentHandler := delivery.NewSentimentHandler(sentimentSvc, appLogger)
	sentimentHandler.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Reddit Stock Sentiment API
// @version 1.0
// @description Scores the sentiment of Reddit posts mentioning a stock ticker.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:   "sentiment-service",
		Short: "Reddit stock sentiment analysis service",
	}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-sentiment.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing sentiment-service CLI: %s\n", err)
		os.Exit(1)
	}
}
