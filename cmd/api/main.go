package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lifeline-ai/backend/internal/adapters/providers/geolocation"
	"github.com/lifeline-ai/backend/internal/adapters/providers/hospitals"
	"github.com/lifeline-ai/backend/internal/adapters/triage"
	"github.com/lifeline-ai/backend/internal/api/handlers"
	"github.com/lifeline-ai/backend/internal/api/routes"
	"github.com/lifeline-ai/backend/internal/application/services"
	"github.com/lifeline-ai/backend/internal/domain/providers"
	"github.com/lifeline-ai/backend/internal/infrastructure/clients/openai"
	"github.com/lifeline-ai/backend/internal/infrastructure/observability"
	"github.com/lifeline-ai/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env, cfg.Logging.Level)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Hospital lookup wiring
	geoProvider := geolocation.NewHaversineProvider()
	directory := hospitals.NewStaticDirectory()
	hospitalService := services.NewHospitalFinderService(directory, geoProvider, cfg.Hospital)

	// Triage pipeline: rule-based strategies always exist; when the AI
	// client is configured it becomes the primary with rule fallback.
	var (
		classifier  providers.EmergencyClassifier  = triage.NewRuleClassifier()
		scorer      providers.SeverityScorer       = triage.NewRuleScorer(cfg.Triage)
		generator   providers.InstructionGenerator = triage.NewTemplateGenerator()
		transcriber providers.SpeechTranscriber
		analyzer    providers.ImageAnalyzer
	)

	if cfg.OpenAI.Enabled && cfg.OpenAI.APIKey != "" {
		aiClient, err := openai.NewClient(&cfg.OpenAI, cfg.Triage, metrics)
		if err != nil {
			log.Printf("Warning: Failed to initialize AI client, using rule-based triage: %v", err)
		} else {
			classifier = triage.NewFallbackClassifier(aiClient, classifier, metrics)
			scorer = triage.NewFallbackScorer(aiClient, scorer, metrics)
			generator = triage.NewFallbackGenerator(aiClient, generator, metrics)
			transcriber = aiClient
			analyzer = aiClient
			log.Println("AI triage enabled with rule-based fallback")
		}
	}

	triageService := services.NewTriageService(classifier, scorer, generator, hospitalService, cfg.Triage)

	// Initialize handlers
	emergencyHandler := handlers.NewEmergencyHandler(triageService)
	hospitalHandler := handlers.NewHospitalHandler(hospitalService)
	voiceHandler := handlers.NewVoiceHandler(transcriber, triageService, cfg.Voice)
	imageHandler := handlers.NewImageHandler(analyzer, triageService, cfg.Image)

	// Set up router
	router := routes.NewRouter(
		emergencyHandler,
		hospitalHandler,
		voiceHandler,
		imageHandler,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
