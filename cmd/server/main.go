package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/zombar/claritylens/internal/ai"
	"github.com/zombar/claritylens/internal/analyzer"
	"github.com/zombar/claritylens/internal/api"
	"github.com/zombar/claritylens/internal/database"
	"github.com/zombar/claritylens/internal/metrics"
	"github.com/zombar/claritylens/internal/queue"
	"github.com/zombar/claritylens/internal/tracing"
	"github.com/zombar/claritylens/pkg/logging"
)

func main() {
	// Setup structured logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env if present; real env vars take precedence
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded configuration from .env")
	}

	logger.Info("claritylens service initializing", "version", "1.0.0")

	// Initialize tracing
	tp, err := tracing.InitTracer("claritylens")
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("error shutting down tracer", "error", err)
			}
		}()
		logger.Info("tracing initialized successfully")
	}

	// Get default values from environment variables, with fallbacks
	portDefault := getEnv("PORT", "8080")
	dbPathDefault := getEnv("DB_PATH", "claritylens.db")
	redisAddrDefault := getEnv("REDIS_ADDR", "localhost:6379")
	aiBackendDefault := getEnv("AI_BACKEND", "none")
	openaiKeyDefault := getEnv("OPENAI_API_KEY", "")
	openaiModelDefault := getEnv("OPENAI_MODEL", ai.DefaultModel)
	ollamaURLDefault := getEnv("OLLAMA_URL", "http://localhost:11434")
	ollamaModelDefault := getEnv("OLLAMA_MODEL", ai.DefaultOllamaModel)
	concurrencyDefault := getEnvInt("WORKER_CONCURRENCY", 4)

	var (
		port        = flag.String("port", portDefault, "Server port (env: PORT)")
		dbPath      = flag.String("db", dbPathDefault, "Database file path (env: DB_PATH)")
		redisAddr   = flag.String("redis", redisAddrDefault, "Redis address for the task queue (env: REDIS_ADDR)")
		aiBackend   = flag.String("ai-backend", aiBackendDefault, "AI enhancement backend: openai, ollama or none (env: AI_BACKEND)")
		openaiKey   = flag.String("openai-key", openaiKeyDefault, "OpenAI API key (env: OPENAI_API_KEY)")
		openaiModel = flag.String("openai-model", openaiModelDefault, "OpenAI model to use (env: OPENAI_MODEL)")
		ollamaURL   = flag.String("ollama-url", ollamaURLDefault, "Ollama API URL (env: OLLAMA_URL)")
		ollamaModel = flag.String("ollama-model", ollamaModelDefault, "Ollama model to use (env: OLLAMA_MODEL)")
		concurrency = flag.Int("concurrency", concurrencyDefault, "Worker concurrency (env: WORKER_CONCURRENCY)")
	)
	flag.Parse()

	// Initialize database; migrations run inside New
	db, err := database.New(*dbPath)
	if err != nil {
		logger.Error("failed to initialize database", "error", err, "database_path", *dbPath)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize metrics
	m := metrics.New("claritylens")

	// Select the AI enhancement backend
	var enhancer analyzer.Enhancer
	switch *aiBackend {
	case "openai":
		client, err := ai.NewClient(*openaiKey, ai.WithModel(*openaiModel))
		if err != nil {
			logger.Warn("failed to initialize OpenAI client, continuing without AI enhancement",
				"error", err,
				"model", *openaiModel,
			)
		} else {
			logger.Info("OpenAI client initialized", "model", *openaiModel)
			enhancer = client
		}
	case "ollama":
		client, err := ai.NewOllamaClient(*ollamaURL, *ollamaModel)
		if err != nil {
			logger.Warn("failed to initialize Ollama client, continuing without AI enhancement",
				"error", err,
				"ollama_url", *ollamaURL,
				"ollama_model", *ollamaModel,
			)
		} else {
			logger.Info("Ollama client initialized", "model", *ollamaModel, "url", *ollamaURL)
			enhancer = client
		}
	default:
		logger.Info("AI enhancement disabled")
	}

	// The HTTP layer runs only rule-based analysis; enhancement happens
	// in the worker.
	textAnalyzer := analyzer.New(analyzer.Config{Logger: logger})

	// Initialize queue client and worker when an enhancer is available
	var queueClient *queue.Client
	var enqueuer api.EnhanceEnqueuer
	var worker *queue.Worker
	if enhancer != nil {
		queueClient = queue.NewClient(queue.ClientConfig{RedisAddr: *redisAddr})
		defer queueClient.Close()
		enqueuer = queueClient

		worker = queue.NewWorker(
			queue.WorkerConfig{RedisAddr: *redisAddr, Concurrency: *concurrency},
			db,
			textAnalyzer,
			enhancer,
			m,
		)

		go func() {
			if err := worker.Start(); err != nil {
				logger.Error("worker failed", "error", err)
				os.Exit(1)
			}
		}()
	}

	// Initialize API handler
	apiHandler := api.NewHandler(db, textAnalyzer, enqueuer, m)

	// Wrap handler with middleware chain: HTTP logging -> tracing -> handlers
	handler := logging.HTTPLoggingMiddleware(logger)(
		tracing.HTTPMiddleware("claritylens")(apiHandler),
	)

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("claritylens service starting",
			"port", *port,
			"database", *dbPath,
			"ai_backend", *aiBackend,
			"redis", *redisAddr,
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	if worker != nil {
		worker.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
