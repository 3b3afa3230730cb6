package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/zombar/claritylens/internal/analyzer"
	"github.com/zombar/claritylens/internal/database"
	"github.com/zombar/claritylens/internal/metrics"
)

// Worker wraps the Asynq server for processing enhancement tasks.
type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	db          *database.DB
	analyzer    *analyzer.Analyzer
	enhancer    analyzer.Enhancer
	concurrency int
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// WorkerConfig contains configuration for the queue worker.
type WorkerConfig struct {
	RedisAddr   string
	Concurrency int
}

// NewWorker creates a new queue worker.
func NewWorker(
	cfg WorkerConfig,
	db *database.DB,
	textAnalyzer *analyzer.Analyzer,
	enhancer analyzer.Enhancer,
	m *metrics.Metrics,
) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr: cfg.RedisAddr,
	}

	serverCfg := asynq.Config{
		Concurrency: cfg.Concurrency,

		Queues: map[string]int{
			"ai-enhancement": 7,
			"default":        3,
		},

		// Queues drain proportionally rather than strictly by priority.
		StrictPriority: false,

		// Backoff tuned for AI backends: transient failures (rate limits,
		// cold models) resolve in minutes, outages in hours.
		RetryDelayFunc: enhanceRetryDelay,

		ShutdownTimeout: 30 * time.Second,

		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)

			slog.Error("task processing error",
				"task_type", task.Type(),
				"error", err,
				"retry_count", retried,
				"max_retries", maxRetry,
			)
		}),
	}

	server := asynq.NewServer(redisOpt, serverCfg)
	mux := asynq.NewServeMux()

	w := &Worker{
		server:      server,
		mux:         mux,
		db:          db,
		analyzer:    textAnalyzer,
		enhancer:    enhancer,
		concurrency: cfg.Concurrency,
		logger:      slog.Default(),
		metrics:     m,
	}

	w.registerHandlers()

	return w
}

// enhanceRetryDelay returns the tiered backoff schedule for enhancement
// tasks: 30s, 1m, 2m, 5m, 10m, 20m, 30m, 1h, 2h, 4h.
func enhanceRetryDelay(n int, err error, task *asynq.Task) time.Duration {
	if task.Type() == TypeEnhanceAnalysis {
		delays := []time.Duration{
			30 * time.Second,
			1 * time.Minute,
			2 * time.Minute,
			5 * time.Minute,
			10 * time.Minute,
			20 * time.Minute,
			30 * time.Minute,
			1 * time.Hour,
			2 * time.Hour,
			4 * time.Hour,
		}
		if n < len(delays) {
			return delays[n]
		}
		return delays[len(delays)-1]
	}

	delays := []time.Duration{
		1 * time.Minute,
		5 * time.Minute,
		15 * time.Minute,
	}
	if n < len(delays) {
		return delays[n]
	}
	return delays[len(delays)-1]
}

// registerHandlers registers all task handlers with the worker.
func (w *Worker) registerHandlers() {
	w.mux.HandleFunc(TypeEnhanceAnalysis, w.handleEnhanceAnalysis)
}

// Start starts the worker to begin processing tasks. Blocks until shutdown.
func (w *Worker) Start() error {
	w.logger.Info("starting asynq worker",
		"concurrency", w.concurrency,
		"queues", map[string]int{"ai-enhancement": 7, "default": 3},
	)

	if err := w.server.Run(w.mux); err != nil {
		return fmt.Errorf("asynq server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the worker.
func (w *Worker) Shutdown() {
	w.logger.Info("shutting down asynq worker")
	w.server.Shutdown()
}

// Server returns the underlying Asynq server (for testing).
func (w *Worker) Server() *asynq.Server {
	return w.server
}
