package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Task type constants
const (
	TypeEnhanceAnalysis = "claritylens:enhance"
)

// EnhancePayload represents the payload for an AI enhancement task.
type EnhancePayload struct {
	AnalysisID string `json:"analysis_id"`
	Text       string `json:"text"`
	SourceURL  string `json:"source_url,omitempty"`
	// Tracing and timing fields
	TraceID    string `json:"trace_id,omitempty"`
	SpanID     string `json:"span_id,omitempty"`
	EnqueuedAt int64  `json:"enqueued_at"` // Unix timestamp in nanoseconds
}

// Client wraps the Asynq client for enqueueing tasks.
type Client struct {
	client *asynq.Client
}

// ClientConfig contains configuration for the queue client.
type ClientConfig struct {
	RedisAddr string
}

// NewClient creates a new queue client.
func NewClient(cfg ClientConfig) *Client {
	redisOpt := asynq.RedisClientOpt{
		Addr: cfg.RedisAddr,
	}

	return &Client{
		client: asynq.NewClient(redisOpt),
	}
}

// EnqueueEnhanceAnalysis enqueues an AI enhancement task for a saved
// analysis. The producer span's IDs travel in the payload so the worker
// can link its consumer span to the originating request.
func (c *Client) EnqueueEnhanceAnalysis(ctx context.Context, analysisID, text, sourceURL string) (string, error) {
	payload := EnhancePayload{
		AnalysisID: analysisID,
		Text:       text,
		SourceURL:  sourceURL,
		EnqueuedAt: time.Now().UnixNano(), // Record enqueue time for queue wait metrics
	}

	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		spanCtx := span.SpanContext()
		payload.TraceID = spanCtx.TraceID().String()
		payload.SpanID = spanCtx.SpanID().String()

		span.AddEvent("task_enqueued", trace.WithAttributes(
			attribute.String("task.type", TypeEnhanceAnalysis),
			attribute.String("analysis_id", analysisID),
			attribute.Int64("enqueued_at", payload.EnqueuedAt),
		))
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal task payload: %w", err)
	}

	taskID := analysisID + "-enhance"
	task := asynq.NewTask(TypeEnhanceAnalysis, payloadBytes, asynq.TaskID(taskID))

	opts := []asynq.Option{
		asynq.MaxRetry(10),                  // High retry tolerance for AI backends
		asynq.Timeout(10 * time.Minute),     // Allow slow local models
		asynq.Queue("ai-enhancement"),
		asynq.Retention(7 * 24 * time.Hour), // Keep completed tasks for 7 days
	}

	info, err := c.client.Enqueue(task, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue enhance task: %w", err)
	}

	return info.ID, nil
}

// Close closes the client connection.
func (c *Client) Close() error {
	return c.client.Close()
}
