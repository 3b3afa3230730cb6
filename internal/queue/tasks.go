package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/zombar/claritylens/internal/ai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// handleEnhanceAnalysis runs AI enhancement for a saved analysis and
// folds the annotation back into the stored record.
func (w *Worker) handleEnhanceAnalysis(ctx context.Context, t *asynq.Task) error {
	var payload EnhancePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		w.logger.Error("failed to unmarshal task payload", "error", err)
		return fmt.Errorf("invalid task payload: %w", err)
	}

	analysisID := payload.AnalysisID

	retryCount, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	var queueWaitTime time.Duration
	if payload.EnqueuedAt > 0 {
		enqueuedTime := time.Unix(0, payload.EnqueuedAt)
		queueWaitTime = time.Since(enqueuedTime)
		w.metrics.QueueWaitSeconds.Observe(queueWaitTime.Seconds())
	}

	w.logger.Info("enhancing analysis with AI",
		"analysis_id", analysisID,
		"text_length", len(payload.Text),
		"retry_count", retryCount,
		"max_retries", maxRetry,
		"queue_wait_seconds", queueWaitTime.Seconds(),
	)

	ctx, span := w.spanFromPayload(ctx, &payload, queueWaitTime)
	if span != nil {
		defer span.End()
	}

	analysis, err := w.db.GetAnalysis(analysisID)
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis: %w", err)
	}

	if analysis.Result.Results == nil {
		// Nothing to enhance; the record never cleared the depth gate.
		w.logger.Warn("skipping enhancement for insufficient analysis", "analysis_id", analysisID)
		return nil
	}

	timer := time.Now()
	annotation, err := w.enhancer.Enhance(ctx, payload.Text, payload.SourceURL)
	duration := time.Since(timer).Seconds()

	if err != nil {
		kind := ai.KindOf(err)
		outcome := string(kind)
		if outcome == "" {
			outcome = "error"
		}
		w.metrics.EnhancementsTotal.WithLabelValues(outcome).Inc()
		w.metrics.ObserveEnhancementWithExemplar(ctx, duration, outcome)

		switch kind {
		case ai.ErrKindAuth, ai.ErrKindPermission, ai.ErrKindParse:
			// Terminal: retrying will not help. Record the failure on the
			// analysis so callers can see why the annotation is missing.
			w.logger.Error("permanent enhancement error",
				"analysis_id", analysisID,
				"error", err,
				"kind", kind,
			)
			analysis.Result.AIError = err.Error()
			analysis.UpdatedAt = time.Now()
			if saveErr := w.db.SaveAnalysis(analysis); saveErr != nil {
				return fmt.Errorf("failed to record enhancement error: %w", saveErr)
			}
			return nil
		default:
			w.logger.Warn("retriable enhancement error, will retry",
				"analysis_id", analysisID,
				"error", err,
				"kind", kind,
				"retry_count", retryCount,
			)
			return err // Let Asynq retry
		}
	}

	w.metrics.EnhancementsTotal.WithLabelValues("success").Inc()
	w.metrics.ObserveEnhancementWithExemplar(ctx, duration, "success")

	analysis.Result.AI = annotation
	analysis.Result.AIError = ""
	base := w.analyzer.CompositeScore(analysis.Result.Results)
	analysis.Result.CompositeScore = w.analyzer.BlendScore(base, annotation.CredibilityScore)
	analysis.UpdatedAt = time.Now()

	if err := w.db.SaveAnalysis(analysis); err != nil {
		return fmt.Errorf("failed to update enhanced analysis: %w", err)
	}

	w.logger.Info("enhancement completed",
		"analysis_id", analysisID,
		"composite_score", analysis.Result.CompositeScore,
		"ai_credibility", annotation.CredibilityScore,
		"retry_count", retryCount,
	)

	return nil
}

// spanFromPayload recreates the producer's trace context, when present,
// and starts a consumer span linked to it.
func (w *Worker) spanFromPayload(ctx context.Context, payload *EnhancePayload, queueWait time.Duration) (context.Context, trace.Span) {
	if payload.TraceID == "" || payload.SpanID == "" {
		if existingSpan := trace.SpanFromContext(ctx); existingSpan.SpanContext().IsValid() {
			existingSpan.SetAttributes(
				attribute.String("analysis.id", payload.AnalysisID),
				attribute.Int("text.length", len(payload.Text)),
				attribute.Float64("queue.wait_time_seconds", queueWait.Seconds()),
			)
		}
		return ctx, nil
	}

	traceID, err := trace.TraceIDFromHex(payload.TraceID)
	if err != nil {
		return ctx, nil
	}
	spanID, err := trace.SpanIDFromHex(payload.SpanID)
	if err != nil {
		return ctx, nil
	}

	remoteSpanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})

	ctx = trace.ContextWithRemoteSpanContext(ctx, remoteSpanCtx)

	ctx, span := otel.Tracer("claritylens").Start(ctx, "asynq.task.process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("task.type", TypeEnhanceAnalysis),
			attribute.String("analysis.id", payload.AnalysisID),
			attribute.Int("text.length", len(payload.Text)),
			attribute.Float64("queue.wait_time_seconds", queueWait.Seconds()),
			attribute.Int64("enqueued_at", payload.EnqueuedAt),
		),
	)

	span.AddEvent("task_processing_started", trace.WithAttributes(
		attribute.Float64("wait_time_seconds", queueWait.Seconds()),
	))

	return ctx, span
}
