// Package ai provides AI enhancement backends for the analysis engine:
// an OpenAI-compatible chat-completions client and a local Ollama client,
// both returning a normalized AIAnnotation.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zombar/claritylens/internal/models"
)

const (
	// DefaultBaseURL targets the OpenAI API; any compatible gateway works.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel balances analysis quality against cost.
	DefaultModel = "gpt-4o-mini"

	maxRetries        = 2
	defaultRetryDelay = 1500 * time.Millisecond
	defaultRetryAfter = 3 * time.Second
)

// Client calls an OpenAI-compatible chat-completions endpoint and maps
// responses to AIAnnotation values.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at a compatible gateway.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithModel overrides the model name.
func WithModel(m string) Option {
	return func(c *Client) { c.model = m }
}

// WithRetryDelay overrides the backoff base, mainly for tests.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithLogger overrides the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a client. The key must look plausible; configuration
// with a missing or truncated key is rejected up front rather than on the
// first request.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if len(strings.TrimSpace(apiKey)) < 10 {
		return nil, fmt.Errorf("ai: api key missing or too short")
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    DefaultBaseURL,
		apiKey:     strings.TrimSpace(apiKey),
		model:      DefaultModel,
		retryDelay: defaultRetryDelay,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Enhance analyzes text and returns the normalized annotation. Retries
// transient failures up to twice: 429 waits for the server's Retry-After,
// 5xx and network errors back off linearly, 401 and 403 fail immediately.
func (c *Client) Enhance(ctx context.Context, text, sourceURL string) (*models.AIAnnotation, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: analysisSystemPrompt},
			{Role: "user", Content: userMessage(text, sourceURL)},
		},
		Temperature: 0.2,
		MaxTokens:   3000,
	}
	body.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ai: marshal request: %w", err)
	}

	var lastErr *Error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		raw, apiErr := c.doRequest(ctx, payload)
		if apiErr != nil {
			switch apiErr.Kind {
			case ErrKindAuth, ErrKindPermission:
				return nil, apiErr
			case ErrKindRateLimited:
				lastErr = apiErr
				wait := defaultRetryAfter
				if apiErr.Status == http.StatusTooManyRequests && apiErr.Message != "" {
					if secs, err := strconv.Atoi(apiErr.Message); err == nil {
						wait = time.Duration(secs) * time.Second
					}
				}
				if err := sleepCtx(ctx, wait); err != nil {
					return nil, &Error{Kind: ErrKindNetwork, Message: "context cancelled", Err: err}
				}
				continue
			default:
				lastErr = apiErr
				if attempt < maxRetries {
					if err := sleepCtx(ctx, c.retryDelay*time.Duration(attempt+1)); err != nil {
						return nil, &Error{Kind: ErrKindNetwork, Message: "context cancelled", Err: err}
					}
					continue
				}
				return nil, lastErr
			}
		}

		parsed, parseErr := decodeAnnotation(raw)
		if parseErr != nil {
			c.logger.Warn("ai response parse failed, retrying", "error", parseErr)
			lastErr = parseErr
			if attempt < maxRetries {
				if err := sleepCtx(ctx, c.retryDelay); err != nil {
					return nil, &Error{Kind: ErrKindNetwork, Message: "context cancelled", Err: err}
				}
				continue
			}
			return nil, lastErr
		}
		return parsed, nil
	}

	if lastErr == nil {
		lastErr = &Error{Kind: ErrKindServer, Message: "analysis failed after retries"}
	}
	return nil, lastErr
}

// doRequest performs one chat-completions call and returns the message
// content. Rate-limit errors carry the Retry-After value in Message.
func (c *Client) doRequest(ctx context.Context, payload []byte) (string, *Error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Kind: ErrKindNetwork, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: ErrKindNetwork, Message: fmt.Sprintf("network error: %v", err), Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return "", &Error{
			Kind:    ErrKindRateLimited,
			Status:  resp.StatusCode,
			Message: resp.Header.Get("Retry-After"),
		}
	case http.StatusUnauthorized:
		return "", &Error{Kind: ErrKindAuth, Status: resp.StatusCode, Message: "invalid API key"}
	case http.StatusForbidden:
		return "", &Error{Kind: ErrKindPermission, Status: resp.StatusCode, Message: "API key lacks permission for this model"}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: ErrKindNetwork, Message: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var cr chatResponse
		msg := fmt.Sprintf("API error: %d", resp.StatusCode)
		if json.Unmarshal(data, &cr) == nil && cr.Error != nil && cr.Error.Message != "" {
			msg = cr.Error.Message
		}
		return "", &Error{Kind: ErrKindServer, Status: resp.StatusCode, Message: msg}
	}

	var cr chatResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return "", &Error{Kind: ErrKindParse, Message: "decode response envelope", Err: err}
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", &Error{Kind: ErrKindServer, Message: "empty response from API"}
	}
	return cr.Choices[0].Message.Content, nil
}

// decodeAnnotation parses the model content, attempting one repair pass
// before giving up.
func decodeAnnotation(content string) (*models.AIAnnotation, *Error) {
	cleaned := stripFences(content)

	var raw map[string]any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		raw = repairJSON(cleaned)
		if raw == nil {
			return nil, &Error{Kind: ErrKindParse, Message: "failed to parse AI response as JSON", Err: err}
		}
	}
	return Normalize(raw), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
