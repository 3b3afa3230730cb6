package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/zombar/claritylens/internal/models"
)

const (
	// DefaultOllamaModel is sized for structured-output reliability on
	// local hardware.
	DefaultOllamaModel   = "gpt-oss:20b"
	defaultOllamaTimeout = 360 * time.Second
)

// OllamaClient runs enhancement against a local Ollama server. It shares
// the prompt, repair and normalization pipeline with Client.
type OllamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

// NewOllamaClient creates an Ollama-backed enhancer.
func NewOllamaClient(ollamaURL, model string) (*OllamaClient, error) {
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}
	if model == "" {
		model = DefaultOllamaModel
	}

	baseURL, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &OllamaClient{
		client:  api.NewClient(baseURL, http.DefaultClient),
		model:   model,
		timeout: defaultOllamaTimeout,
	}, nil
}

// Enhance analyzes text via the local model and returns the normalized
// annotation.
func (c *OllamaClient) Enhance(ctx context.Context, text, sourceURL string) (*models.AIAnnotation, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &api.GenerateRequest{
		Model:  c.model,
		System: analysisSystemPrompt,
		Prompt: userMessage(text, sourceURL),
		Format: []byte(`"json"`),
		Stream: new(bool), // false
	}

	var response strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		response.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return nil, &Error{Kind: ErrKindNetwork, Message: fmt.Sprintf("generation failed: %v", err), Err: err}
	}

	content := strings.TrimSpace(response.String())
	if content == "" {
		return nil, &Error{Kind: ErrKindServer, Message: "empty response from model"}
	}

	annotation, parseErr := decodeAnnotation(content)
	if parseErr != nil {
		return nil, parseErr
	}
	return annotation, nil
}
