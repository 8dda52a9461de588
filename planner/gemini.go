package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"wayfarer/config"

	"google.golang.org/genai"
)

// Generator produces raw model output for a prompt. The concrete client is
// the Gemini API; tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient is a thin transport wrapper around the Gemini API with a
// bounded per-attempt timeout and retry-with-backoff on transient failures.
type GeminiClient struct {
	client     *genai.Client
	model      string
	maxRetries int
	timeout    time.Duration
}

func NewGeminiClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{
		client:     client,
		model:      cfg.GeminiModel,
		maxRetries: cfg.MaxGenerateRetries,
		timeout:    cfg.GenerateTimeout,
	}, nil
}

// Generate sends the prompt and returns the raw text response. Rate-limit
// and timeout errors are retried up to the configured bound with doubling
// backoff; exhaustion surfaces as ErrGenerationFailed.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
	}

	backoff := 2 * time.Second
	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		result, err := g.client.Models.GenerateContent(attemptCtx, g.model, genai.Text(prompt), genCfg)
		cancel()
		if err == nil {
			text := result.Text()
			if strings.TrimSpace(text) == "" {
				return "", fmt.Errorf("%w: empty model response", ErrGenerationFailed)
			}
			return text, nil
		}

		lastErr = err
		if !transient(err) {
			return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
		log.Printf("Generation attempt %d/%d failed (%v); retrying", attempt, g.maxRetries, err)
		if attempt < g.maxRetries {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrGenerationFailed, ctx.Err())
			}
			backoff *= 2
		}
	}
	return "", fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
}

// transient reports whether the failure is worth retrying: rate limiting or
// a timed-out attempt.
func transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "UNAVAILABLE")
}
