package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"doc-genie/internal/resilience/circuitbreaker"
	"doc-genie/internal/resilience/retry"
	"doc-genie/internal/utils/text"
)

// ClaudeConfig holds configuration parameters for the Claude generator.
// Configuration is loaded from environment variables with fallback to defaults.
type ClaudeConfig struct {
	// ContentLimit is the maximum number of characters allowed in an article body.
	// Loaded from GENERATOR_CONTENT_LIMIT environment variable.
	// Valid range: 500-50000 characters. Default: 8000.
	ContentLimit int

	// Model is the Claude API model identifier to use for generation.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single generation API call.
	Timeout time.Duration

	// RequestsPerSecond paces outbound API calls across all in-flight requests.
	RequestsPerSecond float64
}

// GetContentLimit implements GeneratorConfig interface.
func (c *ClaudeConfig) GetContentLimit() int {
	return c.ContentLimit
}

// Validate implements GeneratorConfig interface.
func (c *ClaudeConfig) Validate() error {
	if err := ValidateContentLimit(c.ContentLimit); err != nil {
		return fmt.Errorf("invalid content limit: %w", err)
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadClaudeConfig loads configuration from environment variables.
// Invalid values fall back to the default with a warning log.
//
// Environment variables:
//   - GENERATOR_CONTENT_LIMIT: Content limit (default: 8000, range: 500-50000)
func LoadClaudeConfig() ClaudeConfig {
	return ClaudeConfig{
		ContentLimit:      LoadContentLimit(),
		Model:             "claude-sonnet-4-5-20250929",
		MaxTokens:         4096,
		Timeout:           120 * time.Second,
		RequestsPerSecond: 2,
	}
}

// Claude implements the Generator interface using Anthropic's Claude API.
// It includes circuit breaker, retry logic, and client-side request pacing
// for improved reliability.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	limiter         *rate.Limiter
	config          ClaudeConfig
	metricsRecorder GenerationMetricsRecorder
}

// NewClaude creates a new Claude generator with the given API key.
// It automatically configures circuit breaker, retry logic, request pacing,
// and metrics recording.
func NewClaude(apiKey string) *Claude {
	config := LoadClaudeConfig()

	slog.Info("Initialized Claude generator with configuration",
		slog.Int("content_limit", config.ContentLimit),
		slog.String("model", config.Model))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		limiter:         rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1),
		config:          config,
		metricsRecorder: NewPrometheusGenerationMetrics(),
	}
}

// Generate produces a full article body for the given topic using Claude AI.
func (c *Claude) Generate(ctx context.Context, topic, parentTitle string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a complete, well-structured article about the following topic in at most %d characters. "+
			"Use markdown headings and return only the article body.\nTopic: %s",
		c.config.ContentLimit, topic)
	if parentTitle != "" {
		prompt += fmt.Sprintf(
			"\nThe article is a subsection of %q; write it in that context.", parentTitle)
	}
	return c.complete(ctx, prompt)
}

// Edit revises an existing article body according to the instruction.
func (c *Claude) Edit(ctx context.Context, content string, instruction string) (string, error) {
	prompt := fmt.Sprintf(
		"Revise the following article according to the instruction. "+
			"Keep the result under %d characters and return only the revised article body.\n"+
			"Instruction: %s\n\nArticle:\n%s",
		c.config.ContentLimit, instruction, content)
	return c.complete(ctx, prompt)
}

// complete runs the prompt through pacing, retry, and circuit breaker layers.
func (c *Claude) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("request pacing aborted: %w", err)
		}

		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doComplete(ctx, prompt)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		c.metricsRecorder.RecordFailure("claude")
		return "", fmt.Errorf("claude generation failed after retries: %w", retryErr)
	}

	return result, nil
}

// doComplete performs the actual API call without retry or circuit breaker.
func (c *Claude) doComplete(ctx context.Context, prompt string) (string, error) {
	requestID := uuid.New().String()
	inputLength := text.CountRunes(prompt)

	slog.InfoContext(ctx, "Starting generation",
		slog.String("request_id", requestID),
		slog.Int("input_length", inputLength),
		slog.Int("content_limit", c.config.ContentLimit))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	body := textBlock.Text
	bodyLength := text.CountRunes(body)

	slog.InfoContext(ctx, "Generation completed",
		slog.String("request_id", requestID),
		slog.Int("output_length", bodyLength),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordLength(bodyLength)
	c.metricsRecorder.RecordDuration(duration)

	return body, nil
}
