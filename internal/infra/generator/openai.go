package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"doc-genie/internal/resilience/circuitbreaker"
	"doc-genie/internal/resilience/retry"
	"doc-genie/internal/utils/text"
)

// OpenAI implements the Generator interface using OpenAI's chat completion API.
// It shares the reliability stack of the Claude adapter: circuit breaker,
// retry with backoff, and client-side request pacing.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	limiter         *rate.Limiter
	model           string
	contentLimit    int
	timeout         time.Duration
	metricsRecorder GenerationMetricsRecorder
}

// NewOpenAI creates a new OpenAI generator with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	contentLimit := LoadContentLimit()

	slog.Info("Initialized OpenAI generator with configuration",
		slog.Int("content_limit", contentLimit))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		limiter:         rate.NewLimiter(rate.Limit(2), 1),
		model:           openai.GPT4o,
		contentLimit:    contentLimit,
		timeout:         120 * time.Second,
		metricsRecorder: NewPrometheusGenerationMetrics(),
	}
}

// Generate produces a full article body for the given topic.
func (o *OpenAI) Generate(ctx context.Context, topic, parentTitle string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a complete, well-structured article about the following topic in at most %d characters. "+
			"Use markdown headings and return only the article body.\nTopic: %s",
		o.contentLimit, topic)
	if parentTitle != "" {
		prompt += fmt.Sprintf(
			"\nThe article is a subsection of %q; write it in that context.", parentTitle)
	}
	return o.complete(ctx, prompt)
}

// Edit revises an existing article body according to the instruction.
func (o *OpenAI) Edit(ctx context.Context, content string, instruction string) (string, error) {
	prompt := fmt.Sprintf(
		"Revise the following article according to the instruction. "+
			"Keep the result under %d characters and return only the revised article body.\n"+
			"Instruction: %s\n\nArticle:\n%s",
		o.contentLimit, instruction, content)
	return o.complete(ctx, prompt)
}

// complete runs the prompt through pacing, retry, and circuit breaker layers.
func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		if err := o.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("request pacing aborted: %w", err)
		}

		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doComplete(ctx, prompt)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		o.metricsRecorder.RecordFailure("openai")
		return "", fmt.Errorf("openai generation failed after retries: %w", retryErr)
	}

	return result, nil
}

// doComplete performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doComplete(ctx context.Context, prompt string) (string, error) {
	inputLength := text.CountRunes(prompt)

	slog.InfoContext(ctx, "Starting generation",
		slog.Int("input_length", inputLength),
		slog.Int("content_limit", o.contentLimit))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Generation failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("openai api returned empty response")
	}

	body := resp.Choices[0].Message.Content
	bodyLength := text.CountRunes(body)

	slog.InfoContext(ctx, "Generation completed",
		slog.Int("output_length", bodyLength),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordLength(bodyLength)
	o.metricsRecorder.RecordDuration(duration)

	return body, nil
}
