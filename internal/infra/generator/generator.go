// Package generator provides AI-powered article generation implementations.
// It includes adapters for Claude (Anthropic) and OpenAI APIs with reliability patterns.
// This package supports client-side request pacing with comprehensive
// observability through structured logging and Prometheus metrics.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// Generator produces and revises article content from natural-language input.
type Generator interface {
	// Generate produces a full article body for the given topic.
	// parentTitle is the title of the parent article when the new article
	// is created as a child node; empty for root articles.
	Generate(ctx context.Context, topic, parentTitle string) (string, error)

	// Edit revises an existing article body according to the instruction.
	Edit(ctx context.Context, content string, instruction string) (string, error)
}

// GeneratorConfig defines the interface for generator configuration.
// It enables sharing validation logic across providers.
type GeneratorConfig interface {
	// GetContentLimit returns the maximum content length in characters.
	GetContentLimit() int

	// Validate validates the configuration.
	Validate() error
}

// ValidateContentLimit validates that a content limit is within the valid range.
func ValidateContentLimit(limit int) error {
	const (
		minContentLimit = 500
		maxContentLimit = 50000
	)
	if limit < minContentLimit || limit > maxContentLimit {
		return fmt.Errorf("content limit must be between %d and %d, got %d",
			minContentLimit, maxContentLimit, limit)
	}
	return nil
}

// LoadContentLimit reads GENERATOR_CONTENT_LIMIT from the environment.
// Invalid or out-of-range values fall back to the default with a warning log.
func LoadContentLimit() int {
	const defaultContentLimit = 8000

	envLimit := os.Getenv("GENERATOR_CONTENT_LIMIT")
	if envLimit == "" {
		return defaultContentLimit
	}

	parsed, err := strconv.Atoi(envLimit)
	if err != nil {
		slog.Warn("Invalid GENERATOR_CONTENT_LIMIT format, using default",
			slog.String("value", envLimit),
			slog.Int("default", defaultContentLimit),
			slog.String("error", err.Error()))
		return defaultContentLimit
	}
	if validateErr := ValidateContentLimit(parsed); validateErr != nil {
		slog.Warn("GENERATOR_CONTENT_LIMIT out of valid range, using default",
			slog.Int("value", parsed),
			slog.Int("default", defaultContentLimit))
		return defaultContentLimit
	}
	return parsed
}
