package generator

import (
	"context"
	"fmt"
)

// NoOp is a generator that returns deterministic placeholder content.
// This is useful for testing and local development without API keys.
type NoOp struct{}

// NewNoOp creates a new NoOp generator.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Generate returns a placeholder article body for the topic.
func (n *NoOp) Generate(_ context.Context, topic, parentTitle string) (string, error) {
	if parentTitle != "" {
		return fmt.Sprintf("# %s\n\nPlaceholder article body for %q under %q.", topic, topic, parentTitle), nil
	}
	return fmt.Sprintf("# %s\n\nPlaceholder article body for %q.", topic, topic), nil
}

// Edit returns the original content with the instruction appended as a note.
func (n *NoOp) Edit(_ context.Context, content string, instruction string) (string, error) {
	return fmt.Sprintf("%s\n\n(revised: %s)", content, instruction), nil
}
