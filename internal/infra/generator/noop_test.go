package generator

import (
	"context"
	"strings"
	"testing"
)

func TestNoOpGenerate(t *testing.T) {
	gen := NewNoOp()

	body, err := gen.Generate(context.Background(), "DNS resolution", "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.HasPrefix(body, "# DNS resolution") {
		t.Errorf("body = %q, expected topic heading", body)
	}
	if strings.TrimSpace(body) == "" {
		t.Error("body must not be empty")
	}
}

func TestNoOpGenerateWithParent(t *testing.T) {
	gen := NewNoOp()

	body, err := gen.Generate(context.Background(), "Recursive resolvers", "DNS resolution")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(body, "DNS resolution") {
		t.Errorf("body = %q, expected parent title mention", body)
	}
}

func TestNoOpEdit(t *testing.T) {
	gen := NewNoOp()

	body, err := gen.Edit(context.Background(), "Original body", "make it shorter")
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if !strings.Contains(body, "Original body") {
		t.Errorf("body = %q, expected original content preserved", body)
	}
	if !strings.Contains(body, "make it shorter") {
		t.Errorf("body = %q, expected instruction noted", body)
	}
}

func TestNoOpImplementsGenerator(t *testing.T) {
	var _ Generator = NewNoOp()
}
