// Package article provides the article generation and editing use cases.
package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"doc-genie/internal/domain/entity"
	"doc-genie/internal/infra/generator"
	"doc-genie/internal/repository"
)

// GenerateInput represents the input parameters for generating a new article.
type GenerateInput struct {
	// Topic is the natural-language subject to write about.
	Topic string

	// ParentID optionally places the new article under an existing one.
	ParentID string

	// OwnerUID is the verified caller uid, or empty for guests.
	OwnerUID string
}

// EditInput represents the input parameters for revising an existing article.
type EditInput struct {
	// ArticleID identifies the article to revise.
	ArticleID string

	// Instruction is the natural-language revision request.
	Instruction string

	// CallerUID is the verified caller uid, or empty for guests.
	CallerUID string
}

// Service provides article generation use cases.
// It orchestrates the AI generator and delegates persistence to the repository.
type Service struct {
	Repo      repository.ArticleRepository
	Generator generator.Generator
}

// NewService creates a Service over the given repository and generator.
func NewService(repo repository.ArticleRepository, gen generator.Generator) *Service {
	return &Service{Repo: repo, Generator: gen}
}

// Generate produces a new article for the topic and persists it.
// Returns a ValidationError if the topic is empty or too long.
// Returns ErrParentNotFound if a parent ID is given and no such article exists.
// Returns ErrEmptyCompletion if the generator produces no content.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*entity.Article, error) {
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		return nil, &entity.ValidationError{Field: "topic", Message: "is required"}
	}
	if len([]rune(topic)) > entity.MaxTitleLength {
		return nil, &entity.ValidationError{Field: "topic", Message: "is too long"}
	}

	var parentID *string
	var parentTitle string
	if in.ParentID != "" {
		parent, err := s.Repo.Get(ctx, in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("get parent article: %w", err)
		}
		if parent == nil {
			return nil, ErrParentNotFound
		}
		parentID = &parent.ID
		parentTitle = parent.Title
	}

	content, err := s.Generator.Generate(ctx, topic, parentTitle)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyCompletion
	}

	now := time.Now().UTC()
	art := &entity.Article{
		ID:        uuid.New().String(),
		ParentID:  parentID,
		OwnerUID:  in.OwnerUID,
		Title:     topic,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := art.Validate(); err != nil {
		return nil, fmt.Errorf("validate article: %w", err)
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return art, nil
}

// Edit revises an existing article according to the instruction and persists
// the revised body.
//
// Ownership rule: a guest-created article (empty owner uid) may be edited by
// anyone who can reach it; an owned article only by its owner.
// Returns ErrArticleNotFound if the article does not exist.
// Returns ErrNotOwner on an ownership violation.
// Returns ErrEmptyCompletion if the generator produces no content.
func (s *Service) Edit(ctx context.Context, in EditInput) (*entity.Article, error) {
	if in.ArticleID == "" {
		return nil, ErrInvalidArticleID
	}
	instruction := strings.TrimSpace(in.Instruction)
	if instruction == "" {
		return nil, &entity.ValidationError{Field: "prompt", Message: "is required"}
	}

	art, err := s.Repo.Get(ctx, in.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}

	if !art.IsGuestArticle() && !art.OwnedBy(in.CallerUID) {
		return nil, ErrNotOwner
	}

	content, err := s.Generator.Edit(ctx, art.Content, instruction)
	if err != nil {
		return nil, fmt.Errorf("edit content: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyCompletion
	}

	art.Content = content
	art.UpdatedAt = time.Now().UTC()
	if err := art.Validate(); err != nil {
		return nil, fmt.Errorf("validate article: %w", err)
	}

	if err := s.Repo.Update(ctx, art); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return art, nil
}
