// Package repository declares the persistence interfaces consumed by the
// usecase layer. Implementations live under internal/infra/adapter.
package repository

import (
	"context"

	"doc-genie/internal/domain/entity"
)

// ArticleRepository persists documentation-tree articles.
type ArticleRepository interface {
	// Get retrieves an article by ID. Returns (nil, nil) if the article
	// does not exist.
	Get(ctx context.Context, id string) (*entity.Article, error)

	// Create inserts a new article.
	Create(ctx context.Context, article *entity.Article) error

	// Update replaces the title, content, and updated-at of an existing
	// article. Returns entity.ErrNotFound if the article does not exist.
	Update(ctx context.Context, article *entity.Article) error
}
