// Package memory provides in-memory persistence adapters for development
// and testing. Data does not survive a restart.
package memory

import (
	"context"
	"sync"

	"doc-genie/internal/domain/entity"
	"doc-genie/internal/repository"
)

// ArticleRepo is an in-memory ArticleRepository guarded by a mutex.
type ArticleRepo struct {
	mu       sync.RWMutex
	articles map[string]entity.Article
}

// NewArticleRepo creates an empty in-memory article repository.
func NewArticleRepo() *ArticleRepo {
	return &ArticleRepo{articles: make(map[string]entity.Article)}
}

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// Get retrieves an article by ID. Returns (nil, nil) if the article does
// not exist.
func (r *ArticleRepo) Get(_ context.Context, id string) (*entity.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	art, ok := r.articles[id]
	if !ok {
		return nil, nil
	}
	copied := art
	return &copied, nil
}

// Create inserts a new article.
func (r *ArticleRepo) Create(_ context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.articles[article.ID] = *article
	return nil
}

// Update replaces an existing article. Returns entity.ErrNotFound if the
// article does not exist.
func (r *ArticleRepo) Update(_ context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[article.ID]; !ok {
		return entity.ErrNotFound
	}
	r.articles[article.ID] = *article
	return nil
}

// Len returns the number of stored articles.
func (r *ArticleRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.articles)
}
