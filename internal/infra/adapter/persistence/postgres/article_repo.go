package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"doc-genie/internal/domain/entity"
	"doc-genie/internal/repository"
)

// ArticleRepo persists articles in the articles table.
//
// Expected schema:
//
//	CREATE TABLE articles (
//	    id         TEXT PRIMARY KEY,
//	    parent_id  TEXT REFERENCES articles(id),
//	    owner_uid  TEXT NOT NULL DEFAULT '',
//	    title      TEXT NOT NULL,
//	    content    TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
type ArticleRepo struct {
	db *sql.DB
}

// NewArticleRepo creates a Postgres-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	const query = `
SELECT id, parent_id, owner_uid, title, content, created_at, updated_at
FROM articles
WHERE id = $1
LIMIT 1`

	var article entity.Article
	var parentID sql.NullString
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&article.ID, &parentID, &article.OwnerUID, &article.Title,
			&article.Content, &article.CreatedAt, &article.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if parentID.Valid {
		article.ParentID = &parentID.String
	}
	return &article, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (id, parent_id, owner_uid, title, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var parentID sql.NullString
	if article.ParentID != nil {
		parentID = sql.NullString{String: *article.ParentID, Valid: true}
	}

	_, err := repo.db.ExecContext(ctx, query,
		article.ID, parentID, article.OwnerUID, article.Title,
		article.Content, article.CreatedAt, article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles
SET title = $2, content = $3, updated_at = $4
WHERE id = $1`

	res, err := repo.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Content, article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
