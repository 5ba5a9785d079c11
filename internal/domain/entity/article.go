// Package entity defines the core domain entities and their validation rules.
package entity

import (
	"strings"
	"time"
)

const (
	// MaxTitleLength is the maximum allowed article title length in runes.
	MaxTitleLength = 200

	// MaxContentLength is the maximum allowed article body length in runes.
	MaxContentLength = 50000
)

// Article is a node in a documentation tree.
//
// OwnerUID is the uid of the authenticated creator; the empty string marks
// a guest article, which anyone may edit. ParentID is nil for root
// articles.
type Article struct {
	ID        string
	ParentID  *string
	OwnerUID  string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGuestArticle reports whether the article was created without a
// verified identity.
func (a *Article) IsGuestArticle() bool {
	return a.OwnerUID == ""
}

// OwnedBy reports whether uid owns this article. Guest articles are owned
// by nobody.
func (a *Article) OwnedBy(uid string) bool {
	return a.OwnerUID != "" && a.OwnerUID == uid
}

// Validate checks the article's invariants before persistence.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return &ValidationError{Field: "id", Message: "must not be empty"}
	}
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if len([]rune(a.Title)) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: "too long"}
	}
	if len([]rune(a.Content)) > MaxContentLength {
		return &ValidationError{Field: "content", Message: "too long"}
	}
	if a.ParentID != nil && strings.TrimSpace(*a.ParentID) == "" {
		return &ValidationError{Field: "parent_id", Message: "must not be blank when present"}
	}
	return nil
}
