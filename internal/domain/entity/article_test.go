package entity

import (
	"errors"
	"strings"
	"testing"
)

func validArticle() Article {
	return Article{
		ID:      "a1",
		Title:   "DNS in depth",
		Content: "Body",
	}
}

func TestArticleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Article)
		field   string
		wantErr bool
	}{
		{"valid", func(a *Article) {}, "", false},
		{"empty id", func(a *Article) { a.ID = "  " }, "id", true},
		{"empty title", func(a *Article) { a.Title = "" }, "title", true},
		{"whitespace title", func(a *Article) { a.Title = "   " }, "title", true},
		{"title too long", func(a *Article) { a.Title = strings.Repeat("x", MaxTitleLength+1) }, "title", true},
		{"title at limit", func(a *Article) { a.Title = strings.Repeat("x", MaxTitleLength) }, "", false},
		{"content too long", func(a *Article) { a.Content = strings.Repeat("x", MaxContentLength+1) }, "content", true},
		{"blank parent id", func(a *Article) { p := " "; a.ParentID = &p }, "parent_id", true},
		{"present parent id", func(a *Article) { p := "root"; a.ParentID = &p }, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			art := validArticle()
			tt.mutate(&art)

			err := art.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func TestArticleOwnership(t *testing.T) {
	guest := Article{ID: "a1", Title: "t", Content: "c"}
	if !guest.IsGuestArticle() {
		t.Error("article without owner uid must be a guest article")
	}
	if guest.OwnedBy("") || guest.OwnedBy("u1") {
		t.Error("guest article must be owned by nobody")
	}

	owned := Article{ID: "a2", OwnerUID: "u1", Title: "t", Content: "c"}
	if owned.IsGuestArticle() {
		t.Error("owned article must not be a guest article")
	}
	if !owned.OwnedBy("u1") {
		t.Error("owner uid must match")
	}
	if owned.OwnedBy("u2") {
		t.Error("other uid must not own the article")
	}
}
