// Package article provides HTTP handlers for the article generation endpoints.
// It wires optional bearer authentication and per-endpoint rate limiting in
// front of the generation and editing use cases.
package article

import (
	"time"

	"doc-genie/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID        string    `json:"id" example:"7cf0a2d4-9f5b-4a4f-8f2e-1f6f1a2b3c4d"`
	ParentID  *string   `json:"parentId,omitempty"`
	Title     string    `json:"title" example:"How DNS resolution works"`
	Content   string    `json:"content"`
	Owned     bool      `json:"owned"`
	CreatedAt time.Time `json:"createdAt" example:"2025-10-26T12:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2025-10-26T12:00:00Z"`
}

// toDTO converts a domain article to its transfer representation.
func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:        a.ID,
		ParentID:  a.ParentID,
		Title:     a.Title,
		Content:   a.Content,
		Owned:     !a.IsGuestArticle(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// rateLimitedResponse is the 429 response body.
type rateLimitedResponse struct {
	Error   string `json:"error" example:"rate_limit_exceeded"`
	Message string `json:"message"`
}

// Tier-specific denial messages.
const (
	guestLimitMessage = "You have reached the daily limit for guests. Sign in to get a higher limit."
	userLimitMessage  = "You have reached your daily limit. The limit resets at midnight."
)

// denialMessage returns the explanatory text for a 429 response.
func denialMessage(authenticated bool) string {
	if authenticated {
		return userLimitMessage
	}
	return guestLimitMessage
}
