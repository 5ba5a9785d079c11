package article

import "errors"

var (
	// ErrArticleNotFound is returned when the requested article does not exist.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID is returned when an article ID is empty.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrParentNotFound is returned when the requested parent article does
	// not exist.
	ErrParentNotFound = errors.New("parent article not found")

	// ErrNotOwner is returned when a caller tries to edit an article owned
	// by a different user.
	ErrNotOwner = errors.New("article is owned by another user")

	// ErrEmptyCompletion is returned when the generator produces no content.
	ErrEmptyCompletion = errors.New("generator returned empty content")
)
