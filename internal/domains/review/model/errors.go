package model

import (
	"errors"

	"book-review-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeReviewNotFound = "REV001"
)

var (
	ErrReviewNotFound = errors.New("review not found")
)

func NewReviewNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeReviewNotFound, "Review not found", ErrReviewNotFound)
}

// ErrUnknownBook is returned when a review references a book that is gone.
var ErrUnknownBook = errors.New("referenced book does not exist")
