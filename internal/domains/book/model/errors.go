package model

import (
	"errors"

	"book-review-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeBookNotFound = "BOOK001"
)

var (
	ErrBookNotFound = errors.New("book not found")
)

func NewBookNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeBookNotFound, "Book not found", ErrBookNotFound)
}
