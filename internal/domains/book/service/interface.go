package service

import (
	"context"

	"github.com/google/uuid"

	"book-review-backend/internal/domains/book/model"
)

// ServiceInterface - book use cases
type ServiceInterface interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error)

	// DeleteBook removes the book and all its reviews atomically
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

// ReviewCascader deletes the reviews of a book.
type ReviewCascader interface {
	DeleteByBook(ctx context.Context, bookID uuid.UUID) (int64, error)
}
