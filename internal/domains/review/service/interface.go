package service

import (
	"context"

	"github.com/google/uuid"

	bookModel "book-review-backend/internal/domains/book/model"
	"book-review-backend/internal/domains/review/model"
)

// ServiceInterface - review use cases.
// Every mutation recomputes the owning book's average rating inside the
// same transaction as the review write.
type ServiceInterface interface {
	CreateReview(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (*model.Review, error)
	ListBookReviews(ctx context.Context, bookID uuid.UUID) ([]model.Review, error)
	UpdateReview(ctx context.Context, id uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error)

	// DeleteReview returns the id of the book the review belonged to
	DeleteReview(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// BookReader is the part of the book repository reviews depend on.
type BookReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*bookModel.Book, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*bookModel.Book, error)
}

// Recomputer refreshes a book's derived average rating.
type Recomputer interface {
	Recompute(ctx context.Context, bookID uuid.UUID) (float64, error)
}
