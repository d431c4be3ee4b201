package repository

import (
	"context"

	"github.com/google/uuid"

	"book-review-backend/internal/domains/review/model"
)

// Repository is the review data access contract.
// Every method uses the transaction bound to ctx when there is one.
type Repository interface {
	// Create inserts a review; model.ErrUnknownBook when the book is gone
	Create(ctx context.Context, review *model.Review) error

	// GetByID returns model.ErrReviewNotFound when the review does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// GetForUpdate reads the review and locks it. Callers lock the owning
	// book first.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// ListByBook returns the reviews of a book, newest first
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.Review, error)

	// ListRatingsByBook returns only the ratings, for the aggregator
	ListRatingsByBook(ctx context.Context, bookID uuid.UUID) ([]int, error)

	// Update writes userName, rating, comment and updatedAt
	Update(ctx context.Context, review *model.Review) error

	// Delete removes one review
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByBook removes every review of a book and returns how many
	DeleteByBook(ctx context.Context, bookID uuid.UUID) (int64, error)
}
