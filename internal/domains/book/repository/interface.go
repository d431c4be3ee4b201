package repository

import (
	"context"

	"github.com/google/uuid"

	"book-review-backend/internal/domains/book/model"
)

// Repository is the book data access contract.
// Every method uses the transaction bound to ctx when there is one.
type Repository interface {
	// Create inserts a new book
	Create(ctx context.Context, book *model.Book) error

	// GetByID returns model.ErrBookNotFound when the book does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// GetForUpdate reads the book and locks it until the surrounding
	// transaction ends. This is the per-book serialization point for
	// review mutations and book deletion.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// List returns every book ordered by title ascending
	List(ctx context.Context) ([]model.Book, error)

	// Count returns the number of books
	Count(ctx context.Context) (int, error)

	// Update writes the descriptive fields (never the average rating)
	Update(ctx context.Context, book *model.Book) error

	// UpdateAverageRating is reserved for the rating aggregator
	UpdateAverageRating(ctx context.Context, id uuid.UUID, average float64) error

	// Delete removes the book row
	Delete(ctx context.Context, id uuid.UUID) error
}
