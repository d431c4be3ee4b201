package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"book-review-backend/internal/domains/book/model"
	"book-review-backend/internal/domains/book/repository"
	"book-review-backend/internal/shared/apperror"
	"book-review-backend/pkg/database"
)

// BookService - implements ServiceInterface
type BookService struct {
	repo    repository.Repository
	reviews ReviewCascader
	tx      database.Transactor
	now     func() time.Time
}

func NewService(repo repository.Repository, reviews ReviewCascader, tx database.Transactor) ServiceInterface {
	return &BookService{
		repo:    repo,
		reviews: reviews,
		tx:      tx,
		now:     database.Now,
	}
}

// ListBooks returns the whole catalog sorted by title
func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	return books, nil
}

func (s *BookService) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return book, nil
}

// CreateBook stores a new book. The average rating starts at 0 whatever
// the caller asked for.
func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	book := req.ToBook(s.now())
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, wrapError(err)
	}

	log.Info().Str("book_id", book.ID.String()).Str("title", book.Title).Msg("book created")
	return book, nil
}

// UpdateBook edits the descriptive fields. The average rating is left alone.
func (s *BookService) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	var updated *model.Book
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		book, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		req.ApplyTo(book)
		book.UpdatedAt = s.now()
		if err := s.repo.Update(ctx, book); err != nil {
			return err
		}

		updated = book
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	log.Info().Str("book_id", id.String()).Msg("book updated")
	return updated, nil
}

// DeleteBook locks the book, removes its reviews and then the book itself
// in one transaction, so no review is left pointing at a missing book.
func (s *BookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	var removed int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetForUpdate(ctx, id); err != nil {
			return err
		}

		n, err := s.reviews.DeleteByBook(ctx, id)
		if err != nil {
			return fmt.Errorf("cascade reviews: %w", err)
		}
		removed = n

		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return wrapError(err)
	}

	log.Info().Str("book_id", id.String()).Int64("reviews_removed", removed).Msg("book deleted")
	return nil
}

func wrapError(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, model.ErrBookNotFound) {
		return model.NewBookNotFoundError()
	}
	log.Error().Err(err).Msg("book operation failed")
	return apperror.Unexpected(err)
}
