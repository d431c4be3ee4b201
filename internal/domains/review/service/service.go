package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bookModel "book-review-backend/internal/domains/book/model"
	"book-review-backend/internal/domains/review/model"
	"book-review-backend/internal/domains/review/repository"
	"book-review-backend/internal/shared/apperror"
	"book-review-backend/pkg/database"
)

type reviewService struct {
	reviewRepo repository.Repository
	bookRepo   BookReader
	aggregator Recomputer
	tx         database.Transactor
	now        func() time.Time
}

func NewReviewService(
	reviewRepo repository.Repository,
	bookRepo BookReader,
	aggregator Recomputer,
	tx database.Transactor,
) ServiceInterface {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		aggregator: aggregator,
		tx:         tx,
		now:        database.Now,
	}
}

// =====================================================
// CREATE REVIEW
// =====================================================

func (s *reviewService) CreateReview(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, apperror.Validationf("bookId must be a valid id")
	}

	review := req.ToReview(bookID, s.now())

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// Book lock first; nothing is written for a missing book.
		if _, err := s.bookRepo.GetForUpdate(ctx, bookID); err != nil {
			return mapBookError(err)
		}

		if err := s.reviewRepo.Create(ctx, review); err != nil {
			if errors.Is(err, model.ErrUnknownBook) {
				return bookModel.NewBookNotFoundError()
			}
			return err
		}

		return s.recompute(ctx, bookID)
	})
	if err != nil {
		return nil, wrapError(err)
	}

	log.Info().
		Str("review_id", review.ID.String()).
		Str("book_id", bookID.String()).
		Int("rating", review.Rating).
		Msg("review created")

	return review, nil
}

// =====================================================
// READ
// =====================================================

func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapError(mapReviewError(err))
	}
	return review, nil
}

func (s *reviewService) ListBookReviews(ctx context.Context, bookID uuid.UUID) ([]model.Review, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return nil, wrapError(mapBookError(err))
	}

	reviews, err := s.reviewRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return reviews, nil
}

// =====================================================
// UPDATE REVIEW
// =====================================================

func (s *reviewService) UpdateReview(ctx context.Context, id uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	var updated *model.Review
	err := s.withReviewLocked(ctx, id, func(ctx context.Context, review *model.Review) error {
		ratingChanged := req.ApplyTo(review)
		review.UpdatedAt = s.now()

		if err := s.reviewRepo.Update(ctx, review); err != nil {
			return mapReviewError(err)
		}
		if ratingChanged {
			if err := s.recompute(ctx, review.BookID); err != nil {
				return err
			}
		}

		updated = review
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	log.Info().
		Str("review_id", id.String()).
		Str("book_id", updated.BookID.String()).
		Msg("review updated")

	return updated, nil
}

// =====================================================
// DELETE REVIEW
// =====================================================

func (s *reviewService) DeleteReview(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var bookID uuid.UUID
	err := s.withReviewLocked(ctx, id, func(ctx context.Context, review *model.Review) error {
		if err := s.reviewRepo.Delete(ctx, id); err != nil {
			return mapReviewError(err)
		}
		if err := s.recompute(ctx, review.BookID); err != nil {
			return err
		}

		bookID = review.BookID
		return nil
	})
	if err != nil {
		return uuid.Nil, wrapError(err)
	}

	log.Info().
		Str("review_id", id.String()).
		Str("book_id", bookID.String()).
		Msg("review deleted")

	return bookID, nil
}

// =====================================================
// HELPERS
// =====================================================

// withReviewLocked runs fn in a transaction holding the owning book's lock
// and then the review's lock. The unlocked read only discovers the book id,
// which never changes for a review.
func (s *reviewService) withReviewLocked(
	ctx context.Context,
	id uuid.UUID,
	fn func(ctx context.Context, review *model.Review) error,
) error {
	current, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return mapReviewError(err)
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.bookRepo.GetForUpdate(ctx, current.BookID); err != nil {
			// The book went away with its reviews in between.
			if errors.Is(err, bookModel.ErrBookNotFound) {
				return model.NewReviewNotFoundError()
			}
			return err
		}

		review, err := s.reviewRepo.GetForUpdate(ctx, id)
		if err != nil {
			return mapReviewError(err)
		}
		return fn(ctx, review)
	})
}

func (s *reviewService) recompute(ctx context.Context, bookID uuid.UUID) error {
	if _, err := s.aggregator.Recompute(ctx, bookID); err != nil {
		log.Error().Err(err).Str("book_id", bookID.String()).Msg("average rating recompute failed, rolling back")
		return apperror.Transactional("Failed to update the book's average rating", err)
	}
	return nil
}

func mapBookError(err error) error {
	if errors.Is(err, bookModel.ErrBookNotFound) {
		return bookModel.NewBookNotFoundError()
	}
	return err
}

func mapReviewError(err error) error {
	if errors.Is(err, model.ErrReviewNotFound) {
		return model.NewReviewNotFoundError()
	}
	return err
}

// wrapError keeps application errors and hides everything else behind Unexpected.
func wrapError(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	log.Error().Err(err).Msg("review operation failed")
	return apperror.Unexpected(err)
}
