package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"book-review-backend/internal/domains/review/model"
	"book-review-backend/internal/domains/review/repository"
)

type reviewRepository struct {
	s *Store
}

// Reviews returns the review repository backed by s.
func (s *Store) Reviews() repository.Repository {
	return &reviewRepository{s: s}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	var err error
	r.s.write(ctx, func() {
		// Same guarantee as the foreign key in PostgreSQL.
		if _, ok := r.s.books[review.BookID]; !ok {
			err = model.ErrUnknownBook
			return
		}
		r.s.reviews[review.ID] = *review
	})
	return err
}

func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var (
		review model.Review
		ok     bool
	)
	r.s.read(ctx, func() {
		review, ok = r.s.reviews[id]
	})
	if !ok {
		return nil, model.ErrReviewNotFound
	}
	return &review, nil
}

func (r *reviewRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	return r.GetByID(ctx, id)
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]model.Review, error) {
	reviews := make([]model.Review, 0)
	r.s.read(ctx, func() {
		for _, rv := range r.s.reviews {
			if rv.BookID == bookID {
				reviews = append(reviews, rv)
			}
		}
	})

	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID.String() > reviews[j].ID.String()
	})
	return reviews, nil
}

func (r *reviewRepository) ListRatingsByBook(ctx context.Context, bookID uuid.UUID) ([]int, error) {
	ratings := make([]int, 0)
	r.s.read(ctx, func() {
		for _, rv := range r.s.reviews {
			if rv.BookID == bookID {
				ratings = append(ratings, rv.Rating)
			}
		}
	})
	return ratings, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	var err error
	r.s.write(ctx, func() {
		stored, ok := r.s.reviews[review.ID]
		if !ok {
			err = model.ErrReviewNotFound
			return
		}
		stored.UserName = review.UserName
		stored.Rating = review.Rating
		stored.Comment = review.Comment
		stored.UpdatedAt = review.UpdatedAt
		r.s.reviews[review.ID] = stored
	})
	return err
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var err error
	r.s.write(ctx, func() {
		if _, ok := r.s.reviews[id]; !ok {
			err = model.ErrReviewNotFound
			return
		}
		delete(r.s.reviews, id)
	})
	return err
}

func (r *reviewRepository) DeleteByBook(ctx context.Context, bookID uuid.UUID) (int64, error) {
	var n int64
	r.s.write(ctx, func() {
		for id, rv := range r.s.reviews {
			if rv.BookID == bookID {
				delete(r.s.reviews, id)
				n++
			}
		}
	})
	return n, nil
}
