package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "book-review-backend/internal/domains/book/model"
	"book-review-backend/internal/domains/rating"
	"book-review-backend/internal/domains/review/model"
	"book-review-backend/internal/infrastructure/memstore"
	"book-review-backend/internal/shared/apperror"
)

type fixture struct {
	store   *memstore.Store
	service ServiceInterface
	book    *bookModel.Book
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	book := &bookModel.Book{ID: uuid.New(), Title: "Dune", Author: "Frank Herbert"}
	require.NoError(t, store.Books().Create(context.Background(), book))

	aggregator := rating.NewAggregator(store.Reviews(), store.Books())
	return &fixture{
		store:   store,
		service: NewReviewService(store.Reviews(), store.Books(), aggregator, store),
		book:    book,
	}
}

func (f *fixture) average(t *testing.T) float64 {
	t.Helper()
	b, err := f.store.Books().GetByID(context.Background(), f.book.ID)
	require.NoError(t, err)
	return b.AverageRating
}

func (f *fixture) add(t *testing.T, r int) *model.Review {
	t.Helper()
	rv, err := f.service.CreateReview(context.Background(), model.CreateReviewRequest{
		BookID:   f.book.ID.String(),
		UserName: "Reader",
		Rating:   r,
		Comment:  "Worth it",
	})
	require.NoError(t, err)
	return rv
}

func intPtr(v int) *int { return &v }

// failingRecomputer simulates the aggregator failing after the review write.
type failingRecomputer struct{}

func (failingRecomputer) Recompute(context.Context, uuid.UUID) (float64, error) {
	return 0, errors.New("write conflict")
}

func TestReviewService_AverageFollowsEveryMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	four := f.add(t, 4)
	two := f.add(t, 2)
	assert.InDelta(t, 3.0, f.average(t), 1e-9)

	three := f.add(t, 3)
	assert.InDelta(t, 3.0, f.average(t), 1e-9)

	bookID, err := f.service.DeleteReview(ctx, two.ID)
	require.NoError(t, err)
	assert.Equal(t, f.book.ID, bookID)
	assert.InDelta(t, 3.5, f.average(t), 1e-9)

	for _, rv := range []*model.Review{four, three} {
		_, err := f.service.DeleteReview(ctx, rv.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 0.0, f.average(t))
}

func TestReviewService_UpdateRatingChangesAverage(t *testing.T) {
	f := newFixture(t)
	rv := f.add(t, 3)
	assert.Equal(t, 3.0, f.average(t))

	updated, err := f.service.UpdateReview(context.Background(), rv.ID, model.UpdateReviewRequest{Rating: intPtr(5)})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, 5.0, f.average(t))
}

func TestReviewService_UpdateKeepsOmittedFields(t *testing.T) {
	f := newFixture(t)
	rv := f.add(t, 4)

	updated, err := f.service.UpdateReview(context.Background(), rv.ID, model.UpdateReviewRequest{Comment: "  Changed my mind  "})
	require.NoError(t, err)

	assert.Equal(t, "Reader", updated.UserName)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Changed my mind", updated.Comment)
	assert.Equal(t, rv.BookID, updated.BookID)
	assert.True(t, rv.CreatedAt.Equal(updated.CreatedAt))
}

func TestReviewService_CreateForMissingBook(t *testing.T) {
	f := newFixture(t)
	f.add(t, 4)

	_, err := f.service.CreateReview(context.Background(), model.CreateReviewRequest{
		BookID:   uuid.NewString(),
		UserName: "Ghost",
		Rating:   1,
		Comment:  "Where is it?",
	})

	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.ErrorIs(t, err, bookModel.ErrBookNotFound)

	reviews, _ := f.store.Reviews().ListByBook(context.Background(), f.book.ID)
	assert.Len(t, reviews, 1)
	assert.Equal(t, 4.0, f.average(t))
}

func TestReviewService_CreateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateReview(context.Background(), model.CreateReviewRequest{
		BookID:   f.book.ID.String(),
		UserName: "Reader",
		Rating:   7,
		Comment:  "Too generous",
	})

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	ratings, _ := f.store.Reviews().ListRatingsByBook(context.Background(), f.book.ID)
	assert.Empty(t, ratings)
}

func TestReviewService_RecomputeFailureRollsBackReviewWrite(t *testing.T) {
	f := newFixture(t)
	existing := f.add(t, 2)

	svc := NewReviewService(f.store.Reviews(), f.store.Books(), failingRecomputer{}, f.store)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, model.CreateReviewRequest{
		BookID: f.book.ID.String(), UserName: "Reader", Rating: 5, Comment: "Great",
	})
	assert.Equal(t, apperror.KindTransactional, apperror.KindOf(err))

	_, err = svc.UpdateReview(ctx, existing.ID, model.UpdateReviewRequest{Rating: intPtr(5)})
	assert.Equal(t, apperror.KindTransactional, apperror.KindOf(err))

	_, err = svc.DeleteReview(ctx, existing.ID)
	assert.Equal(t, apperror.KindTransactional, apperror.KindOf(err))

	reviews, _ := f.store.Reviews().ListByBook(ctx, f.book.ID)
	require.Len(t, reviews, 1)
	assert.Equal(t, 2, reviews[0].Rating)
	assert.Equal(t, 2.0, f.average(t))
}

func TestReviewService_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	missing := uuid.New()

	_, err := f.service.GetReview(ctx, missing)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.service.UpdateReview(ctx, missing, model.UpdateReviewRequest{Rating: intPtr(3)})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.service.DeleteReview(ctx, missing)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.service.ListBookReviews(ctx, missing)
	assert.ErrorIs(t, err, bookModel.ErrBookNotFound)
}

func TestReviewService_ListBookReviewsNewestFirst(t *testing.T) {
	f := newFixture(t)

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.service.(*reviewService).now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	first := f.add(t, 1)
	second := f.add(t, 5)

	reviews, err := f.service.ListBookReviews(context.Background(), f.book.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, second.ID, reviews[0].ID)
	assert.Equal(t, first.ID, reviews[1].ID)
}

func TestReviewService_ConcurrentCreatesKeepMean(t *testing.T) {
	f := newFixture(t)
	ratings := []int{1, 2, 3, 4, 5, 5, 4, 3, 2, 1, 5, 5}

	var wg sync.WaitGroup
	for _, r := range ratings {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			_, err := f.service.CreateReview(context.Background(), model.CreateReviewRequest{
				BookID: f.book.ID.String(), UserName: "Crowd", Rating: r, Comment: "concurrent",
			})
			assert.NoError(t, err)
		}(r)
	}
	wg.Wait()

	assert.InDelta(t, rating.Average(ratings), f.average(t), 1e-9)
}

func TestReviewService_UpdateRejectsOutOfRangeRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rv := f.add(t, 4)

	for _, r := range []int{0, -1, 6} {
		_, err := f.service.UpdateReview(ctx, rv.ID, model.UpdateReviewRequest{Rating: intPtr(r)})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err), "rating %d", r)
	}

	stored, err := f.service.GetReview(ctx, rv.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Rating)
	assert.Equal(t, 4.0, f.average(t))
}

type countingRecomputer struct {
	inner Recomputer
	calls int
}

func (c *countingRecomputer) Recompute(ctx context.Context, bookID uuid.UUID) (float64, error) {
	c.calls++
	return c.inner.Recompute(ctx, bookID)
}

func TestReviewService_UpdateRecomputesOnlyWhenRatingChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rv := f.add(t, 4)

	counter := &countingRecomputer{inner: rating.NewAggregator(f.store.Reviews(), f.store.Books())}
	svc := NewReviewService(f.store.Reviews(), f.store.Books(), counter, f.store)

	_, err := svc.UpdateReview(ctx, rv.ID, model.UpdateReviewRequest{Comment: "Edited"})
	require.NoError(t, err)
	_, err = svc.UpdateReview(ctx, rv.ID, model.UpdateReviewRequest{Rating: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 0, counter.calls)

	_, err = svc.UpdateReview(ctx, rv.ID, model.UpdateReviewRequest{Rating: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 1, counter.calls)
	assert.Equal(t, 2.0, f.average(t))
}

func TestReviewService_TimestampsAtStoredPrecision(t *testing.T) {
	f := newFixture(t)
	rv := f.add(t, 4)

	updated, err := f.service.UpdateReview(context.Background(), rv.ID, model.UpdateReviewRequest{Comment: "Edited"})
	require.NoError(t, err)

	assert.Zero(t, rv.CreatedAt.Nanosecond()%int(time.Microsecond))
	assert.Zero(t, updated.UpdatedAt.Nanosecond()%int(time.Microsecond))
	assert.Equal(t, time.UTC, updated.UpdatedAt.Location())
}
