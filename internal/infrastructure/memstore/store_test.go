package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "book-review-backend/internal/domains/book/model"
	reviewModel "book-review-backend/internal/domains/review/model"
)

func seedBook(t *testing.T, s *Store, title string) *bookModel.Book {
	t.Helper()
	b := &bookModel.Book{ID: uuid.New(), Title: title, Author: "Author", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, s.Books().Create(context.Background(), b))
	return b
}

func TestWithinTransaction_RestoresOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	book := seedBook(t, s, "Dune")

	errBoom := errors.New("boom")
	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		rv := &reviewModel.Review{ID: uuid.New(), BookID: book.ID, UserName: "A", Rating: 5, Comment: "c"}
		require.NoError(t, s.Reviews().Create(ctx, rv))
		require.NoError(t, s.Books().UpdateAverageRating(ctx, book.ID, 5))
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	ratings, _ := s.Reviews().ListRatingsByBook(ctx, book.ID)
	assert.Empty(t, ratings)
	got, _ := s.Books().GetByID(ctx, book.ID)
	assert.Zero(t, got.AverageRating)
}

func TestWithinTransaction_RestoresOnPanic(t *testing.T) {
	s := New()
	ctx := context.Background()
	book := seedBook(t, s, "Dune")

	assert.Panics(t, func() {
		_ = s.WithinTransaction(ctx, func(ctx context.Context) error {
			_, _ = s.Reviews().DeleteByBook(ctx, book.ID)
			_ = s.Books().Delete(ctx, book.ID)
			panic("unexpected")
		})
	})

	_, err := s.Books().GetByID(ctx, book.ID)
	assert.NoError(t, err)
}

func TestWithinTransaction_NestedJoinsOuter(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		// ctx carries the lock; using it again must not deadlock
		b := &bookModel.Book{ID: uuid.New(), Title: "Inner"}
		require.NoError(t, s.Books().Create(ctx, b))
		return s.WithinTransaction(ctx, func(ctx context.Context) error {
			n, err := s.Books().Count(ctx)
			assert.Equal(t, 1, n)
			return err
		})
	})

	require.NoError(t, err)
}

func TestBooks_ListSortedByTitle(t *testing.T) {
	s := New()
	seedBook(t, s, "The Hobbit")
	seedBook(t, s, "1984")
	seedBook(t, s, "Dune")

	books, err := s.Books().List(context.Background())
	require.NoError(t, err)

	titles := make([]string, len(books))
	for i, b := range books {
		titles[i] = b.Title
	}
	assert.Equal(t, []string{"1984", "Dune", "The Hobbit"}, titles)
}

func TestReviews_CreateRequiresBook(t *testing.T) {
	s := New()
	rv := &reviewModel.Review{ID: uuid.New(), BookID: uuid.New(), Rating: 3}

	err := s.Reviews().Create(context.Background(), rv)
	assert.ErrorIs(t, err, reviewModel.ErrUnknownBook)
}

func TestReviews_ListByBookNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	book := seedBook(t, s, "Dune")
	other := seedBook(t, s, "Emma")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, rating := range []int{4, 2, 3} {
		rv := &reviewModel.Review{ID: uuid.New(), BookID: book.ID, Rating: rating, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, s.Reviews().Create(ctx, rv))
	}
	require.NoError(t, s.Reviews().Create(ctx, &reviewModel.Review{ID: uuid.New(), BookID: other.ID, Rating: 1}))

	reviews, err := s.Reviews().ListByBook(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, []int{3, 2, 4}, []int{reviews[0].Rating, reviews[1].Rating, reviews[2].Rating})

	n, err := s.Reviews().DeleteByBook(ctx, book.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	left, _ := s.Reviews().ListRatingsByBook(ctx, other.ID)
	assert.Equal(t, []int{1}, left)
}
