package client

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bookModel "book-review-backend/internal/domains/book/model"
	reviewModel "book-review-backend/internal/domains/review/model"
)

// User-facing failure messages kept in Store.Err.
const (
	MsgFetchBooksFailed   = "Failed to fetch books. Please try again later."
	MsgFetchBookFailed    = "Failed to fetch book. Please try again later."
	MsgFetchReviewsFailed = "Failed to fetch reviews. Please try again later."
	MsgAddReviewFailed    = "Failed to add review. Please try again later."
	MsgUpdateReviewFailed = "Failed to update review. Please try again later."
	MsgDeleteReviewFailed = "Failed to delete review. Please try again later."
)

// API is the transport the store needs; *APIClient implements it.
type API interface {
	ListBooks(ctx context.Context) ([]bookModel.Book, error)
	GetBook(ctx context.Context, id string) (*bookModel.Book, error)
	ListBookReviews(ctx context.Context, bookID string) ([]reviewModel.Review, error)
	CreateReview(ctx context.Context, in ReviewInput) (*reviewModel.Review, error)
	UpdateReview(ctx context.Context, id string, in ReviewInput) (*reviewModel.Review, error)
	DeleteReview(ctx context.Context, id string) (uuid.UUID, error)
}

// StoreError carries the user-facing message alongside the cause.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string { return e.Message + ": " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

// Store caches the book list and per-book reviews fetched from the API.
// Averages are never computed locally: every review mutation re-fetches
// the book list. Concurrent calls are not deduplicated; last response wins.
type Store struct {
	api API

	mu      sync.RWMutex
	books   []bookModel.Book
	reviews map[string][]reviewModel.Review
	loading int
	lastErr string
}

func NewStore(api API) *Store {
	return &Store{
		api:     api,
		reviews: make(map[string][]reviewModel.Review),
	}
}

func (s *Store) FetchBooks(ctx context.Context) error {
	done := s.begin()
	defer done()

	books, err := s.api.ListBooks(ctx)
	if err != nil {
		return s.fail(MsgFetchBooksFailed, err)
	}

	s.mu.Lock()
	s.books = books
	s.mu.Unlock()
	return nil
}

// FetchBook loads a single book and replaces or adds it in the cached list.
func (s *Store) FetchBook(ctx context.Context, id string) (*bookModel.Book, error) {
	done := s.begin()
	defer done()

	book, err := s.api.GetBook(ctx, id)
	if err != nil {
		return nil, s.fail(MsgFetchBookFailed, err)
	}

	s.mu.Lock()
	replaced := false
	for i := range s.books {
		if s.books[i].ID == book.ID {
			s.books[i] = *book
			replaced = true
		}
	}
	if !replaced {
		s.books = append(s.books, *book)
	}
	s.mu.Unlock()
	return book, nil
}

func (s *Store) FetchBookReviews(ctx context.Context, bookID string) error {
	done := s.begin()
	defer done()

	reviews, err := s.api.ListBookReviews(ctx, bookID)
	if err != nil {
		return s.fail(MsgFetchReviewsFailed, err)
	}

	s.mu.Lock()
	s.reviews[bookID] = reviews
	s.mu.Unlock()
	return nil
}

// AddReview creates a review, appends it to its book's cached list and
// refreshes the books.
func (s *Store) AddReview(ctx context.Context, in ReviewInput) (*reviewModel.Review, error) {
	done := s.begin()
	defer done()

	review, err := s.api.CreateReview(ctx, in)
	if err != nil {
		return nil, s.fail(MsgAddReviewFailed, err)
	}

	key := review.BookID.String()
	s.mu.Lock()
	s.reviews[key] = append(s.reviews[key], *review)
	s.mu.Unlock()

	if err := s.refreshBooks(ctx); err != nil {
		return review, s.fail(MsgAddReviewFailed, err)
	}
	return review, nil
}

// UpdateReview edits a review and replaces it in place in the cache.
func (s *Store) UpdateReview(ctx context.Context, id string, in ReviewInput) (*reviewModel.Review, error) {
	done := s.begin()
	defer done()

	review, err := s.api.UpdateReview(ctx, id, in)
	if err != nil {
		return nil, s.fail(MsgUpdateReviewFailed, err)
	}

	key := review.BookID.String()
	s.mu.Lock()
	for i := range s.reviews[key] {
		if s.reviews[key][i].ID == review.ID {
			s.reviews[key][i] = *review
		}
	}
	s.mu.Unlock()

	if err := s.refreshBooks(ctx); err != nil {
		return review, s.fail(MsgUpdateReviewFailed, err)
	}
	return review, nil
}

// DeleteReview removes a review using the book id returned by the server.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	done := s.begin()
	defer done()

	bookID, err := s.api.DeleteReview(ctx, id)
	if err != nil {
		return s.fail(MsgDeleteReviewFailed, err)
	}

	key := bookID.String()
	s.mu.Lock()
	kept := s.reviews[key][:0]
	for _, r := range s.reviews[key] {
		if r.ID.String() != id {
			kept = append(kept, r)
		}
	}
	if _, ok := s.reviews[key]; ok {
		s.reviews[key] = kept
	}
	s.mu.Unlock()

	if err := s.refreshBooks(ctx); err != nil {
		return s.fail(MsgDeleteReviewFailed, err)
	}
	return nil
}

func (s *Store) Books() []bookModel.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]bookModel.Book(nil), s.books...)
}

func (s *Store) Book(id string) (bookModel.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.books {
		if b.ID.String() == id {
			return b, true
		}
	}
	return bookModel.Book{}, false
}

func (s *Store) Reviews(bookID string) []reviewModel.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]reviewModel.Review(nil), s.reviews[bookID]...)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// Err returns the last user-facing failure message, or "" after a success.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) refreshBooks(ctx context.Context) error {
	books, err := s.api.ListBooks(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.books = books
	s.mu.Unlock()
	return nil
}

func (s *Store) begin() func() {
	s.mu.Lock()
	s.loading++
	s.lastErr = ""
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.loading--
		s.mu.Unlock()
	}
}

func (s *Store) fail(msg string, err error) error {
	log.Debug().Err(err).Msg(msg)

	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
	return &StoreError{Message: msg, Err: err}
}

// AsAPIError unwraps err to the server's error, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
