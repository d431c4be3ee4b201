// Package memstore is an in-memory implementation of the book and review
// repositories for development and tests. Transactions hold one store-wide
// lock and restore a snapshot when the callback fails or panics.
package memstore

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"

	bookModel "book-review-backend/internal/domains/book/model"
	reviewModel "book-review-backend/internal/domains/review/model"
	"book-review-backend/pkg/database"
)

type Store struct {
	mu      sync.RWMutex
	books   map[uuid.UUID]bookModel.Book
	reviews map[uuid.UUID]reviewModel.Review
}

var _ database.Transactor = (*Store)(nil)

func New() *Store {
	return &Store{
		books:   make(map[uuid.UUID]bookModel.Book),
		reviews: make(map[uuid.UUID]reviewModel.Review),
	}
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

type snapshot struct {
	books   map[uuid.UUID]bookModel.Book
	reviews map[uuid.UUID]reviewModel.Review
}

func (s *Store) snapshot() snapshot {
	return snapshot{books: maps.Clone(s.books), reviews: maps.Clone(s.reviews)}
}

func (s *Store) restore(snap snapshot) {
	s.books = snap.books
	s.reviews = snap.reviews
}

// WithinTransaction runs fn holding the write lock. Nested calls join the
// outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn database.TxFunc) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

// read runs fn under the read lock unless ctx already holds the write lock.
func (s *Store) read(ctx context.Context, fn func()) {
	if s.inTx(ctx) {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

// write runs fn under the write lock unless ctx already holds it.
func (s *Store) write(ctx context.Context, fn func()) {
	if s.inTx(ctx) {
		fn()
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Ping always succeeds; it backs the health check.
func (s *Store) Ping(context.Context) error {
	return nil
}
