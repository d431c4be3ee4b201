package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"book-review-backend/internal/domains/book/model"
	"book-review-backend/internal/domains/book/repository"
)

type bookRepository struct {
	s *Store
}

// Books returns the book repository backed by s.
func (s *Store) Books() repository.Repository {
	return &bookRepository{s: s}
}

func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	r.s.write(ctx, func() {
		r.s.books[book.ID] = *book
	})
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var (
		book model.Book
		ok   bool
	)
	r.s.read(ctx, func() {
		book, ok = r.s.books[id]
	})
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return &book, nil
}

// GetForUpdate is GetByID: a transaction already holds the store lock.
func (r *bookRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return r.GetByID(ctx, id)
}

func (r *bookRepository) List(ctx context.Context) ([]model.Book, error) {
	books := make([]model.Book, 0)
	r.s.read(ctx, func() {
		for _, b := range r.s.books {
			books = append(books, b)
		}
	})

	sort.Slice(books, func(i, j int) bool {
		if books[i].Title != books[j].Title {
			return books[i].Title < books[j].Title
		}
		return books[i].ID.String() < books[j].ID.String()
	})
	return books, nil
}

func (r *bookRepository) Count(ctx context.Context) (int, error) {
	var n int
	r.s.read(ctx, func() {
		n = len(r.s.books)
	})
	return n, nil
}

func (r *bookRepository) Update(ctx context.Context, book *model.Book) error {
	var err error
	r.s.write(ctx, func() {
		stored, ok := r.s.books[book.ID]
		if !ok {
			err = model.ErrBookNotFound
			return
		}
		stored.Title = book.Title
		stored.Author = book.Author
		stored.Description = book.Description
		stored.CoverImage = book.CoverImage
		stored.UpdatedAt = book.UpdatedAt
		r.s.books[book.ID] = stored
	})
	return err
}

func (r *bookRepository) UpdateAverageRating(ctx context.Context, id uuid.UUID, average float64) error {
	var err error
	r.s.write(ctx, func() {
		stored, ok := r.s.books[id]
		if !ok {
			err = model.ErrBookNotFound
			return
		}
		stored.AverageRating = average
		r.s.books[id] = stored
	})
	return err
}

func (r *bookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var err error
	r.s.write(ctx, func() {
		if _, ok := r.s.books[id]; !ok {
			err = model.ErrBookNotFound
			return
		}
		delete(r.s.books, id)
	})
	return err
}
