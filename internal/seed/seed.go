// Package seed loads the initial catalog into an empty store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	bookModel "book-review-backend/internal/domains/book/model"
	reviewModel "book-review-backend/internal/domains/review/model"
	"book-review-backend/pkg/database"
)

//go:embed data.yaml
var defaultData []byte

type Data struct {
	Books   []BookSeed   `yaml:"books"`
	Reviews []ReviewSeed `yaml:"reviews"`
}

type BookSeed struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
	CoverImage  string `yaml:"coverImage"`
}

// ReviewSeed references its book by title.
type ReviewSeed struct {
	BookTitle string `yaml:"bookTitle"`
	UserName  string `yaml:"userName"`
	Rating    int    `yaml:"rating"`
	Comment   string `yaml:"comment"`
}

// Parse decodes seed YAML and checks that every review names a listed book.
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}

	titles := make(map[string]struct{}, len(data.Books))
	for _, b := range data.Books {
		titles[b.Title] = struct{}{}
	}
	for _, r := range data.Reviews {
		if _, ok := titles[r.BookTitle]; !ok {
			return nil, fmt.Errorf("seed review by %q references unknown book %q", r.UserName, r.BookTitle)
		}
		if r.Rating < reviewModel.MinRating || r.Rating > reviewModel.MaxRating {
			return nil, fmt.Errorf("seed review by %q has rating %d", r.UserName, r.Rating)
		}
	}
	return &data, nil
}

// Default returns the embedded catalog.
func Default() (*Data, error) {
	return Parse(defaultData)
}

type BookWriter interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, book *bookModel.Book) error
}

type ReviewWriter interface {
	Create(ctx context.Context, review *reviewModel.Review) error
}

type Recomputer interface {
	Recompute(ctx context.Context, bookID uuid.UUID) (float64, error)
}

type Seeder struct {
	tx         database.Transactor
	books      BookWriter
	reviews    ReviewWriter
	aggregator Recomputer
	now        func() time.Time
}

func NewSeeder(tx database.Transactor, books BookWriter, reviews ReviewWriter, aggregator Recomputer) *Seeder {
	return &Seeder{
		tx:         tx,
		books:      books,
		reviews:    reviews,
		aggregator: aggregator,
		now:        database.Now,
	}
}

// Run inserts data when the store has no books and reports whether it did.
// Everything happens in one transaction; averages are computed from the
// inserted reviews.
func (s *Seeder) Run(ctx context.Context, data *Data) (bool, error) {
	seeded := false

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		count, err := s.books.Count(ctx)
		if err != nil {
			return fmt.Errorf("count books: %w", err)
		}
		if count > 0 {
			return nil
		}

		now := s.now()
		ids := make(map[string]uuid.UUID, len(data.Books))
		for _, b := range data.Books {
			book := &bookModel.Book{
				ID:          uuid.New(),
				Title:       b.Title,
				Author:      b.Author,
				Description: b.Description,
				CoverImage:  b.CoverImage,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := s.books.Create(ctx, book); err != nil {
				return fmt.Errorf("insert book %q: %w", b.Title, err)
			}
			ids[b.Title] = book.ID
		}

		for i, r := range data.Reviews {
			// Distinct timestamps keep the newest-first order stable.
			created := now.Add(time.Duration(i) * time.Millisecond)
			review := &reviewModel.Review{
				ID:        uuid.New(),
				BookID:    ids[r.BookTitle],
				UserName:  r.UserName,
				Rating:    r.Rating,
				Comment:   r.Comment,
				CreatedAt: created,
				UpdatedAt: created,
			}
			if err := s.reviews.Create(ctx, review); err != nil {
				return fmt.Errorf("insert review by %q: %w", r.UserName, err)
			}
		}

		for _, id := range ids {
			if _, err := s.aggregator.Recompute(ctx, id); err != nil {
				return err
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		log.Info().Int("books", len(data.Books)).Int("reviews", len(data.Reviews)).Msg("database seeded")
	} else {
		log.Info().Msg("database already contains data, skipping seeding")
	}
	return seeded, nil
}
