package rating

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var recomputeTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bookreview_rating_recomputations_total",
		Help: "Average rating recomputations by result",
	},
	[]string{"result"},
)

// RatingSource lists the ratings of every review attached to a book.
type RatingSource interface {
	ListRatingsByBook(ctx context.Context, bookID uuid.UUID) ([]int, error)
}

// AverageWriter persists a book's derived average.
type AverageWriter interface {
	UpdateAverageRating(ctx context.Context, bookID uuid.UUID, average float64) error
}

// Average returns the arithmetic mean of ratings, 0 when there are none.
// The result is stored unrounded.
func Average(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// Aggregator recomputes a book's average rating from its current reviews.
// Callers run Recompute inside the same transaction as the review write
// that made it necessary.
type Aggregator struct {
	ratings RatingSource
	books   AverageWriter
}

func NewAggregator(ratings RatingSource, books AverageWriter) *Aggregator {
	return &Aggregator{ratings: ratings, books: books}
}

// Recompute reads every rating of bookID and writes their mean back to the book.
func (a *Aggregator) Recompute(ctx context.Context, bookID uuid.UUID) (float64, error) {
	ratings, err := a.ratings.ListRatingsByBook(ctx, bookID)
	if err != nil {
		recomputeTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("list ratings: %w", err)
	}

	average := Average(ratings)
	if err := a.books.UpdateAverageRating(ctx, bookID, average); err != nil {
		recomputeTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("update average rating: %w", err)
	}

	recomputeTotal.WithLabelValues("ok").Inc()
	log.Debug().
		Str("book_id", bookID.String()).
		Int("reviews", len(ratings)).
		Float64("average", average).
		Msg("average rating recomputed")

	return average, nil
}
