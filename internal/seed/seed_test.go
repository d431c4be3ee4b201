package seed

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-review-backend/internal/domains/rating"
	"book-review-backend/internal/infrastructure/memstore"
)

func newSeeder(store *memstore.Store) *Seeder {
	return NewSeeder(store, store.Books(), store.Reviews(), rating.NewAggregator(store.Reviews(), store.Books()))
}

func TestDefault_ParsesEmbeddedCatalog(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)
	assert.Len(t, data.Books, 6)
	assert.Len(t, data.Reviews, 8)
}

func TestParse_RejectsDanglingReview(t *testing.T) {
	_, err := Parse([]byte(`
books:
  - title: Dune
    author: Frank Herbert
reviews:
  - bookTitle: Emma
    userName: R
    rating: 4
    comment: c
`))
	assert.ErrorContains(t, err, "unknown book")
}

func TestParse_RejectsBadRating(t *testing.T) {
	_, err := Parse([]byte(`
books:
  - title: Dune
    author: Frank Herbert
reviews:
  - bookTitle: Dune
    userName: R
    rating: 9
    comment: c
`))
	assert.Error(t, err)
}

func TestSeeder_RunComputesAverages(t *testing.T) {
	store := memstore.New()
	data, err := Default()
	require.NoError(t, err)

	seeded, err := newSeeder(store).Run(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, seeded)

	books, err := store.Books().List(context.Background())
	require.NoError(t, err)

	got := make(map[string]float64, len(books))
	for _, b := range books {
		got[b.Title] = b.AverageRating
	}
	want := map[string]float64{
		"1984":                  4,
		"Pride and Prejudice":   5,
		"The Great Gatsby":      4,
		"The Hobbit":            4.5,
		"The Lord of the Rings": 4.5,
		"To Kill a Mockingbird": 5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("averages mismatch (-want +got):\n%s", diff)
	}
}

func TestSeeder_RunIsNoOpWhenBooksExist(t *testing.T) {
	store := memstore.New()
	data, err := Default()
	require.NoError(t, err)

	s := newSeeder(store)
	_, err = s.Run(context.Background(), data)
	require.NoError(t, err)

	seeded, err := s.Run(context.Background(), data)
	require.NoError(t, err)
	assert.False(t, seeded)

	n, _ := store.Books().Count(context.Background())
	assert.Equal(t, 6, n)
}
