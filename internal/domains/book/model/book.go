package model

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a catalog entry.
//
// AverageRating is derived: it always equals the mean rating of the reviews
// currently referencing the book (0 when there are none) and is only written
// by the rating aggregator.
type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	CoverImage    string    `json:"coverImage"`
	AverageRating float64   `json:"averageRating"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
