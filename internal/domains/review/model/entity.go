package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a visitor's rating of a book.
// BookID and CreatedAt are set once at creation and never change.
type Review struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"bookId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"` // 1-5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeleteReviewResponse - DELETE /reviews/:id
// BookID lets the client refresh the affected book.
type DeleteReviewResponse struct {
	Message string    `json:"message"`
	BookID  uuid.UUID `json:"bookId"`
}
