package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

var errRatingRange = validation.NewError("validation_rating_range", "rating must be between 1 and 5")

// CreateReviewRequest - POST /reviews
type CreateReviewRequest struct {
	BookID   string `json:"bookId"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

func (r *CreateReviewRequest) Normalize() {
	r.BookID = strings.TrimSpace(r.BookID)
	r.UserName = strings.TrimSpace(r.UserName)
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("bookId is required"),
			is.UUID.Error("bookId must be a valid id"),
		),
		validation.Field(&r.UserName,
			validation.Required.Error("userName is required"),
			validation.RuneLength(1, MaxUserNameLength),
		),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(MinRating).Error("rating must be between 1 and 5"),
			validation.Max(MaxRating).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Comment,
			validation.Required.Error("comment is required"),
			validation.RuneLength(1, MaxCommentLength),
		),
	)
}

// ToReview builds the entity for an already validated request.
func (r CreateReviewRequest) ToReview(bookID uuid.UUID, now time.Time) *Review {
	return &Review{
		ID:        uuid.New(),
		BookID:    bookID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateReviewRequest - PUT /reviews/:id
// Empty strings and a missing rating keep the stored value. A bookId sent
// by the client is not part of the request and is dropped on decode.
type UpdateReviewRequest struct {
	UserName string `json:"userName"`
	Rating   *int   `json:"rating"`
	Comment  string `json:"comment"`
}

func (r *UpdateReviewRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserName, validation.RuneLength(0, MaxUserNameLength)),
		validation.Field(&r.Rating, validation.When(r.Rating != nil, validation.By(ratingInRange))),
		validation.Field(&r.Comment, validation.RuneLength(0, MaxCommentLength)),
	)
}

// ratingInRange checks a provided *int rating. Min/Max treat 0 as empty and
// would let it through.
func ratingInRange(value interface{}) error {
	rating, ok := value.(*int)
	if !ok || rating == nil || *rating < MinRating || *rating > MaxRating {
		return errRatingRange
	}
	return nil
}

// ApplyTo merges the request into rv. It reports whether the rating changed,
// which is the only field the book's average depends on.
func (r UpdateReviewRequest) ApplyTo(rv *Review) bool {
	if r.UserName != "" {
		rv.UserName = r.UserName
	}
	if r.Comment != "" {
		rv.Comment = r.Comment
	}
	changed := false
	if r.Rating != nil && *r.Rating != rv.Rating {
		rv.Rating = *r.Rating
		changed = true
	}
	return changed
}
