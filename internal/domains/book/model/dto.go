package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const (
	MaxTitleLength       = 300
	MaxAuthorLength      = 200
	MaxDescriptionLength = 5000
)

// CreateBookRequest - POST /books
// There is intentionally no averageRating field: whatever the client sends
// is dropped by the decoder.
type CreateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
}

func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Description = strings.TrimSpace(r.Description)
	r.CoverImage = strings.TrimSpace(r.CoverImage)
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.RuneLength(1, MaxAuthorLength),
		),
		validation.Field(&r.Description, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&r.CoverImage, is.URL.Error("coverImage must be a valid URL")),
	)
}

// ToBook builds a new entity. Average rating always starts at zero.
func (r CreateBookRequest) ToBook(now time.Time) *Book {
	return &Book{
		ID:            uuid.New(),
		Title:         r.Title,
		Author:        r.Author,
		Description:   r.Description,
		CoverImage:    r.CoverImage,
		AverageRating: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// UpdateBookRequest - PUT /books/:id
// Only the descriptive fields are editable; nil means "keep".
type UpdateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
	CoverImage  *string `json:"coverImage"`
}

func (r *UpdateBookRequest) Normalize() {
	for _, f := range []*string{r.Title, r.Author, r.Description, r.CoverImage} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil,
				validation.Required.Error("title cannot be empty"),
				validation.RuneLength(1, MaxTitleLength),
			),
		),
		validation.Field(&r.Author,
			validation.When(r.Author != nil,
				validation.Required.Error("author cannot be empty"),
				validation.RuneLength(1, MaxAuthorLength),
			),
		),
		validation.Field(&r.Description, validation.RuneLength(0, MaxDescriptionLength)),
		validation.Field(&r.CoverImage, is.URL.Error("coverImage must be a valid URL")),
	)
}

// ApplyTo copies the provided fields onto b.
func (r UpdateBookRequest) ApplyTo(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Author != nil {
		b.Author = *r.Author
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	if r.CoverImage != nil {
		b.CoverImage = *r.CoverImage
	}
}
