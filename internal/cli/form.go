package cli

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"book-review-backend/internal/domains/review/model"
)

const ratingRangeMsg = "Rating must be between 1 and 5"

// ReviewForm is the add-review input gathered from flags.
type ReviewForm struct {
	UserName string
	Rating   int
	Comment  string
}

// Validate mirrors the web form: every field is required and 0 means no
// rating was selected.
func (f ReviewForm) Validate() error {
	return validation.Errors{
		"name": validation.Validate(strings.TrimSpace(f.UserName),
			validation.Required.Error("Name is required")),
		"rating": validation.Validate(f.Rating,
			validation.Required.Error("Please select a rating"),
			validation.Min(model.MinRating).Error(ratingRangeMsg),
			validation.Max(model.MaxRating).Error(ratingRangeMsg)),
		"comment": validation.Validate(strings.TrimSpace(f.Comment),
			validation.Required.Error("Review comment is required")),
	}.Filter()
}

// EditForm holds optional edits; zero values keep the stored field.
type EditForm struct {
	UserName string
	Rating   int
	Comment  string
}

func (f EditForm) Validate() error {
	return validation.Errors{
		"rating": validation.Validate(f.Rating,
			validation.When(f.Rating != 0,
				validation.Min(model.MinRating).Error(ratingRangeMsg),
				validation.Max(model.MaxRating).Error(ratingRangeMsg),
			)),
	}.Filter()
}
