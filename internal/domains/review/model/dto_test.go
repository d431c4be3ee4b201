package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestCreateReviewRequest_Validate(t *testing.T) {
	valid := CreateReviewRequest{
		BookID:   uuid.NewString(),
		UserName: "Alice",
		Rating:   4,
		Comment:  "Great read",
	}

	tests := []struct {
		name    string
		mutate  func(r *CreateReviewRequest)
		wantErr string
	}{
		{"valid", func(r *CreateReviewRequest) {}, ""},
		{"missing book", func(r *CreateReviewRequest) { r.BookID = "" }, "bookId is required"},
		{"malformed book", func(r *CreateReviewRequest) { r.BookID = "abc" }, "bookId must be a valid id"},
		{"missing name", func(r *CreateReviewRequest) { r.UserName = "" }, "userName is required"},
		{"rating zero", func(r *CreateReviewRequest) { r.Rating = 0 }, "rating is required"},
		{"rating too high", func(r *CreateReviewRequest) { r.Rating = 6 }, "rating must be between 1 and 5"},
		{"rating negative", func(r *CreateReviewRequest) { r.Rating = -1 }, "rating must be between 1 and 5"},
		{"missing comment", func(r *CreateReviewRequest) { r.Comment = "" }, "comment is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestUpdateReviewRequest_Validate(t *testing.T) {
	assert.NoError(t, UpdateReviewRequest{}.Validate())
	assert.NoError(t, UpdateReviewRequest{Comment: "only the comment"}.Validate())

	tests := []struct {
		rating int
		valid  bool
	}{
		{-1, false},
		{0, false},
		{1, true},
		{3, true},
		{5, true},
		{6, false},
		{9, false},
	}

	for _, tt := range tests {
		err := UpdateReviewRequest{Rating: intPtr(tt.rating)}.Validate()
		if tt.valid {
			assert.NoError(t, err, "rating %d", tt.rating)
			continue
		}
		if assert.Error(t, err, "rating %d", tt.rating) {
			assert.Contains(t, err.Error(), "rating must be between 1 and 5")
		}
	}
}

func TestUpdateReviewRequest_ApplyTo(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	base := Review{
		ID:        uuid.New(),
		BookID:    uuid.New(),
		UserName:  "Alice",
		Rating:    3,
		Comment:   "Fine",
		CreatedAt: created,
	}

	t.Run("empty strings keep previous values", func(t *testing.T) {
		rv := base
		changed := UpdateReviewRequest{Rating: intPtr(5)}.ApplyTo(&rv)
		assert.True(t, changed)
		assert.Equal(t, "Alice", rv.UserName)
		assert.Equal(t, "Fine", rv.Comment)
		assert.Equal(t, 5, rv.Rating)
	})

	t.Run("book and creation time never change", func(t *testing.T) {
		rv := base
		changed := UpdateReviewRequest{UserName: "Bob", Comment: "Better"}.ApplyTo(&rv)
		assert.False(t, changed)
		assert.Equal(t, base.BookID, rv.BookID)
		assert.Equal(t, created, rv.CreatedAt)
		assert.Equal(t, "Bob", rv.UserName)
	})
}
