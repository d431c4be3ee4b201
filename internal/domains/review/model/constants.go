package model

const (
	// Rating
	MinRating = 1
	MaxRating = 5

	// Content limits
	MaxUserNameLength = 100
	MaxCommentLength  = 2000
)
