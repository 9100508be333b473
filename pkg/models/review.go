package models

import "time"

type Review struct {
	ID         string    `json:"id" db:"id"`
	BookID     string    `json:"bookId" db:"book_id"`
	UserID     string    `json:"userId" db:"user_id"`
	Rating     int       `json:"rating" db:"rating"`
	ReviewText string    `json:"reviewText" db:"review_text"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// ReviewWithAuthor carries the reviewer's display name alongside the review,
// resolved with a join against users.
type ReviewWithAuthor struct {
	Review
	Username string `json:"username"`
}

type AddReviewRequest struct {
	BookID     string `json:"bookId" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	ReviewText string `json:"reviewText"`
}

// UpdateReviewRequest is a merge-if-truthy patch: a zero rating or empty text
// means "keep the existing value". Only rating and text are mutable.
type UpdateReviewRequest struct {
	Rating     int    `json:"rating" binding:"omitempty,min=1,max=5"`
	ReviewText string `json:"reviewText"`
}

// ApplyIfTruthy merges non-zero fields into rev, leaving zeroes untouched.
func (r UpdateReviewRequest) ApplyIfTruthy(rev *Review) {
	if r.Rating != 0 {
		rev.Rating = r.Rating
	}
	if r.ReviewText != "" {
		rev.ReviewText = r.ReviewText
	}
}

type BookReviewsResponse struct {
	Reviews       []ReviewWithAuthor `json:"reviews"`
	AverageRating float64            `json:"averageRating"`
}
