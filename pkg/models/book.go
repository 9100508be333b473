package models

import "time"

type Book struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Author      string    `json:"author" db:"author"`
	Description string    `json:"description,omitempty" db:"description"`
	Genre       string    `json:"genre,omitempty" db:"genre"`
	Year        int       `json:"year,omitempty" db:"year"`
	AddedBy     string    `json:"addedBy" db:"added_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// BookWithRating is a Book plus the computed (not stored) average rating,
// attached during listing enrichment.
type BookWithRating struct {
	Book
	AverageRating float64 `json:"averageRating"`
}

type CreateBookRequest struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Year        int    `json:"year" binding:"omitempty,min=0"`
}

// UpdateBookRequest is an overwrite-all patch: any field present in the
// request body is applied to the book unconditionally, zero values included.
// Contrast with UpdateReviewRequest, which keeps existing values on zeroes.
type UpdateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
	Year        *int    `json:"year"`
}

// ApplyOverwrite merges every provided field into b.
func (r UpdateBookRequest) ApplyOverwrite(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Author != nil {
		b.Author = *r.Author
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	if r.Genre != nil {
		b.Genre = *r.Genre
	}
	if r.Year != nil {
		b.Year = *r.Year
	}
}

type ListBooksRequest struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

type PaginatedBooksResponse struct {
	Books      []BookWithRating `json:"books"`
	TotalPages int              `json:"totalPages"`
}

type BookDetailResponse struct {
	Book
	Reviews       []ReviewWithAuthor `json:"reviews"`
	AverageRating float64            `json:"averageRating"`
}
