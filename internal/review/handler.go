package review

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/bookworm-labs/book-review-hub/internal/rating"
	"github.com/bookworm-labs/book-review-hub/pkg/database"
	"github.com/bookworm-labs/book-review-hub/pkg/metrics"
	"github.com/bookworm-labs/book-review-hub/pkg/models"
	"github.com/bookworm-labs/book-review-hub/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handler handles review-related operations
type Handler struct{}

// NewHandler creates a new review handler
func NewHandler() *Handler {
	return &Handler{}
}

// AddReview creates a review. A user can review a given book at most once;
// the reviews table's UNIQUE(book_id, user_id) constraint is authoritative,
// the pre-check just gives a friendlier message on the common path.
func (h *Handler) AddReview(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists int
	err := database.DB.QueryRow(`SELECT 1 FROM books WHERE id = ?`, req.BookID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	err = database.DB.QueryRow(`SELECT 1 FROM reviews WHERE book_id = ? AND user_id = ?`, req.BookID, userID).Scan(&exists)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already reviewed this book"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	reviewID, err := utils.GenerateID(16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate review ID"})
		return
	}

	now := time.Now().UTC()
	query := `INSERT INTO reviews (id, book_id, user_id, rating, review_text, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = database.DB.Exec(query, reviewID, req.BookID, userID, req.Rating, req.ReviewText, now, now)
	if err != nil {
		// Concurrent duplicate that slipped past the pre-check.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			c.JSON(http.StatusConflict, gin.H{"error": "You already reviewed this book"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
		return
	}

	metrics.IncrementReviewsWritten()

	c.JSON(http.StatusCreated, models.Review{
		ID:         reviewID,
		BookID:     req.BookID,
		UserID:     userID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// GetReviewsByBook returns all reviews for a book with reviewer names and the
// average rating at two decimal places.
func (h *Handler) GetReviewsByBook(c *gin.Context) {
	bookID := c.Param("bookId")

	reviews, err := FetchForBook(bookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}

	c.JSON(http.StatusOK, models.BookReviewsResponse{
		Reviews:       reviews,
		AverageRating: rating.Round2(rating.Average(ratings)),
	})
}

// UpdateReview applies a merge-if-truthy patch; only the author may update
func (h *Handler) UpdateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	reviewID := c.Param("id")

	rev, err := fetchByID(reviewID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if rev.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.ApplyIfTruthy(&rev)
	rev.UpdatedAt = time.Now().UTC()

	update := `UPDATE reviews SET rating = ?, review_text = ?, updated_at = ? WHERE id = ?`
	if _, err := database.DB.Exec(update, rev.Rating, rev.ReviewText, rev.UpdatedAt, rev.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, rev)
}

// DeleteReview removes a review; only the author may delete
func (h *Handler) DeleteReview(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	reviewID := c.Param("id")

	rev, err := fetchByID(reviewID)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if rev.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if _, err := database.DB.Exec(`DELETE FROM reviews WHERE id = ?`, reviewID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// FetchForBook returns every review for a book with the reviewer's username
// attached, newest first.
func FetchForBook(bookID string) ([]models.ReviewWithAuthor, error) {
	query := `
        SELECT r.id, r.book_id, r.user_id, r.rating, r.review_text, r.created_at, r.updated_at, u.username
        FROM reviews r
        JOIN users u ON r.user_id = u.id
        WHERE r.book_id = ?
        ORDER BY r.created_at DESC
    `
	rows, err := database.DB.Query(query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.ReviewWithAuthor{}
	for rows.Next() {
		var r models.ReviewWithAuthor
		if err := rows.Scan(&r.ID, &r.BookID, &r.UserID, &r.Rating, &r.ReviewText, &r.CreatedAt, &r.UpdatedAt, &r.Username); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func fetchByID(reviewID string) (models.Review, error) {
	var rev models.Review
	query := `SELECT id, book_id, user_id, rating, review_text, created_at, updated_at FROM reviews WHERE id = ?`
	err := database.DB.QueryRow(query, reviewID).
		Scan(&rev.ID, &rev.BookID, &rev.UserID, &rev.Rating, &rev.ReviewText, &rev.CreatedAt, &rev.UpdatedAt)
	return rev, err
}
