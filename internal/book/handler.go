package book

import (
	"database/sql"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/bookworm-labs/book-review-hub/internal/rating"
	"github.com/bookworm-labs/book-review-hub/internal/review"
	"github.com/bookworm-labs/book-review-hub/pkg/database"
	"github.com/bookworm-labs/book-review-hub/pkg/metrics"
	"github.com/bookworm-labs/book-review-hub/pkg/models"
	"github.com/bookworm-labs/book-review-hub/pkg/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const defaultPageSize = 5

// Handler handles book-related operations
type Handler struct{}

// NewHandler creates a new book handler
func NewHandler() *Handler {
	return &Handler{}
}

// CreateBook creates a new book owned by the authenticated user
func (h *Handler) CreateBook(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req models.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookID, err := utils.GenerateID(16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate book ID"})
		return
	}

	now := time.Now().UTC()
	query := `INSERT INTO books (id, title, author, description, genre, year, added_by, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = database.DB.Exec(query, bookID, req.Title, req.Author, req.Description, req.Genre, req.Year, userID, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
		return
	}

	metrics.IncrementBooksCreated()

	c.JSON(http.StatusCreated, models.Book{
		ID:          bookID,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Genre:       req.Genre,
		Year:        req.Year,
		AddedBy:     userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// ListBooks runs the listing pipeline: filter by search term, sort, paginate,
// then enrich the page with computed average ratings.
//
// sort=rating is page-local: the store-level order stays creation-time
// descending and only the fetched page is re-sorted by the computed average.
// Pages are therefore not globally rating-ordered; see README.
func (h *Handler) ListBooks(c *gin.Context) {
	var req models.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Page == 0 {
		req.Page = 1
	}
	if req.Limit == 0 {
		req.Limit = defaultPageSize
	}

	where := ""
	args := []interface{}{}
	if req.Search != "" {
		where = ` WHERE (title LIKE ? OR author LIKE ?)`
		pattern := "%" + req.Search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	if err := database.DB.QueryRow(`SELECT COUNT(*) FROM books`+where, args...).Scan(&total); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	totalPages := int(math.Ceil(float64(total) / float64(req.Limit)))

	orderBy := ` ORDER BY created_at DESC`
	if req.Sort == "year" {
		orderBy = ` ORDER BY year DESC`
	}

	query := `SELECT id, title, author, description, genre, year, added_by, created_at, updated_at FROM books` +
		where + orderBy + ` LIMIT ? OFFSET ?`
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Genre, &b.Year, &b.AddedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// One review fetch per book on the page, issued concurrently. The join is
	// all-or-nothing: a single failed fetch fails the whole page.
	enriched := make([]models.BookWithRating, len(books))
	g := new(errgroup.Group)
	for i, b := range books {
		i, b := i, b
		g.Go(func() error {
			ratings, err := fetchRatings(b.ID)
			if err != nil {
				return err
			}
			enriched[i] = models.BookWithRating{
				Book:          b,
				AverageRating: rating.Round1(rating.Average(ratings)),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if req.Sort == "rating" {
		sort.SliceStable(enriched, func(i, j int) bool {
			return enriched[i].AverageRating > enriched[j].AverageRating
		})
	}

	c.JSON(http.StatusOK, models.PaginatedBooksResponse{
		Books:      enriched,
		TotalPages: totalPages,
	})
}

// GetBookByID returns a book with its full review list and average rating
func (h *Handler) GetBookByID(c *gin.Context) {
	bookID := c.Param("id")

	var b models.Book
	query := `SELECT id, title, author, description, genre, year, added_by, created_at, updated_at FROM books WHERE id = ?`
	err := database.DB.QueryRow(query, bookID).
		Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Genre, &b.Year, &b.AddedBy, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	reviews, err := review.FetchForBook(bookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}

	c.JSON(http.StatusOK, models.BookDetailResponse{
		Book:          b,
		Reviews:       reviews,
		AverageRating: rating.Round2(rating.Average(ratings)),
	})
}

// UpdateBook applies an overwrite-all patch; only the creator may update
func (h *Handler) UpdateBook(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	bookID := c.Param("id")

	var b models.Book
	query := `SELECT id, title, author, description, genre, year, added_by, created_at, updated_at FROM books WHERE id = ?`
	err := database.DB.QueryRow(query, bookID).
		Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Genre, &b.Year, &b.AddedBy, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if b.AddedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var req models.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.ApplyOverwrite(&b)
	b.UpdatedAt = time.Now().UTC()

	update := `UPDATE books SET title = ?, author = ?, description = ?, genre = ?, year = ?, updated_at = ? WHERE id = ?`
	if _, err := database.DB.Exec(update, b.Title, b.Author, b.Description, b.Genre, b.Year, b.UpdatedAt, b.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// DeleteBook removes a book and, via FK cascade, its reviews; creator only
func (h *Handler) DeleteBook(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	bookID := c.Param("id")

	var addedBy string
	err := database.DB.QueryRow(`SELECT added_by FROM books WHERE id = ?`, bookID).Scan(&addedBy)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if addedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if _, err := database.DB.Exec(`DELETE FROM books WHERE id = ?`, bookID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

func fetchRatings(bookID string) ([]int, error) {
	rows, err := database.DB.Query(`SELECT rating FROM reviews WHERE book_id = ?`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var r int
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}
