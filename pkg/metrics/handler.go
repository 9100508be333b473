package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"requests_total":        GetRequests(),
		"request_errors_total":  GetRequestErrors(),
		"books_created_total":   GetBooksCreated(),
		"reviews_written_total": GetReviewsWritten(),
	})
}

// Middleware counts every request, and every 5xx as an error.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		IncrementRequests()
		c.Next()
		if c.Writer.Status() >= http.StatusInternalServerError {
			IncrementRequestErrors()
		}
	}
}
