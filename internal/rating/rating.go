// Package rating holds the shared rating-aggregation arithmetic used by the
// book listing/detail endpoints and the per-book review endpoint.
package rating

import "math"

// Average returns the arithmetic mean of ratings, or 0 for an empty set.
func Average(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// Round1 rounds to one decimal place. Used for listing summaries.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places. Used by the book detail and per-book
// reviews endpoints, which report a finer precision than the listings.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
