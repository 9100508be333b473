package metrics

import (
	"sync/atomic"
)

type Metrics struct {
	requestsTotal       int64
	requestErrorsTotal  int64
	booksCreatedTotal   int64
	reviewsWrittenTotal int64
}

var global = &Metrics{}

func IncrementRequests() {
	atomic.AddInt64(&global.requestsTotal, 1)
}

func IncrementRequestErrors() {
	atomic.AddInt64(&global.requestErrorsTotal, 1)
}

func IncrementBooksCreated() {
	atomic.AddInt64(&global.booksCreatedTotal, 1)
}

func IncrementReviewsWritten() {
	atomic.AddInt64(&global.reviewsWrittenTotal, 1)
}

func GetRequests() int64 {
	return atomic.LoadInt64(&global.requestsTotal)
}

func GetRequestErrors() int64 {
	return atomic.LoadInt64(&global.requestErrorsTotal)
}

func GetBooksCreated() int64 {
	return atomic.LoadInt64(&global.booksCreatedTotal)
}

func GetReviewsWritten() int64 {
	return atomic.LoadInt64(&global.reviewsWrittenTotal)
}

func Reset() {
	atomic.StoreInt64(&global.requestsTotal, 0)
	atomic.StoreInt64(&global.requestErrorsTotal, 0)
	atomic.StoreInt64(&global.booksCreatedTotal, 0)
	atomic.StoreInt64(&global.reviewsWrittenTotal, 0)
}
