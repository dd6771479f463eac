package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalogdb/internal/database"
)

// Report routes. The paths double as cache keys.
const (
	PathMostHelpfulReview  = "/reviews/most_helpful_review"
	PathLeastHelpfulReview = "/reviews/least_helpful_review"
	PathMostConciseReview  = "/reviews/most_concise_good_review"
	PathEarliestReview     = "/reviews/earliest_review"
	PathMostExpensiveBook  = "/books/most_expensive_book"
	PathCheapestBook       = "/books/cheapest_book"
)

// ReportsController serves the catalog reports.
type ReportsController struct {
	store ReportStore
	cache *ReportCache
}

// NewReportsController creates a new ReportsController. cache may be nil.
func NewReportsController(store ReportStore, cache *ReportCache) *ReportsController {
	return &ReportsController{store: store, cache: cache}
}

// Welcome handles GET /
func (rc *ReportsController) Welcome(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{"message": "Welcome to catalogdb!"})
}

// MostHelpfulReview handles GET /reviews/most_helpful_review
func (rc *ReportsController) MostHelpfulReview(c *gin.Context) {
	serveReport(c, rc.cache, PathMostHelpfulReview, rc.store.MostHelpfulReview)
}

// LeastHelpfulReview handles GET /reviews/least_helpful_review
func (rc *ReportsController) LeastHelpfulReview(c *gin.Context) {
	serveReport(c, rc.cache, PathLeastHelpfulReview, rc.store.LeastHelpfulReview)
}

// MostConciseReview handles GET /reviews/most_concise_good_review
func (rc *ReportsController) MostConciseReview(c *gin.Context) {
	serveReport(c, rc.cache, PathMostConciseReview, rc.store.MostConciseHelpfulReview)
}

// EarliestReview handles GET /reviews/earliest_review
func (rc *ReportsController) EarliestReview(c *gin.Context) {
	serveReport(c, rc.cache, PathEarliestReview, rc.store.EarliestReview)
}

// MostExpensiveBook handles GET /books/most_expensive_book
func (rc *ReportsController) MostExpensiveBook(c *gin.Context) {
	serveReport(c, rc.cache, PathMostExpensiveBook, rc.store.MostExpensiveBook)
}

// CheapestBook handles GET /books/cheapest_book
func (rc *ReportsController) CheapestBook(c *gin.Context) {
	serveReport(c, rc.cache, PathCheapestBook, rc.store.CheapestBook)
}

// Stats handles GET /api/stats
// Not cached: the latest load run changes even when a load fails.
func (rc *ReportsController) Stats(c *gin.Context) {
	stats, err := rc.store.Stats(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "stats")
		return
	}
	c.IndentedJSON(http.StatusOK, stats)
}

func serveReport[T any](c *gin.Context, cache *ReportCache, key string, query func(context.Context) (T, error)) {
	generation := cache.Generation()
	if cached, ok := cache.Get(key); ok {
		c.IndentedJSON(http.StatusOK, cached)
		return
	}

	result, err := query(c.Request.Context())
	if errors.Is(err, database.ErrNoResult) {
		respondNotFound(c, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, key)
		return
	}

	cache.Add(key, result, generation)
	c.IndentedJSON(http.StatusOK, result)
}
