package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/catalogdb/internal/database/loadruns"
	"github.com/mrlokans/catalogdb/internal/entities"
	"github.com/mrlokans/catalogdb/internal/record"
)

// ErrNoResult is returned by a report query that matched no rows.
var ErrNoResult = errors.New("no matching rows")

// ConciseReviewMaxChars is the exclusive upper bound on review length for
// MostConciseHelpfulReview.
const ConciseReviewMaxChars = 40

// ReviewReport is a single review together with the title of the reviewed book.
// Title is empty when the review's asin has no matching book.
type ReviewReport struct {
	Title        string `gorm:"column:title" json:"title"`
	ReviewerName string `gorm:"column:reviewer_name" json:"reviewer_name"`
	Review       string `gorm:"column:review" json:"review"`
}

type BookPriceReport struct {
	Title string  `gorm:"column:title" json:"title"`
	Price float64 `gorm:"column:price" json:"price"`
}

type DatedReviewReport struct {
	Title      string `gorm:"column:title" json:"title"`
	ReviewTime string `gorm:"column:review_time" json:"review_time"`
	Review     string `gorm:"column:review" json:"review"`
}

// Stats summarises the loaded tables.
type Stats struct {
	Books    int64             `json:"books"`
	Reviews  int64             `json:"reviews"`
	LastLoad *entities.LoadRun `json:"last_load,omitempty"`
}

const reviewWithTitle = `
SELECT COALESCE(b.title, '') AS title, r.reviewer_name AS reviewer_name, r.review AS review
FROM reviews r
LEFT JOIN books b ON b.asin = r.asin`

// MostHelpfulReview returns the review with the highest helpful score,
// preferring the one with more votes on ties.
func (d *Database) MostHelpfulReview(ctx context.Context) (ReviewReport, error) {
	return first[ReviewReport](ctx, d, reviewWithTitle+`
ORDER BY r.helpful_score DESC, r.total_helpful_votes DESC, r.rowid, b.rowid
LIMIT 1`)
}

// LeastHelpfulReview returns the most voted review that nobody found helpful.
func (d *Database) LeastHelpfulReview(ctx context.Context) (ReviewReport, error) {
	return first[ReviewReport](ctx, d, reviewWithTitle+`
WHERE r.helpful_score = 0
ORDER BY r.total_helpful_votes DESC, r.rowid, b.rowid
LIMIT 1`)
}

// MostConciseHelpfulReview returns the most helpful review shorter than
// ConciseReviewMaxChars characters.
func (d *Database) MostConciseHelpfulReview(ctx context.Context) (ReviewReport, error) {
	return first[ReviewReport](ctx, d, reviewWithTitle+`
WHERE r.len_review_character_count < ?
ORDER BY r.helpful_score DESC, r.total_helpful_votes DESC, r.rowid, b.rowid
LIMIT 1`, ConciseReviewMaxChars)
}

func (d *Database) MostExpensiveBook(ctx context.Context) (BookPriceReport, error) {
	return first[BookPriceReport](ctx, d, `
SELECT title, price FROM books
ORDER BY price DESC, rowid
LIMIT 1`)
}

// CheapestBook ignores books whose price is unknown.
func (d *Database) CheapestBook(ctx context.Context) (BookPriceReport, error) {
	return first[BookPriceReport](ctx, d, `
SELECT title, price FROM books
WHERE price > ?
ORDER BY price ASC, rowid
LIMIT 1`, record.UnknownPrice)
}

// EarliestReview returns the oldest review with a known date.
func (d *Database) EarliestReview(ctx context.Context) (DatedReviewReport, error) {
	return first[DatedReviewReport](ctx, d, `
SELECT b.title AS title, r.review_time AS review_time, r.review AS review
FROM books b
LEFT JOIN reviews r ON r.asin = b.asin
WHERE r.review_time > ?
ORDER BY r.review_time, b.rowid, r.rowid
LIMIT 1`, record.UnknownReviewDate)
}

func (d *Database) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	db := d.DB.WithContext(ctx)

	if err := db.Model(&entities.BookRow{}).Count(&stats.Books).Error; err != nil {
		return Stats{}, fmt.Errorf("count books: %w", err)
	}
	if err := db.Model(&entities.ReviewRow{}).Count(&stats.Reviews).Error; err != nil {
		return Stats{}, fmt.Errorf("count reviews: %w", err)
	}

	run, err := loadruns.NewRepository(db).Latest()
	if err != nil && !errors.Is(err, loadruns.ErrNotFound) {
		return Stats{}, fmt.Errorf("latest load run: %w", err)
	}
	stats.LastLoad = run

	return stats, nil
}

func first[T any](ctx context.Context, d *Database, query string, args ...any) (T, error) {
	var rows []T
	if err := d.DB.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		var zero T
		return zero, err
	}
	if len(rows) == 0 {
		var zero T
		return zero, ErrNoResult
	}
	return rows[0], nil
}
