package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalogdb/internal/database/loadruns"
	"github.com/mrlokans/catalogdb/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seq[T any](rows ...T) func(func(T, error) bool) {
	return func(yield func(T, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
	}
}

func failingSeq[T any](err error, rows ...T) func(func(T, error) bool) {
	return func(yield func(T, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
		var zero T
		yield(zero, err)
	}
}

func book(asin, title string, price float64) entities.BookRow {
	return entities.BookRow{
		ASIN:            asin,
		Title:           title,
		LenTitle:        len(title),
		Price:           price,
		SalesRankCode:   -1,
		AlsoViewed:      []string{},
		AlsoBought:      []string{"X", "Y"},
		BoughtTogether:  []string{},
		BuyAfterViewing: []string{},
		LenAlsoBought:   2,
	}
}

func review(asin, text string, count, total int64, date string) entities.ReviewRow {
	score := -1.0
	if total > 0 {
		score = float64(count) / float64(total)
	}
	return entities.ReviewRow{
		ASIN:                    asin,
		HelpfulCount:            count,
		TotalHelpfulVotes:       total,
		HelpfulScore:            score,
		Overall:                 4,
		Review:                  text,
		LenReviewCharacterCount: len(text),
		ReviewTime:              date,
		ReviewerName:            "reviewer of " + asin,
		Summary:                 "s",
		UnixReviewTime:          1,
	}
}

func TestDatabase_Load(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	counts, err := db.Load(ctx,
		seq(book("B1", "Go", 10), book("B2", "Rust", 20), book("B1", "Go again", 5)),
		seq(review("B1", "good", 1, 2, "2010-01-02")),
		2,
	)
	require.NoError(t, err)
	assert.Equal(t, LoadCounts{Books: 3, Reviews: 1}, counts)

	var books []entities.BookRow
	require.NoError(t, db.DB.Order("rowid").Find(&books).Error)
	require.Len(t, books, 3)
	assert.Equal(t, "B1", books[2].ASIN, "duplicate asins are kept")
	assert.Equal(t, []string{"X", "Y"}, books[0].AlsoBought)
	assert.Equal(t, []string{}, books[0].AlsoViewed)
}

func TestDatabase_LoadReplacesPreviousContents(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Load(ctx, seq(book("B1", "Old", 1)), seq(review("B1", "old", 0, 0, "1900-01-01")), 0)
	require.NoError(t, err)

	counts, err := db.Load(ctx, seq(book("B2", "New", 2)), seq[entities.ReviewRow](), 0)
	require.NoError(t, err)
	assert.Equal(t, LoadCounts{Books: 1}, counts)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Books)
	assert.Equal(t, int64(0), stats.Reviews)
}

func TestDatabase_LoadRollsBackOnSequenceError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Load(ctx, seq(book("B1", "Kept", 1)), seq(review("B1", "kept", 1, 1, "2011-01-01")), 0)
	require.NoError(t, err)

	boom := errors.New("reviews.json:3: missing required field summary")
	_, err = db.Load(ctx,
		seq(book("B2", "Discarded", 2), book("B3", "Discarded", 3)),
		failingSeq(boom, review("B2", "discarded", 0, 1, "2012-01-01")),
		1,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load reviews")

	var books []entities.BookRow
	require.NoError(t, db.DB.Find(&books).Error)
	require.Len(t, books, 1)
	assert.Equal(t, "Kept", books[0].Title)

	var reviews []entities.ReviewRow
	require.NoError(t, db.DB.Find(&reviews).Error)
	require.Len(t, reviews, 1)
	assert.Equal(t, "kept", reviews[0].Review)
}

func TestDatabase_LoadHonoursCancellation(t *testing.T) {
	db := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.Load(ctx, seq(book("B1", "Go", 1)), seq[entities.ReviewRow](), 0)
	require.Error(t, err)
}

func TestDatabase_LoadSplitsOversizedBatches(t *testing.T) {
	db := setupTestDB(t)

	books := make([]entities.BookRow, 2000)
	for i := range books {
		books[i] = book(fmt.Sprintf("B%04d", i), "Title", float64(i))
	}

	counts, err := db.Load(context.Background(), seq(books...), seq[entities.ReviewRow](), 2000)
	require.NoError(t, err)
	assert.Equal(t, 2000, counts.Books)

	var stored int64
	require.NoError(t, db.DB.Model(&entities.BookRow{}).Count(&stored).Error)
	assert.Equal(t, int64(2000), stored)
}

func TestRowsPerStatement(t *testing.T) {
	db := setupTestDB(t)

	n, err := rowsPerStatement[entities.BookRow](db.DB, 5000)
	require.NoError(t, err)
	assert.Equal(t, 32766/18, n)

	n, err = rowsPerStatement[entities.ReviewRow](db.DB, 5000)
	require.NoError(t, err)
	assert.Equal(t, 32766/11, n)

	n, err = rowsPerStatement[entities.BookRow](db.DB, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
}

func TestDatabase_Reports(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Load(ctx,
		seq(
			book("B1", "Go", 10),
			book("B2", "Rust", 30),
			book("B3", "Unpriced", -1),
			book("B4", "Free", 0),
		),
		seq(
			review("B1", "a thoughtful and very long review of the Go book", 9, 10, "2012-05-01"),
			review("B2", "perfect", 4, 4, "2011-03-09"),
			review("B2", "also perfect and with more votes than the other", 8, 8, "1900-01-01"),
			review("B3", "useless", 0, 12, "2013-01-01"),
			review("B9", "orphan", 0, 3, "2009-01-01"),
		),
		0,
	)
	require.NoError(t, err)

	t.Run("most helpful prefers more votes on equal score", func(t *testing.T) {
		got, err := db.MostHelpfulReview(ctx)
		require.NoError(t, err)
		assert.Equal(t, ReviewReport{
			Title:        "Rust",
			ReviewerName: "reviewer of B2",
			Review:       "also perfect and with more votes than the other",
		}, got)
	})

	t.Run("least helpful", func(t *testing.T) {
		got, err := db.LeastHelpfulReview(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Unpriced", got.Title)
		assert.Equal(t, "useless", got.Review)
	})

	t.Run("most concise", func(t *testing.T) {
		got, err := db.MostConciseHelpfulReview(ctx)
		require.NoError(t, err)
		assert.Equal(t, "perfect", got.Review)
	})

	t.Run("most expensive", func(t *testing.T) {
		got, err := db.MostExpensiveBook(ctx)
		require.NoError(t, err)
		assert.Equal(t, BookPriceReport{Title: "Rust", Price: 30}, got)
	})

	t.Run("cheapest skips unknown prices", func(t *testing.T) {
		got, err := db.CheapestBook(ctx)
		require.NoError(t, err)
		assert.Equal(t, BookPriceReport{Title: "Free", Price: 0}, got)
	})

	t.Run("earliest skips sentinel dates and orphan reviews", func(t *testing.T) {
		got, err := db.EarliestReview(ctx)
		require.NoError(t, err)
		assert.Equal(t, DatedReviewReport{Title: "Rust", ReviewTime: "2011-03-09", Review: "perfect"}, got)
	})
}

func TestDatabase_ReportsOrphanReviewHasEmptyTitle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.Load(ctx, seq[entities.BookRow](), seq(review("B9", "orphan", 1, 1, "2009-01-01")), 0)
	require.NoError(t, err)

	got, err := db.MostHelpfulReview(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", got.Title)
	assert.Equal(t, "orphan", got.Review)
}

func TestDatabase_ReportsOnEmptyTables(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.MostHelpfulReview(ctx)
	assert.ErrorIs(t, err, ErrNoResult)
	_, err = db.CheapestBook(ctx)
	assert.ErrorIs(t, err, ErrNoResult)
	_, err = db.EarliestReview(ctx)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestDatabase_Stats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Nil(t, stats.LastLoad)

	repo := loadruns.NewRepository(db.DB)
	run, err := repo.Start(entities.LoadTriggerCLI, "b", "r")
	require.NoError(t, err)

	_, err = db.Load(ctx, seq(book("B1", "Go", 1)), seq(review("B1", "x", 0, 0, "1900-01-01")), 0)
	require.NoError(t, err)
	require.NoError(t, repo.Complete(run, 1, 1))

	stats, err = db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Books)
	assert.Equal(t, int64(1), stats.Reviews)
	require.NotNil(t, stats.LastLoad)
	assert.Equal(t, run.ID, stats.LastLoad.ID)
}
