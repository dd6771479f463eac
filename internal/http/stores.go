package http

import (
	"context"

	"github.com/mrlokans/catalogdb/internal/database"
	"github.com/mrlokans/catalogdb/internal/entities"
)

// This file consolidates all store interface definitions used by HTTP controllers.

// ReportStore runs the read-only catalog reports.
// Implemented by *database.Database.
type ReportStore interface {
	MostHelpfulReview(ctx context.Context) (database.ReviewReport, error)
	LeastHelpfulReview(ctx context.Context) (database.ReviewReport, error)
	MostConciseHelpfulReview(ctx context.Context) (database.ReviewReport, error)
	EarliestReview(ctx context.Context) (database.DatedReviewReport, error)
	MostExpensiveBook(ctx context.Context) (database.BookPriceReport, error)
	CheapestBook(ctx context.Context) (database.BookPriceReport, error)
	Stats(ctx context.Context) (database.Stats, error)
}

// LoadRunStore provides read access to the load run history.
// Implemented by *loadruns.Repository.
type LoadRunStore interface {
	Recent(limit int) ([]entities.LoadRun, error)
	Get(id string) (*entities.LoadRun, error)
}

// LoadQueue enqueues background catalog loads.
// Implemented by *tasks.Client.
type LoadQueue interface {
	Enqueue(trigger entities.LoadTrigger) (string, error)
	Status(ctx context.Context, taskID string) (string, error)
}

// Pinger checks database connectivity.
// Implemented by *database.Database.
type Pinger interface {
	Ping() error
}
