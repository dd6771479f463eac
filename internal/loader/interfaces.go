package loader

import (
	"context"
	"iter"

	"github.com/mrlokans/catalogdb/internal/database"
	"github.com/mrlokans/catalogdb/internal/entities"
)

// Sink replaces the stored catalog with the given rows atomically.
type Sink interface {
	Load(
		ctx context.Context,
		books iter.Seq2[entities.BookRow, error],
		reviews iter.Seq2[entities.ReviewRow, error],
		batchSize int,
	) (database.LoadCounts, error)
}

// RunStore keeps the load run history.
type RunStore interface {
	Start(trigger entities.LoadTrigger, booksPath, reviewsPath string) (*entities.LoadRun, error)
	Complete(run *entities.LoadRun, books, reviews int) error
	Fail(run *entities.LoadRun, cause error) error
}

// CacheInvalidator drops anything derived from the previous catalog.
type CacheInvalidator interface {
	Purge()
}
