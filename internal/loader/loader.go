package loader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/mrlokans/catalogdb/internal/catalog"
	"github.com/mrlokans/catalogdb/internal/database"
	"github.com/mrlokans/catalogdb/internal/entities"
	"github.com/mrlokans/catalogdb/internal/metrics"
)

var ErrInputNotFound = errors.New("input file not found")

// Request names the two input files of a load.
type Request struct {
	BooksPath   string
	ReviewsPath string
	Trigger     entities.LoadTrigger
}

// Loader runs the normalizers and hands their rows to the sink, recording
// every attempt as a load run.
type Loader struct {
	sink      Sink
	runs      RunStore
	metrics   *metrics.Metrics
	batchSize int

	cacheInvalidator CacheInvalidator

	// Loads in one process never overlap.
	mu sync.Mutex
}

// NewLoader creates a loader. m may be nil.
func NewLoader(sink Sink, runs RunStore, m *metrics.Metrics, batchSize int) *Loader {
	return &Loader{
		sink:      sink,
		runs:      runs,
		metrics:   m,
		batchSize: batchSize,
	}
}

// SetCacheInvalidator sets the cache purged after every completed load.
func (l *Loader) SetCacheInvalidator(c CacheInvalidator) {
	l.cacheInvalidator = c
}

// Run performs one load. The returned run is non-nil whenever the run could be
// recorded, including failed runs.
func (l *Loader) Run(ctx context.Context, req Request) (*entities.LoadRun, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	started := time.Now()
	run, err := l.runs.Start(req.Trigger, req.BooksPath, req.ReviewsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to record load run: %w", err)
	}
	log.Printf("[LOAD] Run %s started (%s): books=%s reviews=%s", run.ID, req.Trigger, req.BooksPath, req.ReviewsPath)

	counts, err := l.load(ctx, req)
	if err != nil {
		l.metrics.ObserveLoad(string(entities.LoadStatusFailed), time.Since(started))
		if ferr := l.runs.Fail(run, err); ferr != nil {
			log.Printf("[LOAD] Failed to mark run %s as failed: %v", run.ID, ferr)
		}
		log.Printf("[LOAD] Run %s failed after %s: %v", run.ID, time.Since(started).Round(time.Millisecond), err)
		return run, err
	}

	if err := l.runs.Complete(run, counts.Books, counts.Reviews); err != nil {
		return run, fmt.Errorf("failed to record load run completion: %w", err)
	}
	l.metrics.AddRowsLoaded("books", counts.Books)
	l.metrics.AddRowsLoaded("reviews", counts.Reviews)
	l.metrics.ObserveLoad(string(entities.LoadStatusCompleted), time.Since(started))

	if l.cacheInvalidator != nil {
		l.cacheInvalidator.Purge()
	}

	log.Printf("[LOAD] Run %s completed in %s: %d books, %d reviews",
		run.ID, run.Duration().Round(time.Millisecond), counts.Books, counts.Reviews)
	return run, nil
}

func (l *Loader) load(ctx context.Context, req Request) (database.LoadCounts, error) {
	for _, path := range []string{req.BooksPath, req.ReviewsPath} {
		if err := checkInput(path); err != nil {
			return database.LoadCounts{}, err
		}
	}

	books := catalog.NewBookNormalizer(req.BooksPath, catalog.WithRecorder(l.metrics))
	reviews := catalog.NewReviewNormalizer(req.ReviewsPath, catalog.WithRecorder(l.metrics))

	return l.sink.Load(ctx, books.Rows(), reviews.Rows(), l.batchSize)
}

func checkInput(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
