package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/catalogdb/internal/entities"
	"github.com/mrlokans/catalogdb/internal/loader"
)

const loadCatalogQueue = "load_catalog"

// LoadRunner performs a catalog load.
type LoadRunner interface {
	Run(ctx context.Context, req loader.Request) (*entities.LoadRun, error)
}

// LoadCatalogTask replaces the catalog tables from the given input files.
type LoadCatalogTask struct {
	BooksPath   string               `json:"books_path"`
	ReviewsPath string               `json:"reviews_path"`
	Trigger     entities.LoadTrigger `json:"trigger"`
}

// Config returns the queue configuration for catalog loads.
// A failed load is not retried: the input has to be fixed first.
func (t LoadCatalogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        loadCatalogQueue,
		MaxAttempts: 1,
		Timeout:     2 * time.Hour,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// LoadCatalogProcessor creates a processor function for LoadCatalogTask.
func LoadCatalogProcessor(runner LoadRunner) backlite.QueueProcessor[LoadCatalogTask] {
	return func(ctx context.Context, task LoadCatalogTask) error {
		if runner == nil {
			return errors.New("load runner not configured")
		}

		run, err := runner.Run(ctx, loader.Request{
			BooksPath:   task.BooksPath,
			ReviewsPath: task.ReviewsPath,
			Trigger:     task.Trigger,
		})
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		log.Printf("[TASK] Catalog load %s finished: %d books, %d reviews", run.ID, run.BooksLoaded, run.ReviewsLoaded)
		return nil
	}
}
