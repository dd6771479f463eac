// Package loadruns provides database operations for load run bookkeeping.
//
// Every attempt to replace the catalog tables gets a row in load_runs, created
// as running and finished as completed or failed.
//
// # Usage
//
//	repo := loadruns.NewRepository(db)
//	run, err := repo.Start(entities.LoadTriggerCLI, booksPath, reviewsPath)
//	...
//	err = repo.Complete(run, books, reviews)
package loadruns

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/catalogdb/internal/entities"
)

var ErrNotFound = errors.New("load run not found")

// Repository handles all load run database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new load run repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Start records a new running load and returns it.
func (r *Repository) Start(trigger entities.LoadTrigger, booksPath, reviewsPath string) (*entities.LoadRun, error) {
	run := &entities.LoadRun{
		ID:          uuid.NewString(),
		Trigger:     trigger,
		Status:      entities.LoadStatusRunning,
		BooksPath:   booksPath,
		ReviewsPath: reviewsPath,
		StartedAt:   time.Now(),
	}
	if err := r.db.Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

// Complete marks run as completed with the committed row counts.
func (r *Repository) Complete(run *entities.LoadRun, books, reviews int) error {
	now := time.Now()
	run.Status = entities.LoadStatusCompleted
	run.BooksLoaded = books
	run.ReviewsLoaded = reviews
	run.CompletedAt = &now
	return r.db.Save(run).Error
}

// Fail marks run as failed. Row counts are reset since nothing was committed.
func (r *Repository) Fail(run *entities.LoadRun, cause error) error {
	now := time.Now()
	run.Status = entities.LoadStatusFailed
	run.BooksLoaded = 0
	run.ReviewsLoaded = 0
	run.CompletedAt = &now
	if cause != nil {
		run.Error = cause.Error()
	}
	return r.db.Save(run).Error
}

func (r *Repository) Get(id string) (*entities.LoadRun, error) {
	var run entities.LoadRun
	err := r.db.Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Latest returns the most recently started run.
func (r *Repository) Latest() (*entities.LoadRun, error) {
	runs, err := r.Recent(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrNotFound
	}
	return &runs[0], nil
}

// Recent returns up to limit runs, newest first.
func (r *Repository) Recent(limit int) ([]entities.LoadRun, error) {
	var runs []entities.LoadRun
	err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// IsRunning reports whether a load started within staleAfter is still running.
// Older running rows belong to a process that died mid-load and are marked failed.
func (r *Repository) IsRunning(staleAfter time.Duration) (bool, error) {
	var runs []entities.LoadRun
	err := r.db.Where("status = ?", entities.LoadStatusRunning).Find(&runs).Error
	if err != nil {
		return false, err
	}

	threshold := time.Now().Add(-staleAfter)
	running := false
	for i := range runs {
		if runs[i].StartedAt.Before(threshold) {
			if err := r.Fail(&runs[i], errors.New("load was interrupted")); err != nil {
				return false, err
			}
			log.Printf("[LOAD] Run %s started at %s never finished; marked as failed",
				runs[i].ID, runs[i].StartedAt.Format(time.RFC3339))
			continue
		}
		running = true
	}
	return running, nil
}
