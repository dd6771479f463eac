package entities

import (
	"time"
)

type LoadTrigger string

const (
	LoadTriggerCLI      LoadTrigger = "cli"
	LoadTriggerAPI      LoadTrigger = "api"
	LoadTriggerSchedule LoadTrigger = "schedule"
)

type LoadStatus string

const (
	LoadStatusRunning   LoadStatus = "running"
	LoadStatusCompleted LoadStatus = "completed"
	LoadStatusFailed    LoadStatus = "failed"
)

// LoadRun records one attempt at replacing the books and reviews tables.
type LoadRun struct {
	ID            string      `gorm:"primaryKey;size:36" json:"id"`
	Trigger       LoadTrigger `gorm:"size:20" json:"trigger"`
	Status        LoadStatus  `gorm:"size:20;index" json:"status"`
	BooksPath     string      `gorm:"size:1024" json:"books_path"`
	ReviewsPath   string      `gorm:"size:1024" json:"reviews_path"`
	BooksLoaded   int         `json:"books_loaded"`
	ReviewsLoaded int         `json:"reviews_loaded"`
	Error         string      `gorm:"type:text" json:"error,omitempty"`
	StartedAt     time.Time   `gorm:"index" json:"started_at"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
}

func (LoadRun) TableName() string {
	return "load_runs"
}

// Duration returns how long the run took, or zero while it is still running.
func (r LoadRun) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}
