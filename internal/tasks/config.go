package tasks

import "time"

// Config holds configuration for the catalog load queue.
type Config struct {
	// BooksPath and ReviewsPath are the input files every queued load reads.
	BooksPath   string
	ReviewsPath string

	// ReleaseAfter is when a load stuck in running is handed back to the queue. Default: 30m
	ReleaseAfter time.Duration

	// CleanupInterval is how often finished tasks past their retention are removed. Default: 1h
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults and no input paths.
func DefaultConfig() Config {
	return Config{
		ReleaseAfter:    30 * time.Minute,
		CleanupInterval: 1 * time.Hour,
	}
}
