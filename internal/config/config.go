package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Input
		Load
		Tasks
		Schedule
		Cache
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Input struct {
		BooksPath   string
		ReviewsPath string
	}
	Load struct {
		BatchSize int
	}
	Tasks struct {
		Enabled         bool
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Schedule struct {
		Enabled bool
		Cron    string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Cache struct {
		Size int // Report responses kept; 0 disables the cache
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("books_path", DefaultBooksPath)
	v.SetDefault("reviews_path", DefaultReviewsPath)
	v.SetDefault("load_batch_size", DefaultBatchSize)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_release_after", "30m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("load_schedule_enabled", false)
	v.SetDefault("load_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("report_cache_size", 32)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Input: Input{
			BooksPath:   v.GetString("BOOKS_PATH"),
			ReviewsPath: v.GetString("REVIEWS_PATH"),
		},
		Load: Load{
			BatchSize: v.GetInt("LOAD_BATCH_SIZE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Schedule: Schedule{
			Enabled: v.GetBool("LOAD_SCHEDULE_ENABLED"),
			Cron:    v.GetString("LOAD_SCHEDULE"),
		},
		Cache: Cache{
			Size: v.GetInt("REPORT_CACHE_SIZE"),
		},
	}
}
