package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/catalogdb/internal/entities"
)

// Loads replace whole tables, so the queue never runs two at once.
const loadWorkers = 1

// Client queues catalog loads in a backlite database that lives next to the
// catalog database and runs them one at a time on a LoadRunner.
type Client struct {
	queue *backlite.Client
	db    *sql.DB
	cfg   Config

	mu      sync.Mutex
	started bool
}

// TasksDBPath returns where the queue for catalogDBPath is stored. Load runs
// drop and recreate catalog tables, so the queue gets a file of its own.
func TasksDBPath(catalogDBPath string) string {
	ext := filepath.Ext(catalogDBPath)
	return strings.TrimSuffix(catalogDBPath, ext) + "-tasks" + ext
}

// NewClient opens the queue database for catalogDBPath and registers the
// load_catalog queue backed by runner.
func NewClient(catalogDBPath string, cfg Config, runner LoadRunner) (*Client, error) {
	if runner == nil {
		return nil, errors.New("load runner is required")
	}

	db, err := sql.Open("sqlite3", TasksDBPath(catalogDBPath)+"?_journal=WAL&_timeout=5000&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}
	// One connection for the worker, the rest for the dispatcher, cleanup and enqueues.
	db.SetMaxOpenConns(loadWorkers + 3)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	queue, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      loadWorkers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          queueLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create load queue: %w", err)
	}
	if err := queue.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install load queue schema: %w", err)
	}

	queue.Register(backlite.NewQueue(LoadCatalogProcessor(runner)))

	return &Client{queue: queue, db: db, cfg: cfg}, nil
}

// Start processes queued loads until ctx is cancelled or Stop is called.
// It does not block.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	log.Printf("[TASK] Load queue started (books=%s reviews=%s)", c.cfg.BooksPath, c.cfg.ReviewsPath)
	c.queue.Start(ctx)
}

// Stop waits for a running load to finish or for ctx to expire. It reports
// whether the worker finished in time.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if !started {
		return true
	}

	if !c.queue.Stop(ctx) {
		log.Println("[TASK] Load queue stopped before the running load finished")
		return false
	}
	log.Println("[TASK] Load queue stopped")
	return true
}

// Close releases the queue database. Call it after Stop.
func (c *Client) Close() error {
	return c.db.Close()
}

// Enqueue schedules a load of the configured input files and returns its task id.
func (c *Client) Enqueue(trigger entities.LoadTrigger) (string, error) {
	ids, err := c.queue.Add(LoadCatalogTask{
		BooksPath:   c.cfg.BooksPath,
		ReviewsPath: c.cfg.ReviewsPath,
		Trigger:     trigger,
	}).Save()
	if err != nil {
		return "", fmt.Errorf("failed to enqueue catalog load: %w", err)
	}
	if len(ids) == 0 {
		return "", errors.New("failed to enqueue catalog load: no task id returned")
	}
	log.Printf("[TASK] Catalog load queued as %s (%s)", ids[0], trigger)
	return ids[0], nil
}

// Status returns the status name of a queued load.
func (c *Client) Status(ctx context.Context, taskID string) (string, error) {
	status, err := c.queue.Status(ctx, taskID)
	if err != nil {
		return "", err
	}
	return StatusName(status), nil
}

// StatusName maps a backlite status to the name used in API responses.
func StatusName(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

type queueLogger struct{}

func (queueLogger) Info(message string, params ...any) {
	log.Printf("[TASK] "+message, params...)
}

func (queueLogger) Error(message string, params ...any) {
	log.Printf("[TASK ERROR] "+message, params...)
}
