package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalogdb/internal/entities"
	"github.com/mrlokans/catalogdb/internal/loader"
)

type fakeRunner struct {
	requests chan loader.Request
	err      error
}

func newFakeRunner(err error) *fakeRunner {
	return &fakeRunner{requests: make(chan loader.Request, 2), err: err}
}

func (f *fakeRunner) Run(ctx context.Context, req loader.Request) (*entities.LoadRun, error) {
	f.requests <- req
	if f.err != nil {
		return &entities.LoadRun{ID: "run-1", Status: entities.LoadStatusFailed}, f.err
	}
	return &entities.LoadRun{ID: "run-1", Status: entities.LoadStatusCompleted, BooksLoaded: 2, ReviewsLoaded: 3}, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.BooksPath = "books.json"
	cfg.ReviewsPath = "reviews.json"
	return cfg
}

// startClient creates a running client on a fresh catalog path.
func startClient(t *testing.T, runner LoadRunner) *Client {
	t.Helper()
	client, err := NewClient(filepath.Join(t.TempDir(), "catalog.db"), testConfig(), runner)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go client.Start(ctx)

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer stopCancel()
		client.Stop(stopCtx)
		cancel()
		client.Close()
	})
	return client
}

func waitForStatus(t *testing.T, c *Client, id, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	var got string
	for time.Now().Before(deadline) {
		var err error
		got, err = c.Status(context.Background(), id)
		require.NoError(t, err)
		if got == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("task %s status = %q, want %q", id, got, want)
}

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "catalog-tasks.db"), TasksDBPath(filepath.Join("data", "catalog.db")))
	assert.Equal(t, "catalog-tasks", TasksDBPath("catalog"))
}

func TestNewClient_CreatesQueueDatabase(t *testing.T) {
	tmpDir := t.TempDir()

	client, err := NewClient(filepath.Join(tmpDir, "catalog.db"), testConfig(), newFakeRunner(nil))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(tmpDir, "catalog-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")
	assert.NoError(t, client.Close())
}

func TestNewClient_RequiresRunner(t *testing.T) {
	_, err := NewClient(filepath.Join(t.TempDir(), "catalog.db"), testConfig(), nil)
	assert.Error(t, err)
}

func TestClient_StopWithoutStart(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "catalog.db"), testConfig(), newFakeRunner(nil))
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, client.Stop(context.Background()))
}

func TestClient_EnqueueRunsLoad(t *testing.T) {
	runner := newFakeRunner(nil)
	client := startClient(t, runner)

	id, err := client.Enqueue(entities.LoadTriggerAPI)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case req := <-runner.requests:
		assert.Equal(t, loader.Request{
			BooksPath:   "books.json",
			ReviewsPath: "reviews.json",
			Trigger:     entities.LoadTriggerAPI,
		}, req)
	case <-time.After(5 * time.Second):
		t.Fatal("load was not executed within timeout")
	}

	waitForStatus(t, client, id, "success")
}

func TestClient_FailedLoadIsNotRetried(t *testing.T) {
	runner := newFakeRunner(errors.New("reviews.json:1: missing required field"))
	client := startClient(t, runner)

	id, err := client.Enqueue(entities.LoadTriggerSchedule)
	require.NoError(t, err)

	waitForStatus(t, client, id, "failure")
	assert.Len(t, runner.requests, 1)
}

func TestClient_StatusOfUnknownTask(t *testing.T) {
	client := startClient(t, newFakeRunner(nil))

	status, err := client.Status(context.Background(), "no-such-task")
	require.NoError(t, err)
	assert.Equal(t, "not_found", status)
}

func TestLoadCatalogProcessor_NoRunner(t *testing.T) {
	err := LoadCatalogProcessor(nil)(context.Background(), LoadCatalogTask{})
	assert.Error(t, err)
}

func TestLoadCatalogTaskConfig(t *testing.T) {
	cfg := LoadCatalogTask{}.Config()

	assert.Equal(t, "load_catalog", cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Hour, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "pending", StatusName(backlite.TaskStatusPending))
	assert.Equal(t, "success", StatusName(backlite.TaskStatusSuccess))
	assert.Equal(t, "not_found", StatusName(backlite.TaskStatusNotFound))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Empty(t, cfg.BooksPath)
}
