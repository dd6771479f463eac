package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalogdb/internal/entities"
)

type fakeQueue struct {
	mu       sync.Mutex
	triggers []entities.LoadTrigger
	err      error
}

func (f *fakeQueue) Enqueue(trigger entities.LoadTrigger) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.triggers = append(f.triggers, trigger)
	return "task-1", nil
}

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		valid    bool
	}{
		{"0 3 * * *", true},
		{"*/15 * * * *", true},
		{"0 0 * * 0", true},
		{"0 0 0 * * *", false},
		{"every day", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNextRunTime(t *testing.T) {
	next, err := NextRunTime("0 3 * * *")
	require.NoError(t, err)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())

	_, err = NextRunTime("nope")
	assert.Error(t, err)
}

func TestReloadScheduler_StartStop(t *testing.T) {
	s := NewReloadScheduler(&fakeQueue{}, "0 3 * * *")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.NextRun())

	// Starting twice is a no-op
	require.NoError(t, s.Start(ctx))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())
}

func TestReloadScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewReloadScheduler(&fakeQueue{}, "0 3 * * *")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestReloadScheduler_InvalidSchedule(t *testing.T) {
	s := NewReloadScheduler(&fakeQueue{}, "not a schedule")

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestReloadScheduler_RunNow(t *testing.T) {
	q := &fakeQueue{}
	s := NewReloadScheduler(q, "0 3 * * *")

	s.RunNow()
	assert.Equal(t, []entities.LoadTrigger{entities.LoadTriggerSchedule}, q.triggers)

	q.err = errors.New("queue closed")
	s.RunNow()
	assert.Len(t, q.triggers, 1)
}
