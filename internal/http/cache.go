package http

import (
	"log"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mrlokans/catalogdb/internal/metrics"
)

// ReportCache holds report responses keyed by route. Reports only change when
// a load completes, so the loader purges the whole cache at that point.
// A nil *ReportCache is a disabled cache.
//
// A report computed from the old tables may finish after the purge that
// follows a load. Callers read Generation before querying and pass it to Add,
// which drops the value if a purge happened in between.
type ReportCache struct {
	entries *lru.Cache[string, any]
	metrics *metrics.Metrics

	mu         sync.Mutex
	generation uint64
}

// NewReportCache returns a cache holding up to size responses, or nil when
// size is not positive.
func NewReportCache(size int, m *metrics.Metrics) (*ReportCache, error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New[string, any](size)
	if err != nil {
		return nil, err
	}
	return &ReportCache{entries: entries, metrics: m}, nil
}

func (rc *ReportCache) Get(key string) (any, bool) {
	if rc == nil {
		return nil, false
	}
	v, ok := rc.entries.Get(key)
	rc.metrics.IncCacheLookup(ok)
	return v, ok
}

// Generation returns a counter that changes on every Purge.
func (rc *ReportCache) Generation() uint64 {
	if rc == nil {
		return 0
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.generation
}

// Add stores value unless the cache was purged after generation was read.
// It reports whether the value was stored.
func (rc *ReportCache) Add(key string, value any, generation uint64) bool {
	if rc == nil {
		return false
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if generation != rc.generation {
		return false
	}
	rc.entries.Add(key, value)
	return true
}

// Purge drops every cached response.
func (rc *ReportCache) Purge() {
	if rc == nil {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.generation++
	log.Printf("Report cache purged (%d entries)", rc.entries.Len())
	rc.entries.Purge()
}

func (rc *ReportCache) Len() int {
	if rc == nil {
		return 0
	}
	return rc.entries.Len()
}
