package http

import (
	"github.com/mrlokans/catalogdb/internal/metrics"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database Pinger
	Reports  ReportStore

	// Report response cache (optional)
	Cache *ReportCache

	// Ingestion metrics exposed on /metrics (optional)
	Metrics *metrics.Metrics

	// Background loads (optional). The load endpoints are only
	// registered when LoadQueue is set; /api/runs/:id only needs LoadRuns.
	LoadQueue LoadQueue
	LoadRuns  LoadRunStore

	// Application info
	Version string
}
