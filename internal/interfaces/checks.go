package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/catalogdb/internal/catalog"
	"github.com/mrlokans/catalogdb/internal/database"
	"github.com/mrlokans/catalogdb/internal/database/loadruns"
	"github.com/mrlokans/catalogdb/internal/http"
	"github.com/mrlokans/catalogdb/internal/loader"
	"github.com/mrlokans/catalogdb/internal/metrics"
	"github.com/mrlokans/catalogdb/internal/scheduler"
	"github.com/mrlokans/catalogdb/internal/tasks"
)

// =============================================================================
// Load Pipeline
// =============================================================================

var _ loader.Sink = (*database.Database)(nil)
var _ loader.RunStore = (*loadruns.Repository)(nil)
var _ loader.CacheInvalidator = (*http.ReportCache)(nil)
var _ catalog.Recorder = (*metrics.Metrics)(nil)

// =============================================================================
// Reporting
// =============================================================================

var _ http.ReportStore = (*database.Database)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ http.LoadRunStore = (*loadruns.Repository)(nil)

// =============================================================================
// Background Loads
// =============================================================================

var _ http.LoadQueue = (*tasks.Client)(nil)
var _ scheduler.LoadEnqueuer = (*tasks.Client)(nil)
var _ tasks.LoadRunner = (*loader.Loader)(nil)
