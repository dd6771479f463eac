// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Load Pipeline
//
//   - loader.Sink: Replaces the books and reviews tables from row sequences (internal/loader/interfaces.go)
//   - loader.RunStore: Records load attempts (internal/loader/interfaces.go)
//   - loader.CacheInvalidator: Purged after every completed load (internal/loader/interfaces.go)
//   - catalog.Recorder: Counts normalized records and defaulted fields (internal/catalog/options.go)
//
// ## Reporting
//
//   - ReportStore: The six catalog reports plus table stats (internal/http/stores.go)
//   - LoadRunStore: Load run history (internal/http/stores.go)
//   - Pinger: Database health (internal/http/stores.go)
//
// ## Background Loads
//
//   - LoadQueue / scheduler.LoadEnqueuer: Queue a load on the task client (internal/tasks/client.go)
//   - tasks.LoadRunner: Executes a queued load (internal/tasks/load_catalog.go)
//
// # Adding a New Report
//
//  1. Add the query to internal/database/reports.go, using first[T] so an
//     empty result maps to ErrNoResult:
//
//     func (d *Database) LongestTitle(ctx context.Context) (BookPriceReport, error)
//
//  2. Extend ReportStore and add a handler that calls serveReport.
//
//  3. Register the route in router.go and add the endpoint to the report
//     table in internal/reportclient/client.go.
//
// # Adding a New Row Sink
//
// Any type with a Load method accepting the two row sequences can replace
// the sqlite sink:
//
//	var _ loader.Sink = (*MySink)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
