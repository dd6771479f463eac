// Package database provides the sqlite storage for the normalized catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── sink.go          # Transactional replace of the books and reviews tables
//	├── reports.go       # Read-only report queries
//	└── loadruns/        # Load run bookkeeping
//
// # Loading
//
// Load consumes the lazy row sequences produced by the catalog normalizers.
// The tables are dropped, recreated and filled in one transaction, so readers
// see either the previous catalog or the complete new one:
//
//	db, err := database.NewDatabase("./catalog.db")
//	counts, err := db.Load(ctx, books.Rows(), reviews.Rows(), 500)
//
// # Reports
//
// Each report method returns a single row or ErrNoResult when nothing matched.
package database
