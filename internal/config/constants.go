package config

import "time"

// Default paths and values shared by the server and the CLI commands
const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./catalog.db"

	// DefaultBooksPath is the default book metadata input file
	DefaultBooksPath = "./meta_Books.json"

	// DefaultReviewsPath is the default review input file
	DefaultReviewsPath = "./reviews_Books.json"

	// DefaultBatchSize is the number of rows per bulk insert statement
	DefaultBatchSize = 500

	// DefaultStaleLoadAfter is how long a running load may go without finishing
	// before it is treated as abandoned by a dead process
	DefaultStaleLoadAfter = 30 * time.Minute

	// DefaultServerURL is where the report command looks for a running server
	DefaultServerURL = "http://localhost:8188"
)
