package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrlokans/catalogdb/internal/config"
	"github.com/mrlokans/catalogdb/internal/database"
	"github.com/mrlokans/catalogdb/internal/database/loadruns"
	"github.com/mrlokans/catalogdb/internal/entities"
	"github.com/mrlokans/catalogdb/internal/loader"
	"github.com/mrlokans/catalogdb/internal/metrics"
)

// ErrLoadInProgress is returned when another process is loading into the
// same database.
var ErrLoadInProgress = errors.New("another load is in progress")

type LoadCommand struct {
	BooksPath    string
	ReviewsPath  string
	DatabasePath string
	BatchSize    int
	StaleAfter   time.Duration
	Verbose      bool
}

func NewLoadCommand() *LoadCommand {
	return &LoadCommand{}
}

func (cmd *LoadCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("load", flag.ExitOnError)

	fs.StringVar(&cmd.BooksPath, "books", config.DefaultBooksPath, "Path to the book metadata file (JSON lines)")
	fs.StringVar(&cmd.ReviewsPath, "reviews", config.DefaultReviewsPath, "Path to the reviews file (JSON lines)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.IntVar(&cmd.BatchSize, "batch-size", config.DefaultBatchSize, "Rows per insert statement; larger values are split to fit SQLite's parameter limit")
	fs.DurationVar(&cmd.StaleAfter, "stale-after", config.DefaultStaleLoadAfter, "Treat unfinished loads older than this as interrupted")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s load [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Normalize both input files and replace the books and reviews tables.\n")
		fmt.Fprintf(os.Stderr, "Nothing is changed if either file contains a malformed line.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s load -books ./meta_Books.json -reviews ./reviews_Books.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s load -db ./catalog.db -batch-size 2000 -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.BooksPath == "" || cmd.ReviewsPath == "" {
		fs.Usage()
		return fmt.Errorf("both -books and -reviews are required")
	}
	if cmd.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", cmd.BatchSize)
	}

	return nil
}

func (cmd *LoadCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return cmd.run(ctx)
}

func (cmd *LoadCommand) run(ctx context.Context) error {
	if cmd.Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runs := loadruns.NewRepository(db.DB)
	staleAfter := cmd.StaleAfter
	if staleAfter <= 0 {
		staleAfter = config.DefaultStaleLoadAfter
	}
	running, err := runs.IsRunning(staleAfter)
	if err != nil {
		return fmt.Errorf("failed to check for running loads: %w", err)
	}
	if running {
		return fmt.Errorf("%w in %s", ErrLoadInProgress, cmd.DatabasePath)
	}

	l := loader.NewLoader(db, runs, metrics.NewMetrics(), cmd.BatchSize)

	fmt.Printf("Loading catalog into %s\n", cmd.DatabasePath)
	fmt.Printf("  books:   %s\n", cmd.BooksPath)
	fmt.Printf("  reviews: %s\n", cmd.ReviewsPath)

	run, err := l.Run(ctx, loader.Request{
		BooksPath:   cmd.BooksPath,
		ReviewsPath: cmd.ReviewsPath,
		Trigger:     entities.LoadTriggerCLI,
	})
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	fmt.Printf("\n=== Load Results ===\n")
	fmt.Printf("Run:      %s\n", run.ID)
	fmt.Printf("Books:    %d\n", run.BooksLoaded)
	fmt.Printf("Reviews:  %d\n", run.ReviewsLoaded)
	fmt.Printf("Duration: %s\n", run.Duration())

	return nil
}
