package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/catalogdb/internal/catalog"
	"github.com/mrlokans/catalogdb/internal/loader"
)

type NormalizeCommand struct {
	Kind  string
	File  string
	Limit int

	out io.Writer
}

func NewNormalizeCommand() *NormalizeCommand {
	return &NormalizeCommand{out: os.Stdout}
}

func (cmd *NormalizeCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)

	fs.StringVar(&cmd.Kind, "kind", "", "Record kind: book or review (required)")
	fs.StringVar(&cmd.File, "file", "", "Input file in JSON lines format (required)")
	fs.IntVar(&cmd.Limit, "limit", 0, "Stop after this many rows (0 = all)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s normalize [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Normalize an input file and print one JSON row per line without touching the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s normalize -kind book -file ./meta_Books.json -limit 10\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s normalize -kind review -file ./reviews_Books.json > reviews.jsonl\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.File == "" {
		fs.Usage()
		return fmt.Errorf("file is required")
	}
	if cmd.Kind != catalog.KindBook && cmd.Kind != catalog.KindReview {
		fs.Usage()
		return fmt.Errorf("kind must be %q or %q, got %q", catalog.KindBook, catalog.KindReview, cmd.Kind)
	}
	if cmd.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", cmd.Limit)
	}

	return nil
}

func (cmd *NormalizeCommand) Run() error {
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	w := bufio.NewWriter(out)

	n, err := loader.Normalize(w, cmd.Kind, cmd.File, cmd.Limit)
	if ferr := w.Flush(); err == nil && ferr != nil {
		err = ferr
	}
	if err != nil {
		return fmt.Errorf("normalized %d rows before failing: %w", n, err)
	}

	fmt.Fprintf(os.Stderr, "Normalized %d %s rows from %s\n", n, cmd.Kind, cmd.File)
	return nil
}
