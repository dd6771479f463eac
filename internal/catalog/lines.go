package catalog

import (
	"bufio"
	"bytes"
	"fmt"
	"iter"
	"os"

	"github.com/mrlokans/catalogdb/internal/record"
)

// maxLineSize bounds a single record. Book descriptions can be long, so the
// scanner default of 64KiB is not enough.
const maxLineSize = 16 * 1024 * 1024

// LineError identifies the input line that stopped a sequence.
type LineError struct {
	Path string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// readRows yields convert(record, lineNo) for every non-blank line of path, in
// order. The file is opened when iteration starts and closed when it stops, so
// the returned sequence can be ranged over again from the first line.
func readRows[T any](path string, convert func(rec record.Record, lineNo int) (T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		f, err := os.Open(path)
		if err != nil {
			yield(zero, fmt.Errorf("open input: %w", err))
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNo := 0
		for scanner.Scan() {
			lineNo++
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			rec, err := record.Parse(line)
			if err != nil {
				yield(zero, &LineError{Path: path, Line: lineNo, Err: err})
				return
			}

			row, err := convert(rec, lineNo)
			if err != nil {
				yield(zero, &LineError{Path: path, Line: lineNo, Err: err})
				return
			}

			if !yield(row, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(zero, &LineError{Path: path, Line: lineNo + 1, Err: fmt.Errorf("read input: %w", err)})
		}
	}
}
