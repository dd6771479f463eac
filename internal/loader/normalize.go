package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/mrlokans/catalogdb/internal/catalog"
)

var ErrUnknownKind = errors.New("unknown record kind")

// Normalize writes the rows produced from path as JSON lines to w without
// touching the database. kind is catalog.KindBook or catalog.KindReview. A
// positive limit stops after that many rows. It returns the number of rows
// written.
func Normalize(w io.Writer, kind, path string, limit int, opts ...catalog.Option) (int, error) {
	switch kind {
	case catalog.KindBook:
		return WriteRows(w, catalog.NewBookNormalizer(path, opts...).Rows(), limit)
	case catalog.KindReview:
		return WriteRows(w, catalog.NewReviewNormalizer(path, opts...).Rows(), limit)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// WriteRows encodes each row as one JSON line.
func WriteRows[T any](w io.Writer, rows iter.Seq2[T, error], limit int) (int, error) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	written := 0
	for row, err := range rows {
		if err != nil {
			return written, err
		}
		if err := enc.Encode(row); err != nil {
			return written, fmt.Errorf("failed to write row %d: %w", written+1, err)
		}
		written++
		if limit > 0 && written >= limit {
			break
		}
	}
	return written, nil
}
