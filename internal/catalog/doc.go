// Package catalog turns newline-delimited JSON files of book metadata and
// reviews into fixed-shape rows for the books and reviews tables.
//
// # Flow
//
//	file → line → record.Parse → NormalizeBook / NormalizeReview → Row() → entities.BookRow / entities.ReviewRow
//
// Both normalizers expose Rows, a lazy sequence that re-opens the file on
// every iteration, so the same normalizer can be ranged over more than once:
//
//	books := catalog.NewBookNormalizer("meta_Books.json")
//	for row, err := range books.Rows() {
//		if err != nil {
//			return err // *LineError: path and line of the offending record
//		}
//		// use row
//	}
//
// # Missing fields
//
// Book metadata is sparse: every book field is optional and falls back to its
// default. Reviews are dense: asin, overall, reviewText, summary,
// unixReviewTime and helpful are required, and a review missing any of them
// aborts the sequence. Only reviewerName and reviewTime are optional.
//
// Malformed JSON always aborts the sequence; there is no skip-and-continue mode.
package catalog
