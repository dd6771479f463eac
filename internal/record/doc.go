// Package record provides field extraction for raw catalog and review records.
//
// A Record is one JSON object decoded from a line of a newline-delimited
// input file. Keys are not guaranteed to be present and values are not
// guaranteed to have the expected type, so every lookup returns an Opt:
//
//	price := rec.Float(record.KeyPrice)   // Opt[float64]
//	price.Or(record.UnknownPrice)          // -1 when absent or malformed
//
// Lookups never fail. Whether a missing value is acceptable is decided by the
// caller with exactly one of two helpers:
//
//	title := rec.String(record.KeyTitle).Or("")               // optional field
//	asin, err := record.Required(record.KeyASIN, rec.String(record.KeyASIN)) // required field
//
// Sentinel values (UnknownPrice, UnknownSalesRankCode, UnknownHelpfulScore,
// UnknownReviewDate) are only meant for the row output boundary. Code working
// with normalized values should keep the Opt and test Present instead.
package record
