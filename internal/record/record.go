package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Top-level keys consumed from book and review records.
const (
	KeyASIN           = "asin"
	KeyTitle          = "title"
	KeyDescription    = "description"
	KeyCategories     = "categories"
	KeyPrice          = "price"
	KeyImageURL       = "imUrl"
	KeyRelated        = "related"
	KeySalesRank      = "salesRank"
	KeyOverall        = "overall"
	KeyReviewText     = "reviewText"
	KeyReviewTime     = "reviewTime"
	KeyReviewerName   = "reviewerName"
	KeySummary        = "summary"
	KeyUnixReviewTime = "unixReviewTime"
	KeyHelpful        = "helpful"
)

// Relation names under the "related" mapping.
const (
	RelationAlsoViewed      = "also_viewed"
	RelationAlsoBought      = "also_bought"
	RelationBoughtTogether  = "bought_together"
	RelationBuyAfterViewing = "buy_after_viewing"
)

// Sentinels written to rows in place of absent values.
const (
	UnknownPrice         = -1.0
	UnknownSalesRankCode = int64(-1)
	UnknownHelpfulScore  = -1.0
	UnknownReviewDate    = "1900-01-01"
)

const (
	// ReviewTimeLayout parses "MM DD, YYYY"; month and day may omit the leading zero.
	ReviewTimeLayout = "1 2, 2006"
	// DateLayout renders canonical calendar dates.
	DateLayout = "2006-01-02"
)

// Record is one raw JSON object. Values stay undecoded until looked up.
type Record map[string]json.RawMessage

// Parse decodes a single line into a Record.
func Parse(line []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(line, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformedJSON)
	}
	return r, nil
}

// raw returns the undecoded value for key. JSON null counts as absent.
func (r Record) raw(key string) (json.RawMessage, bool) {
	v, ok := r[key]
	if !ok || isNull(v) {
		return nil, false
	}
	return v, true
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
