package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// SalesRank is the category and rank code taken from a salesRank mapping.
type SalesRank struct {
	Category string
	Code     int64
}

// Helpful is the [count, total] helpfulness vote pair of a review.
type Helpful struct {
	Count int64
	Total int64
}

// String looks up a string value.
func (r Record) String(key string) Opt[string] {
	raw, ok := r.raw(key)
	if !ok {
		return None[string]()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return None[string]()
	}
	return Some(s)
}

// Float looks up a numeric value.
func (r Record) Float(key string) Opt[float64] {
	raw, ok := r.raw(key)
	if !ok {
		return None[float64]()
	}
	n, ok := number(raw)
	if !ok {
		return None[float64]()
	}
	f, err := n.Float64()
	if err != nil {
		return None[float64]()
	}
	return Some(f)
}

// Int looks up an integral numeric value. Floats with no fractional part are accepted.
func (r Record) Int(key string) Opt[int64] {
	raw, ok := r.raw(key)
	if !ok {
		return None[int64]()
	}
	i, ok := integer(raw)
	if !ok {
		return None[int64]()
	}
	return Some(i)
}

// Category returns the first element of the first category path.
func (r Record) Category() Opt[string] {
	raw, ok := r.raw(KeyCategories)
	if !ok {
		return None[string]()
	}
	var paths []json.RawMessage
	if err := json.Unmarshal(raw, &paths); err != nil || len(paths) == 0 {
		return None[string]()
	}
	var path []json.RawMessage
	if err := json.Unmarshal(paths[0], &path); err != nil || len(path) == 0 {
		return None[string]()
	}
	var category string
	if err := json.Unmarshal(path[0], &category); err != nil {
		return None[string]()
	}
	return Some(category)
}

// Related returns the asin list stored under related[name].
func (r Record) Related(name string) Opt[[]string] {
	raw, ok := r.raw(KeyRelated)
	if !ok {
		return None[[]string]()
	}
	var related map[string]json.RawMessage
	if err := json.Unmarshal(raw, &related); err != nil {
		return None[[]string]()
	}
	list, ok := related[name]
	if !ok || isNull(list) {
		return None[[]string]()
	}
	var asins []string
	if err := json.Unmarshal(list, &asins); err != nil {
		return None[[]string]()
	}
	return Some(asins)
}

// SalesRank returns the first entry of the salesRank mapping in source
// document order. Records carrying several ranks yield whichever the file
// lists first.
func (r Record) SalesRank() Opt[SalesRank] {
	raw, ok := r.raw(KeySalesRank)
	if !ok {
		return None[SalesRank]()
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') || !dec.More() {
		return None[SalesRank]()
	}
	tok, err = dec.Token()
	if err != nil {
		return None[SalesRank]()
	}
	category, ok := tok.(string)
	if !ok {
		return None[SalesRank]()
	}
	var value json.RawMessage
	if err := dec.Decode(&value); err != nil {
		return None[SalesRank]()
	}
	code, ok := integer(value)
	if !ok {
		return None[SalesRank]()
	}
	return Some(SalesRank{Category: category, Code: code})
}

// Helpful returns the [count, total] helpfulness pair.
func (r Record) Helpful() Opt[Helpful] {
	raw, ok := r.raw(KeyHelpful)
	if !ok {
		return None[Helpful]()
	}
	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
		return None[Helpful]()
	}
	count, ok := integer(pair[0])
	if !ok {
		return None[Helpful]()
	}
	total, ok := integer(pair[1])
	if !ok {
		return None[Helpful]()
	}
	return Some(Helpful{Count: count, Total: total})
}

// ReviewDate parses reviewTime as a calendar date. A missing value yields
// None with a nil error. A value that is present but unparseable yields None
// and an error wrapping ErrMalformedDate.
func (r Record) ReviewDate() (Opt[time.Time], error) {
	raw, ok := r.raw(KeyReviewTime)
	if !ok {
		return None[time.Time](), nil
	}
	s, ok := r.String(KeyReviewTime).Get()
	if !ok {
		return None[time.Time](), fmt.Errorf("%w: %s", ErrMalformedDate, raw)
	}
	t, err := time.Parse(ReviewTimeLayout, s)
	if err != nil {
		return None[time.Time](), fmt.Errorf("%w %q: %v", ErrMalformedDate, s, err)
	}
	return Some(t), nil
}

// HelpfulRatio computes count/total. It is absent when the pair is absent or
// nobody voted.
func HelpfulRatio(h Opt[Helpful]) Opt[float64] {
	pair, ok := h.Get()
	if !ok || pair.Total == 0 {
		return None[float64]()
	}
	return Some(float64(pair.Count) / float64(pair.Total))
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// number accepts JSON number literals only; quoted numbers are rejected.
func number(raw json.RawMessage) (json.Number, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !(raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) {
		return "", false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	return n, true
}

func integer(raw json.RawMessage) (int64, bool) {
	n, ok := number(raw)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return i, true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
