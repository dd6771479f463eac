package catalog

import (
	"errors"
	"iter"
	"log"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/catalogdb/internal/entities"
	"github.com/mrlokans/catalogdb/internal/record"
)

// Review is a normalized review record. Required fields are plain values;
// optional ones stay absent until Row.
type Review struct {
	ASIN           string
	Helpful        record.Helpful
	Overall        float64
	Text           string
	Summary        string
	UnixReviewTime int64
	Time           record.Opt[time.Time]
	ReviewerName   record.Opt[string]
}

// HelpfulScore is count/total, absent when nobody voted.
func (r Review) HelpfulScore() record.Opt[float64] {
	return record.HelpfulRatio(record.Some(r.Helpful))
}

// NormalizeReview extracts every review field from rec. A missing required
// field returns a *record.FieldError.
func NormalizeReview(rec record.Record) (Review, error) {
	return normalizeReview(rec, nil)
}

// normalizeReview calls onBadDate when reviewTime is present but unparseable.
func normalizeReview(rec record.Record, onBadDate func(error)) (Review, error) {
	var (
		r   Review
		err error
	)

	if r.ASIN, err = record.Required(record.KeyASIN, rec.String(record.KeyASIN)); err != nil {
		return Review{}, err
	}
	if r.Helpful, err = record.Required(record.KeyHelpful, rec.Helpful()); err != nil {
		return Review{}, err
	}
	if r.Overall, err = record.Required(record.KeyOverall, rec.Float(record.KeyOverall)); err != nil {
		return Review{}, err
	}
	if r.Text, err = record.Required(record.KeyReviewText, rec.String(record.KeyReviewText)); err != nil {
		return Review{}, err
	}
	if r.Summary, err = record.Required(record.KeySummary, rec.String(record.KeySummary)); err != nil {
		return Review{}, err
	}
	if r.UnixReviewTime, err = record.Required(record.KeyUnixReviewTime, rec.Int(record.KeyUnixReviewTime)); err != nil {
		return Review{}, err
	}

	r.ReviewerName = rec.String(record.KeyReviewerName)

	r.Time, err = rec.ReviewDate()
	if err != nil && onBadDate != nil {
		onBadDate(err)
	}

	return r, nil
}

// MissingFields lists the optional fields that will receive their default in Row.
func (r Review) MissingFields() []string {
	var missing []string
	if !r.ReviewerName.Present() {
		missing = append(missing, record.KeyReviewerName)
	}
	if !r.Time.Present() {
		missing = append(missing, record.KeyReviewTime)
	}
	return missing
}

// Row converts the review to its table shape.
func (r Review) Row() entities.ReviewRow {
	reviewTime := record.UnknownReviewDate
	if t, ok := r.Time.Get(); ok {
		reviewTime = record.FormatDate(t)
	}

	return entities.ReviewRow{
		ASIN:                    r.ASIN,
		HelpfulCount:            r.Helpful.Count,
		TotalHelpfulVotes:       r.Helpful.Total,
		HelpfulScore:            r.HelpfulScore().Or(record.UnknownHelpfulScore),
		Overall:                 r.Overall,
		Review:                  r.Text,
		LenReviewCharacterCount: utf8.RuneCountInString(r.Text),
		ReviewTime:              reviewTime,
		ReviewerName:            r.ReviewerName.Or(""),
		Summary:                 r.Summary,
		UnixReviewTime:          r.UnixReviewTime,
	}
}

// ReviewNormalizer produces review rows from a newline-delimited JSON file.
type ReviewNormalizer struct {
	path string
	opts options
}

func NewReviewNormalizer(path string, opts ...Option) *ReviewNormalizer {
	return &ReviewNormalizer{path: path, opts: newOptions(opts)}
}

// Rows yields one row per input line in file order. Iteration stops at the
// first malformed line or the first review missing a required field.
func (n *ReviewNormalizer) Rows() iter.Seq2[entities.ReviewRow, error] {
	return readRows(n.path, func(rec record.Record, lineNo int) (entities.ReviewRow, error) {
		review, err := normalizeReview(rec, func(err error) {
			log.Printf("[NORMALIZE] %s:%d: %v; using %s", n.path, lineNo, err, record.UnknownReviewDate)
			n.opts.recorder.IncMalformedDate()
		})
		if err != nil {
			return entities.ReviewRow{}, err
		}
		n.opts.recorder.IncRecord(KindReview)
		n.opts.recorder.IncDefaults(KindReview, review.MissingFields())
		return review.Row(), nil
	})
}

// IsMissingField reports whether err was caused by a review without one of
// its required fields.
func IsMissingField(err error) bool {
	return errors.Is(err, record.ErrMissingField)
}
