package catalog

import (
	"errors"
	"testing"

	"github.com/mrlokans/catalogdb/internal/entities"
	"github.com/mrlokans/catalogdb/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReview = `{"asin":"B001","helpful":[3,10],"overall":4,"reviewText":"ok","reviewTime":"01 2, 2010",` +
	`"reviewerName":"X","summary":"fine","unixReviewTime":100}`

func collectReviews(t *testing.T, n *ReviewNormalizer) ([]entities.ReviewRow, error) {
	t.Helper()
	var rows []entities.ReviewRow
	for row, err := range n.Rows() {
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func reviewRow(t *testing.T, line string) (entities.ReviewRow, error) {
	t.Helper()
	rec, err := record.Parse([]byte(line))
	require.NoError(t, err)
	review, err := NormalizeReview(rec)
	if err != nil {
		return entities.ReviewRow{}, err
	}
	return review.Row(), nil
}

func TestReviewRow_FullRecord(t *testing.T) {
	row, err := reviewRow(t, sampleReview)
	require.NoError(t, err)

	assert.Equal(t, "B001", row.ASIN)
	assert.Equal(t, int64(3), row.HelpfulCount)
	assert.Equal(t, int64(10), row.TotalHelpfulVotes)
	assert.InDelta(t, 0.3, row.HelpfulScore, 1e-9)
	assert.Equal(t, 4.0, row.Overall)
	assert.Equal(t, "ok", row.Review)
	assert.Equal(t, 2, row.LenReviewCharacterCount)
	assert.Equal(t, "2010-01-02", row.ReviewTime)
	assert.Equal(t, "X", row.ReviewerName)
	assert.Equal(t, "fine", row.Summary)
	assert.Equal(t, int64(100), row.UnixReviewTime)
}

func TestReviewRow_NoVotes(t *testing.T) {
	row, err := reviewRow(t, `{"asin":"B001","helpful":[0,0],"overall":5,"reviewText":"great","summary":"s","unixReviewTime":1}`)
	require.NoError(t, err)

	assert.Equal(t, record.UnknownHelpfulScore, row.HelpfulScore)
	assert.Equal(t, int64(0), row.TotalHelpfulVotes)
}

func TestReviewRow_HelpfulScoreRange(t *testing.T) {
	for _, pair := range [][2]int64{{0, 1}, {1, 1}, {2, 7}, {99, 100}} {
		review := Review{Helpful: record.Helpful{Count: pair[0], Total: pair[1]}}
		score := review.Row().HelpfulScore
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestReviewRow_OptionalFields(t *testing.T) {
	row, err := reviewRow(t, `{"asin":"B001","helpful":[1,2],"overall":3,"reviewText":"text","summary":"s","unixReviewTime":7}`)
	require.NoError(t, err)

	assert.Equal(t, "", row.ReviewerName)
	assert.Equal(t, record.UnknownReviewDate, row.ReviewTime)
}

func TestReviewRow_MalformedDateUsesSentinel(t *testing.T) {
	row, err := reviewRow(t, `{"asin":"B001","helpful":[1,2],"overall":3,"reviewText":"t","summary":"s","unixReviewTime":7,"reviewTime":"yesterday"}`)
	require.NoError(t, err)

	assert.Equal(t, record.UnknownReviewDate, row.ReviewTime)
}

func TestNormalizeReview_RequiredFields(t *testing.T) {
	required := []string{
		record.KeyASIN,
		record.KeyHelpful,
		record.KeyOverall,
		record.KeyReviewText,
		record.KeySummary,
		record.KeyUnixReviewTime,
	}

	for _, field := range required {
		t.Run("missing "+field, func(t *testing.T) {
			rec, err := record.Parse([]byte(sampleReview))
			require.NoError(t, err)
			delete(rec, field)

			_, err = NormalizeReview(rec)
			require.Error(t, err)

			var fieldErr *record.FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, field, fieldErr.Field)
			assert.True(t, IsMissingField(err))
		})
	}

	t.Run("malformed helpful pair", func(t *testing.T) {
		_, err := reviewRow(t, `{"asin":"B001","helpful":[1],"overall":3,"reviewText":"t","summary":"s","unixReviewTime":7}`)
		assert.True(t, IsMissingField(err))
	})
}

func TestReview_MissingFields(t *testing.T) {
	rec, err := record.Parse([]byte(`{"asin":"B001","helpful":[1,2],"overall":3,"reviewText":"t","summary":"s","unixReviewTime":7}`))
	require.NoError(t, err)
	review, err := NormalizeReview(rec)
	require.NoError(t, err)

	assert.Equal(t, []string{record.KeyReviewerName, record.KeyReviewTime}, review.MissingFields())
}

func TestReviewNormalizer_Rows(t *testing.T) {
	path := writeInput(t,
		sampleReview,
		`{"asin":"B002","helpful":[0,0],"overall":1,"reviewText":"bad","summary":"no","unixReviewTime":200,"reviewTime":"13 45, 2010"}`,
	)
	rec := newCountingRecorder()

	rows, err := collectReviews(t, NewReviewNormalizer(path, WithRecorder(rec)))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2010-01-02", rows[0].ReviewTime)
	assert.Equal(t, record.UnknownReviewDate, rows[1].ReviewTime)
	assert.Equal(t, record.UnknownHelpfulScore, rows[1].HelpfulScore)
	assert.Equal(t, 2, rec.records[KindReview])
	assert.Equal(t, 1, rec.badDates)
	assert.Equal(t, 1, rec.defaults["review.reviewTime"])
	assert.Equal(t, 1, rec.defaults["review.reviewerName"])
}

func TestReviewNormalizer_MissingRequiredFieldAbortsRun(t *testing.T) {
	path := writeInput(t,
		sampleReview,
		sampleReview,
		`{"asin":"B003","helpful":[0,0],"overall":1,"reviewText":"no summary","unixReviewTime":1}`,
		sampleReview,
	)

	rows, err := collectReviews(t, NewReviewNormalizer(path))
	require.Error(t, err)
	assert.Len(t, rows, 2)

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 3, lineErr.Line)
	assert.True(t, IsMissingField(err))
	assert.Contains(t, err.Error(), "summary")
}

func TestReviewNormalizer_Idempotent(t *testing.T) {
	path := writeInput(t, sampleReview, sampleReview)
	n := NewReviewNormalizer(path)

	first, err := collectReviews(t, n)
	require.NoError(t, err)
	second, err := collectReviews(t, n)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
