package catalog

import (
	"iter"
	"unicode/utf8"

	"github.com/mrlokans/catalogdb/internal/entities"
	"github.com/mrlokans/catalogdb/internal/record"
)

// Related holds the four asin relation lists of a book.
type Related struct {
	AlsoViewed      record.Opt[[]string]
	AlsoBought      record.Opt[[]string]
	BoughtTogether  record.Opt[[]string]
	BuyAfterViewing record.Opt[[]string]
}

// Book is a normalized book record. Unknown values stay absent until Row.
type Book struct {
	ASIN        record.Opt[string]
	Title       record.Opt[string]
	Description record.Opt[string]
	Category    record.Opt[string]
	Price       record.Opt[float64]
	ImageURL    record.Opt[string]
	Related     Related
	SalesRank   record.Opt[record.SalesRank]
}

// NormalizeBook extracts every book field from rec. Book fields are all
// optional, so it never fails.
func NormalizeBook(rec record.Record) Book {
	return Book{
		ASIN:        rec.String(record.KeyASIN),
		Title:       rec.String(record.KeyTitle),
		Description: rec.String(record.KeyDescription),
		Category:    rec.Category(),
		Price:       rec.Float(record.KeyPrice),
		ImageURL:    rec.String(record.KeyImageURL),
		Related: Related{
			AlsoViewed:      rec.Related(record.RelationAlsoViewed),
			AlsoBought:      rec.Related(record.RelationAlsoBought),
			BoughtTogether:  rec.Related(record.RelationBoughtTogether),
			BuyAfterViewing: rec.Related(record.RelationBuyAfterViewing),
		},
		SalesRank: rec.SalesRank(),
	}
}

// MissingFields lists the fields that will receive their default in Row.
func (b Book) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name    string
		present bool
	}{
		{record.KeyASIN, b.ASIN.Present()},
		{record.KeyTitle, b.Title.Present()},
		{record.KeyDescription, b.Description.Present()},
		{record.KeyCategories, b.Category.Present()},
		{record.KeyPrice, b.Price.Present()},
		{record.KeyImageURL, b.ImageURL.Present()},
		{record.RelationAlsoViewed, b.Related.AlsoViewed.Present()},
		{record.RelationAlsoBought, b.Related.AlsoBought.Present()},
		{record.RelationBoughtTogether, b.Related.BoughtTogether.Present()},
		{record.RelationBuyAfterViewing, b.Related.BuyAfterViewing.Present()},
		{record.KeySalesRank, b.SalesRank.Present()},
	} {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Row converts the book to its table shape, substituting defaults for absent
// values and deriving the length columns.
func (b Book) Row() entities.BookRow {
	title := b.Title.Or("")
	description := b.Description.Or("")
	alsoViewed := list(b.Related.AlsoViewed)
	alsoBought := list(b.Related.AlsoBought)
	boughtTogether := list(b.Related.BoughtTogether)
	buyAfterViewing := list(b.Related.BuyAfterViewing)
	rank := b.SalesRank.Or(record.SalesRank{Code: record.UnknownSalesRankCode})

	return entities.BookRow{
		ASIN:               b.ASIN.Or(""),
		Title:              title,
		LenTitle:           utf8.RuneCountInString(title),
		Description:        description,
		LenDescription:     utf8.RuneCountInString(description),
		Category:           b.Category.Or(""),
		Price:              b.Price.Or(record.UnknownPrice),
		ImageURL:           b.ImageURL.Or(""),
		AlsoViewed:         alsoViewed,
		AlsoBought:         alsoBought,
		BoughtTogether:     boughtTogether,
		BuyAfterViewing:    buyAfterViewing,
		SalesRankCategory:  rank.Category,
		SalesRankCode:      rank.Code,
		LenAlsoViewed:      len(alsoViewed),
		LenAlsoBought:      len(alsoBought),
		LenBoughtTogether:  len(boughtTogether),
		LenBuyAfterViewing: len(buyAfterViewing),
	}
}

// list never returns nil so empty relations serialize as [].
func list(o record.Opt[[]string]) []string {
	if v := o.Or(nil); v != nil {
		return v
	}
	return []string{}
}

// BookNormalizer produces book rows from a newline-delimited JSON file.
type BookNormalizer struct {
	path string
	opts options
}

func NewBookNormalizer(path string, opts ...Option) *BookNormalizer {
	return &BookNormalizer{path: path, opts: newOptions(opts)}
}

// Rows yields one row per input line in file order. Iteration stops at the
// first malformed line with a *LineError.
func (n *BookNormalizer) Rows() iter.Seq2[entities.BookRow, error] {
	return readRows(n.path, func(rec record.Record, _ int) (entities.BookRow, error) {
		book := NormalizeBook(rec)
		n.opts.recorder.IncRecord(KindBook)
		n.opts.recorder.IncDefaults(KindBook, book.MissingFields())
		return book.Row(), nil
	})
}
