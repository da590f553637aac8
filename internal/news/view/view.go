package view

import (
	"github.com/zappabad/lojistik/internal/news"
	"github.com/zappabad/lojistik/internal/news/classify"
)

// DateLayout renders publish dates as day/month.
const DateLayout = "02/01"

// DefaultTitleWidth is the rune width beyond which neutral titles are cut.
const DefaultTitleWidth = 80

// Row is one displayed line of the news desk. Err is set for a source that
// could not be read; such a row carries no entry.
type Row struct {
	Source  news.Source
	Entry   news.Entry
	Verdict classify.Verdict
	Err     error
}

// Date returns the dd/mm publish date in UTC or "-".
func (r Row) Date() string {
	if r.Entry.Published == nil {
		return "-"
	}
	return r.Entry.Published.UTC().Format(DateLayout)
}

// NewsView applies the display policy and accumulates rows in feed order.
type NewsView struct {
	classifier *classify.Classifier
	titleWidth int
	rows       []Row
	important  int
}

// NewNewsView creates a NewsView. titleWidth <= 0 uses DefaultTitleWidth.
func NewNewsView(classifier *classify.Classifier, titleWidth int) *NewsView {
	if titleWidth <= 0 {
		titleWidth = DefaultTitleWidth
	}
	return &NewsView{
		classifier: classifier,
		titleWidth: titleWidth,
	}
}

// Apply scans at most src.ScanLimit entries from the head of the feed.
// Classified entries are always kept; neutral entries are kept until
// src.ShowLimit of them have been shown. It returns the rows added.
func (v *NewsView) Apply(src news.Source, entries []news.Entry) []Row {
	start := len(v.rows)
	shownNeutral := 0

	for i, e := range entries {
		if i >= src.ScanLimit {
			break
		}
		verdict := v.classifier.Classify(e.Title)
		if verdict.Class.Important() {
			v.important++
		} else {
			if shownNeutral >= src.ShowLimit {
				continue
			}
			shownNeutral++
			e.Title = Truncate(e.Title, v.titleWidth)
		}
		v.rows = append(v.rows, Row{Source: src, Entry: e, Verdict: verdict})
	}
	return v.rows[start:]
}

// Fail records a source that could not be fetched.
func (v *NewsView) Fail(src news.Source, err error) {
	v.rows = append(v.rows, Row{Source: src, Err: err})
}

// Rows returns a copy of the accumulated rows.
func (v *NewsView) Rows() []Row {
	out := make([]Row, len(v.rows))
	copy(out, v.rows)
	return out
}

// Important returns the number of classified (non-neutral) entries seen.
func (v *NewsView) Important() int {
	return v.important
}

// Truncate cuts s to width runes, ending in "..." when shortened.
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width || width < 3 {
		return s
	}
	return string(r[:width-3]) + "..."
}
