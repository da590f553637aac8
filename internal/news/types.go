package news

import "time"

// Classification is the category of a title. The declaration order is the
// match precedence: Risk wins over Cargo, Cargo over Positive.
type Classification int

const (
	ClassRisk Classification = iota
	ClassCargo
	ClassPositive
	ClassNeutral
)

// Precedence lists the keyword classes in first-match-wins order.
var Precedence = []Classification{ClassRisk, ClassCargo, ClassPositive}

func (c Classification) String() string {
	switch c {
	case ClassRisk:
		return "risk"
	case ClassCargo:
		return "cargo"
	case ClassPositive:
		return "positive"
	default:
		return "neutral"
	}
}

// Important reports whether entries of this class are always displayed.
func (c Classification) Important() bool {
	return c != ClassNeutral
}

// Source is a feed with its display tag and scan/show limits.
type Source struct {
	Name  string
	URL   string
	Tag   string
	Color string
	// ScanLimit is the number of entries read from the head of the feed.
	ScanLimit int
	// ShowLimit is the number of neutral entries displayed.
	ShowLimit int
}

// Entry is one feed item. Published is nil when the feed carries no date.
type Entry struct {
	Published *time.Time
	Source    string
	Tag       string
	Title     string
}
