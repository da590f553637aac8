package risk

import (
	"errors"

	"github.com/zappabad/lojistik/internal/market"
)

// ErrSeriesMissing is returned when a heuristic's input series is absent.
var ErrSeriesMissing = errors.New("series missing")

// Kind identifies which heuristic produced an alert.
type Kind int

const (
	KindMarginPressure Kind = iota + 1
	KindRecessionRisk
	KindBuyOpportunity
)

func (k Kind) String() string {
	switch k {
	case KindMarginPressure:
		return "margin_pressure"
	case KindRecessionRisk:
		return "recession_risk"
	case KindBuyOpportunity:
		return "buy_opportunity"
	default:
		return "unknown"
	}
}

// Severity is the presentation tag of an alert.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

// Alert is one heuristic finding for a snapshot.
type Alert struct {
	Kind     Kind
	Severity Severity
	Title    string
	Message  string
}

// Roles maps each heuristic input to a symbol of the universe.
type Roles struct {
	Energy    market.Symbol
	Carrier   market.Symbol
	DryBulk   market.Symbol
	Container market.Symbol
}

// Thresholds are the fixed heuristic trigger levels.
type Thresholds struct {
	// OilRise is the energy day change (%) above which margins are squeezed.
	OilRise float64
	// CarrierLag is the carrier day change (%) below which it is not reacting.
	CarrierLag float64
	// RecessionRatio is the fraction of the mean under which dry bulk signals recession.
	RecessionRatio float64
}

// Config holds the evaluator configuration.
type Config struct {
	Roles      Roles
	Thresholds Thresholds
}

// DefaultConfig returns the shipping universe roles and thresholds.
func DefaultConfig() Config {
	return Config{
		Roles: Roles{
			Energy:    "CL=F",
			Carrier:   "AMKBY",
			DryBulk:   "BDRY",
			Container: "ZIM",
		},
		Thresholds: Thresholds{
			OilRise:        1.0,
			CarrierLag:     0.5,
			RecessionRatio: 0.95,
		},
	}
}
