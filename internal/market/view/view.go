package view

import (
	"time"

	"github.com/zappabad/lojistik/internal/market"
	"github.com/zappabad/lojistik/internal/market/analysis"
	"github.com/zappabad/lojistik/internal/report"
	"github.com/zappabad/lojistik/internal/risk"
)

// InstrumentView holds the computed statistics of one instrument.
type InstrumentView struct {
	Instrument market.Instrument
	Closes     []float64
	Last       float64
	Change     float64
	Position   analysis.Position
}

// MarketSnapshot is one fetch-and-evaluate cycle. Rows follow the configured
// instrument order; a failed instrument keeps its slot as a failed result.
type MarketSnapshot struct {
	Time        time.Time
	Instruments []market.Instrument
	Rows        report.Report[InstrumentView]
	Series      map[market.Symbol]market.Series
	Risk        risk.Report
}

// Quotes returns the latest price of every successfully computed instrument
// in row order.
func (s MarketSnapshot) Quotes() []market.Quote {
	var out []market.Quote
	for _, v := range s.Rows.Values() {
		out = append(out, market.Quote{Symbol: v.Instrument.Symbol, Price: v.Last})
	}
	return out
}

// Instrument looks up the instrument metadata of a row key.
func (s MarketSnapshot) Instrument(key string) (market.Instrument, bool) {
	for _, in := range s.Instruments {
		if string(in.Symbol) == key {
			return in, true
		}
	}
	return market.Instrument{}, false
}

// Build computes the view of a single instrument from its series.
func Build(in market.Instrument, s market.Series) (InstrumentView, error) {
	closes := s.Closes()
	change, err := analysis.PctChange(closes)
	if err != nil {
		return InstrumentView{}, err
	}
	pos, err := analysis.RangePosition(closes)
	if err != nil {
		return InstrumentView{}, err
	}
	return InstrumentView{
		Instrument: in,
		Closes:     closes,
		Last:       analysis.Last(closes),
		Change:     change,
		Position:   pos,
	}, nil
}
