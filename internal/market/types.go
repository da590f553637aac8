package market

import (
	"errors"
	"time"
)

var (
	// ErrNoData is returned when the provider yields no series at all.
	ErrNoData = errors.New("no market data")
	// ErrUnknownSymbol is returned for symbols outside the configured universe.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// Symbol identifies a tracked instrument, e.g. "BDRY" or "CL=F".
type Symbol string

// Instrument is a tracked market symbol with its display metadata.
type Instrument struct {
	Symbol   Symbol
	Label    string
	Color    string
	Decimals int8
}

// DefaultDecimals is the price precision of an instrument that sets none.
const DefaultDecimals = 2

// PriceDecimals returns the number of decimals prices are shown with.
func (i Instrument) PriceDecimals() int {
	if i.Decimals <= 0 {
		return DefaultDecimals
	}
	return int(i.Decimals)
}

// PricePoint is a single daily close.
type PricePoint struct {
	Time   time.Time
	Symbol Symbol
	Close  float64
}

// Series is the chronologically ordered close history of one symbol.
type Series struct {
	Symbol Symbol
	Points []PricePoint
}

// Closes returns the closing prices in chronological order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.Points)
}

// Quote is the latest price of an instrument inside a snapshot.
type Quote struct {
	Symbol Symbol
	Price  float64
}
