// Package analysis computes per-instrument change and range statistics over
// a close series. All functions are pure.
package analysis

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when a series is too short for a statistic.
var ErrInsufficientData = errors.New("insufficient data")

// Bucket is the presentation band of a range position.
type Bucket int

const (
	BucketFlat Bucket = iota
	BucketLow
	BucketMid
	BucketHigh
)

func (b Bucket) String() string {
	switch b {
	case BucketLow:
		return "low"
	case BucketMid:
		return "mid"
	case BucketHigh:
		return "high"
	default:
		return "flat"
	}
}

// Position is the normalized location of the last close within the window.
// Flat is set when every close in the window is equal; Value is then 0.
type Position struct {
	Value float64
	Flat  bool
}

// Bucket classifies the position: low below 0.2, high above 0.8.
func (p Position) Bucket() Bucket {
	switch {
	case p.Flat:
		return BucketFlat
	case p.Value < 0.2:
		return BucketLow
	case p.Value > 0.8:
		return BucketHigh
	default:
		return BucketMid
	}
}

// PctChange returns the day-over-day percent change between the last two closes.
func PctChange(closes []float64) (float64, error) {
	n := len(closes)
	if n < 2 {
		return 0, fmt.Errorf("pct change needs 2 closes, got %d: %w", n, ErrInsufficientData)
	}
	prev, last := closes[n-2], closes[n-1]
	if prev == 0 {
		return 0, fmt.Errorf("pct change: previous close is zero: %w", ErrInsufficientData)
	}
	return (last - prev) / prev * 100, nil
}

// RangePosition returns (last-min)/(max-min) over the whole series.
func RangePosition(closes []float64) (Position, error) {
	if len(closes) == 0 {
		return Position{}, fmt.Errorf("range position: %w", ErrInsufficientData)
	}
	lo, hi := Min(closes), Max(closes)
	if hi == lo {
		return Position{Flat: true}, nil
	}
	return Position{Value: (Last(closes) - lo) / (hi - lo)}, nil
}

// Mean returns the arithmetic mean, or 0 for an empty series.
func Mean(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}
	var sum float64
	for _, c := range closes {
		sum += c
	}
	return sum / float64(len(closes))
}

// Min returns the smallest close, or 0 for an empty series.
func Min(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}
	m := closes[0]
	for _, c := range closes[1:] {
		if c < m {
			m = c
		}
	}
	return m
}

// Max returns the largest close, or 0 for an empty series.
func Max(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}
	m := closes[0]
	for _, c := range closes[1:] {
		if c > m {
			m = c
		}
	}
	return m
}

// Last returns the most recent close, or 0 for an empty series.
func Last(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}
	return closes[len(closes)-1]
}
