package service

import (
	"github.com/zappabad/lojistik/internal/market"
	"github.com/zappabad/lojistik/internal/risk"
)

// Config holds configuration for the market service.
type Config struct {
	// Instruments is the tracked universe in display order.
	Instruments []market.Instrument
	// Lookback is the number of most recent observations kept per series.
	Lookback int
	// Risk configures the heuristic evaluator.
	Risk risk.Config
}

// DefaultConfig returns the shipping universe with a 14 observation window.
func DefaultConfig() Config {
	return Config{
		Instruments: []market.Instrument{
			{Symbol: "BDRY", Label: "Kuru Yük", Color: "blue", Decimals: 2},
			{Symbol: "ZIM", Label: "Konteyner", Color: "cyan", Decimals: 2},
			{Symbol: "AMKBY", Label: "Maersk", Color: "magenta", Decimals: 2},
			{Symbol: "FDX", Label: "FedEx", Color: "green", Decimals: 2},
			{Symbol: "CL=F", Label: "Petrol", Color: "red", Decimals: 2},
		},
		Lookback: 14,
		Risk:     risk.DefaultConfig(),
	}
}
