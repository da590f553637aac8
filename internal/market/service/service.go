package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zappabad/lojistik/internal/logging"
	"github.com/zappabad/lojistik/internal/market"
	marketview "github.com/zappabad/lojistik/internal/market/view"
	"github.com/zappabad/lojistik/internal/risk"
)

// Provider fetches the daily close series of one symbol.
type Provider interface {
	FetchSeries(ctx context.Context, sym market.Symbol) (market.Series, error)
}

// MarketService runs the snapshot pipeline: fetch, compute, evaluate.
type MarketService struct {
	cfg       Config
	provider  Provider
	evaluator *risk.Evaluator
	logger    *logging.Logger
	now       func() time.Time
}

// NewMarketService creates a new MarketService.
func NewMarketService(cfg Config, provider Provider, logger *logging.Logger) *MarketService {
	if cfg.Lookback <= 0 {
		cfg.Lookback = DefaultConfig().Lookback
	}
	if len(cfg.Instruments) == 0 {
		cfg.Instruments = DefaultConfig().Instruments
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &MarketService{
		cfg:       cfg,
		provider:  provider,
		evaluator: risk.NewEvaluator(cfg.Risk, logger),
		logger:    logger,
		now:       time.Now,
	}
}

// Snapshot fetches every instrument and evaluates the risk heuristics. It
// fails with market.ErrNoData only when no instrument returned any data;
// individual instrument failures are recorded in the snapshot rows.
func (s *MarketService) Snapshot(ctx context.Context) (marketview.MarketSnapshot, error) {
	snap := marketview.MarketSnapshot{
		Time:        s.now(),
		Instruments: s.cfg.Instruments,
		Series:      make(map[market.Symbol]market.Series, len(s.cfg.Instruments)),
	}

	for _, in := range s.cfg.Instruments {
		if err := ctx.Err(); err != nil {
			return snap, err
		}
		series, err := s.provider.FetchSeries(ctx, in.Symbol)
		if err != nil {
			if ctx.Err() != nil {
				return snap, ctx.Err()
			}
			s.logger.Error("Veri çekme hatası", zap.String("symbol", string(in.Symbol)), zap.Error(err))
			continue
		}
		if series.Len() > 0 {
			snap.Series[in.Symbol] = trim(series, s.cfg.Lookback)
		}
	}

	if len(snap.Series) == 0 {
		return snap, fmt.Errorf("snapshot: %w", market.ErrNoData)
	}

	for _, in := range s.cfg.Instruments {
		res := snap.Rows.Do(string(in.Symbol), func() (marketview.InstrumentView, error) {
			series, ok := snap.Series[in.Symbol]
			if !ok {
				return marketview.InstrumentView{}, fmt.Errorf("%s: %w", in.Symbol, market.ErrNoData)
			}
			return marketview.Build(in, series)
		})
		if !res.OK() {
			s.logger.Error("Enstrüman hatası", zap.String("symbol", res.Key), zap.Error(res.Err))
		}
	}

	snap.Risk = s.evaluator.Evaluate(snap.Series)
	return snap, nil
}

// Instruments returns the configured universe in display order.
func (s *MarketService) Instruments() []market.Instrument {
	out := make([]market.Instrument, len(s.cfg.Instruments))
	copy(out, s.cfg.Instruments)
	return out
}

func trim(s market.Series, n int) market.Series {
	if len(s.Points) <= n {
		return s
	}
	return market.Series{Symbol: s.Symbol, Points: s.Points[len(s.Points)-n:]}
}
