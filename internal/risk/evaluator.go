// Package risk runs the snapshot heuristics over a joint set of series.
package risk

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/zappabad/lojistik/internal/logging"
	"github.com/zappabad/lojistik/internal/market"
	"github.com/zappabad/lojistik/internal/market/analysis"
	"github.com/zappabad/lojistik/internal/report"
)

// Finding is the outcome of one heuristic: Fired is false when its condition
// did not hold.
type Finding struct {
	Alert Alert
	Fired bool
}

// Report is the evaluator output. Alerts are in evaluation order; an empty
// slice means the market is stable.
type Report struct {
	Alerts     []Alert
	Heuristics report.Report[Finding]
}

// Stable reports whether no heuristic fired.
func (r Report) Stable() bool {
	return len(r.Alerts) == 0
}

type heuristic struct {
	name string
	run  func(series map[market.Symbol]market.Series) (Finding, error)
}

// Evaluator runs the margin squeeze, recession and buy heuristics.
type Evaluator struct {
	cfg    Config
	logger *logging.Logger
}

// NewEvaluator creates an Evaluator. A nil logger discards failures.
func NewEvaluator(cfg Config, logger *logging.Logger) *Evaluator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Evaluator{cfg: cfg, logger: logger}
}

// Evaluate runs every heuristic independently. It never fails: a heuristic
// whose input is missing or short is logged and skipped.
func (e *Evaluator) Evaluate(series map[market.Symbol]market.Series) Report {
	var rep Report
	for _, h := range e.heuristics() {
		res := rep.Heuristics.Do(h.name, func() (Finding, error) { return h.run(series) })
		if !res.OK() {
			e.logger.Error("Analiz Hatası", zap.String("heuristic", h.name), zap.Error(res.Err))
			continue
		}
		if res.Value.Fired {
			rep.Alerts = append(rep.Alerts, res.Value.Alert)
		}
	}
	return rep
}

func (e *Evaluator) heuristics() []heuristic {
	return []heuristic{
		{name: "margin_squeeze", run: e.marginSqueeze},
		{name: "recession_signal", run: e.recessionSignal},
		{name: "buy_signal", run: e.buySignal},
	}
}

func (e *Evaluator) marginSqueeze(series map[market.Symbol]market.Series) (Finding, error) {
	oil, err := change(series, e.cfg.Roles.Energy)
	if err != nil {
		return Finding{}, err
	}
	carrier, err := change(series, e.cfg.Roles.Carrier)
	if err != nil {
		return Finding{}, err
	}
	if !(oil > e.cfg.Thresholds.OilRise && carrier < e.cfg.Thresholds.CarrierLag) {
		return Finding{}, nil
	}
	return Finding{Fired: true, Alert: Alert{
		Kind:     KindMarginPressure,
		Severity: SeverityCritical,
		Title:    "⚠ MARJ BASKISI:",
		Message:  fmt.Sprintf("Petrol artıyor (+%%%.1f), ama Armatör hissesi tepki vermiyor.", oil),
	}}, nil
}

func (e *Evaluator) recessionSignal(series map[market.Symbol]market.Series) (Finding, error) {
	closes, err := lookup(series, e.cfg.Roles.DryBulk)
	if err != nil {
		return Finding{}, err
	}
	avg := analysis.Mean(closes)
	if !(analysis.Last(closes) < avg*e.cfg.Thresholds.RecessionRatio) {
		return Finding{}, nil
	}
	return Finding{Fired: true, Alert: Alert{
		Kind:     KindRecessionRisk,
		Severity: SeverityWarning,
		Title:    "📉 RESESYON RİSKİ:",
		Message:  "Hammadde endeksi ortalamanın altında.",
	}}, nil
}

// buySignal fires when the latest close is at or below the window minimum.
func (e *Evaluator) buySignal(series map[market.Symbol]market.Series) (Finding, error) {
	closes, err := lookup(series, e.cfg.Roles.Container)
	if err != nil {
		return Finding{}, err
	}
	if !(analysis.Last(closes) <= analysis.Min(closes)) {
		return Finding{}, nil
	}
	return Finding{Fired: true, Alert: Alert{
		Kind:     KindBuyOpportunity,
		Severity: SeverityInfo,
		Title:    "💰 ALIM FIRSATI:",
		Message:  fmt.Sprintf("%s dipte.", e.cfg.Roles.Container),
	}}, nil
}

func lookup(series map[market.Symbol]market.Series, sym market.Symbol) ([]float64, error) {
	s, ok := series[sym]
	if !ok || s.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", sym, ErrSeriesMissing)
	}
	return s.Closes(), nil
}

func change(series map[market.Symbol]market.Series, sym market.Symbol) (float64, error) {
	closes, err := lookup(series, sym)
	if err != nil {
		return 0, err
	}
	pct, err := analysis.PctChange(closes)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", sym, err)
	}
	return pct, nil
}
