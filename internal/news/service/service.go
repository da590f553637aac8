package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/zappabad/lojistik/internal/logging"
	"github.com/zappabad/lojistik/internal/news"
	"github.com/zappabad/lojistik/internal/news/classify"
	newsview "github.com/zappabad/lojistik/internal/news/view"
	"github.com/zappabad/lojistik/internal/report"
)

// Fetcher reads the entries of one feed source in feed order.
type Fetcher interface {
	Fetch(ctx context.Context, src news.Source) ([]news.Entry, error)
}

// Desk is the result of one news scan.
type Desk struct {
	Rows []newsview.Row
	// Important counts classified entries across all sources.
	Important int
	// Sources records the per-source outcome (number of rows shown).
	Sources report.Report[int]
}

// NewsService runs the news classification pipeline.
type NewsService struct {
	cfg        Config
	fetcher    Fetcher
	classifier *classify.Classifier
	logger     *logging.Logger
}

// NewNewsService creates a new NewsService.
func NewNewsService(cfg Config, fetcher Fetcher, logger *logging.Logger) *NewsService {
	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultConfig().Sources
	}
	if len(cfg.Rules) == 0 {
		cfg.Rules = DefaultConfig().Rules
	}
	if cfg.TitleWidth <= 0 {
		cfg.TitleWidth = DefaultConfig().TitleWidth
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &NewsService{
		cfg:        cfg,
		fetcher:    fetcher,
		classifier: classify.New(cfg.Rules),
		logger:     logger,
	}
}

// Scan fetches every source in order and applies the display policy. A
// failing source becomes a single error row; the others are unaffected.
// Only context cancellation is returned as an error.
func (s *NewsService) Scan(ctx context.Context) (Desk, error) {
	view := newsview.NewNewsView(s.classifier, s.cfg.TitleWidth)
	var desk Desk

	for _, src := range s.cfg.Sources {
		if err := ctx.Err(); err != nil {
			return desk, err
		}
		res := desk.Sources.Do(src.Name, func() (int, error) {
			entries, err := s.fetcher.Fetch(ctx, src)
			if err != nil {
				return 0, err
			}
			return len(view.Apply(src, entries)), nil
		})
		if res.OK() {
			continue
		}
		if ctx.Err() != nil {
			return desk, ctx.Err()
		}
		s.logger.Error("Kaynak hatası", zap.String("source", src.Name), zap.Error(res.Err))
		view.Fail(src, res.Err)
	}

	desk.Rows = view.Rows()
	desk.Important = view.Important()
	return desk, nil
}
