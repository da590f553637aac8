// Package app wires the pipelines to their collaborators and renders each
// command's output.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/zappabad/lojistik/internal/config"
	"github.com/zappabad/lojistik/internal/history"
	"github.com/zappabad/lojistik/internal/logging"
	marketservice "github.com/zappabad/lojistik/internal/market/service"
	marketview "github.com/zappabad/lojistik/internal/market/view"
	"github.com/zappabad/lojistik/internal/market/yahoo"
	"github.com/zappabad/lojistik/internal/news/feed"
	newsservice "github.com/zappabad/lojistik/internal/news/service"
	"github.com/zappabad/lojistik/tui"
	"github.com/zappabad/lojistik/tui/panels"
	"github.com/zappabad/lojistik/tui/styles"
)

// Deps are the collaborators of an App. Nil fields are built from config.
type Deps struct {
	Logger   *logging.Logger
	Provider marketservice.Provider
	Fetcher  newsservice.Fetcher
}

// App owns the services of both pipelines.
type App struct {
	Market  *marketservice.MarketService
	News    *newsservice.NewsService
	History *history.Store

	cfg     config.Config
	logger  *logging.Logger
	spinner bool
}

// NewApp creates an App from the configuration.
func NewApp(cfg config.Config, deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = logging.Nop()
	}
	if deps.Provider == nil {
		deps.Provider = yahoo.NewClient(
			yahoo.WithBaseURL(cfg.Market.BaseURL),
			yahoo.WithRange(cfg.Market.Range),
			yahoo.WithRateLimit(cfg.Market.RateLimit),
			yahoo.WithHTTPClient(&http.Client{Timeout: cfg.Market.Timeout}),
		)
	}
	if deps.Fetcher == nil {
		deps.Fetcher = feed.NewFetcher(
			feed.WithHTTPClient(&http.Client{Timeout: cfg.News.Timeout}),
			feed.WithRateLimit(cfg.News.RateLimit),
		)
	}

	mkt := marketservice.NewMarketService(cfg.MarketService(), deps.Provider, deps.Logger.Named("market"))
	return &App{
		Market:  mkt,
		News:    newsservice.NewNewsService(cfg.NewsService(), deps.Fetcher, deps.Logger.Named("news")),
		History: history.NewStore(cfg.Files.SnapshotLog, mkt.Instruments()),
		cfg:     cfg,
		logger:  deps.Logger,
	}
}

// Options locate the configuration and select log verbosity.
type Options struct {
	ConfigPath string
	Verbose    bool
	NoSpinner  bool
	Stderr     io.Writer
}

// Open loads the configuration, opens the error log and builds an App with
// the live market and feed clients.
func Open(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Path:    cfg.Files.ErrorLog,
		Verbose: opts.Verbose,
		Stderr:  opts.Stderr,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded",
		zap.String("snapshot_log", cfg.Files.SnapshotLog),
		zap.Int("instruments", len(cfg.Market.Instruments)),
		zap.Int("sources", len(cfg.News.Sources)),
	)
	a := NewApp(cfg, Deps{Logger: logger})
	a.SetSpinner(!opts.NoSpinner)
	return a, nil
}

// Run opens an App, runs fn and reports every failure on out. Cancellation
// prints "Çıkış."; nothing is returned to the caller.
func Run(ctx context.Context, out io.Writer, opts Options, fn func(context.Context, *App) error) {
	a, err := Open(opts)
	if err != nil {
		printError(out, err)
		return
	}
	defer a.Close()

	if err := fn(ctx, a); err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			fmt.Fprintln(out, "\n"+styles.MutedStyle.Render("Çıkış."))
			return
		}
		printError(out, err)
	}
}

func printError(out io.Writer, err error) {
	fmt.Fprintln(out, styles.ErrorStyle.Render("Hata:")+" "+err.Error())
}

// SetSpinner enables the fetch spinner on terminal output.
func (a *App) SetSpinner(enabled bool) {
	a.spinner = enabled
}

// Dashboard runs the market snapshot pipeline: fetch, render the price table
// and alerts, then append the snapshot to the log. Only context
// cancellation is returned; every other failure is logged and printed.
func (a *App) Dashboard(ctx context.Context, out io.Writer) error {
	fmt.Fprintln(out, "\n"+styles.RenderTitle("📡 KÜRESEL LOJİSTİK İSTİHBARAT AĞI v6.1 (Retro)"))

	var snap marketview.MarketSnapshot
	err := tui.RunWithStatus(ctx, out, "Piyasa verileri çekiliyor...", a.spinner, func(ctx context.Context) error {
		var err error
		snap, err = a.Market.Snapshot(ctx)
		return err
	})
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return err
		}
		printError(out, err)
		a.logger.Critical("Ana döngü hatası", zap.Error(err))
		return nil
	}

	mp := panels.NewMarketOverviewPanel()
	mp.SetSnapshot(snap)
	fmt.Fprintln(out, mp.View())

	ap := panels.NewAlertsPanel()
	ap.SetReport(snap.Risk)
	fmt.Fprintln(out, ap.View())

	if err := a.History.Append(snap.Time, snap.Quotes()); err != nil {
		a.logger.Error("CSV Kayıt Hatası", zap.Error(err))
		fmt.Fprintln(out, styles.WarnStyle.Render("Log güncellenemedi."))
		return nil
	}
	fmt.Fprintln(out, styles.MutedStyle.Render("Log güncellendi."))
	return nil
}

// NewsDesk runs the news classification pipeline and renders the desk.
func (a *App) NewsDesk(ctx context.Context, out io.Writer) error {
	var desk newsservice.Desk
	err := tui.RunWithStatus(ctx, out, "Veri hücreleri ve tarihler işleniyor...", a.spinner, func(ctx context.Context) error {
		var err error
		desk, err = a.News.Scan(ctx)
		return err
	})
	if err != nil {
		return err
	}

	np := panels.NewNewsPanel()
	np.SetSize(tui.TerminalWidth(out))
	np.SetDesk(desk)
	fmt.Fprintln(out, "\n"+np.View())
	return nil
}

// ShowHistory renders the most recent log rows, newest first.
func (a *App) ShowHistory(out io.Writer) error {
	tbl, err := a.History.Load()
	if err != nil {
		a.reportLoadError(out, err, "Kayıt yok!")
		return nil
	}
	hp := panels.NewHistoryPanel(a.cfg.History.Rows)
	hp.SetTable(tbl)
	fmt.Fprintln(out, hp.View())
	return nil
}

// ShowCharts renders a trend chart per instrument from the log.
func (a *App) ShowCharts(out io.Writer) error {
	tbl, err := a.History.Load()
	if err != nil {
		a.reportLoadError(out, err, "Veri yok! Önce 'lojistik' çalıştır.")
		return nil
	}
	if len(tbl.Rows) < a.cfg.History.MinChartRows {
		fmt.Fprintln(out, styles.WarnStyle.Render(fmt.Sprintf("⚠ Grafik için en az %d veri lazım.", a.cfg.History.MinChartRows)))
		return nil
	}
	cp := panels.NewChartPanel(a.Market.Instruments(), a.cfg.History.ChartHeight)
	cp.SetTable(tbl)
	fmt.Fprintln(out, cp.View())
	return nil
}

func (a *App) reportLoadError(out io.Writer, err error, missing string) {
	if errors.Is(err, history.ErrNoHistory) {
		fmt.Fprintln(out, styles.ErrorStyle.Render(missing))
		return
	}
	a.logger.Error("Kayıt okuma hatası", zap.Error(err))
	printError(out, err)
}

// Close flushes the logger.
func (a *App) Close() error {
	return a.logger.Close()
}
