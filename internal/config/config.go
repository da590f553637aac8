// Package config loads the application configuration: an embedded YAML
// default, an optional YAML overlay file, then environment overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/zappabad/lojistik/internal/market"
	marketservice "github.com/zappabad/lojistik/internal/market/service"
	"github.com/zappabad/lojistik/internal/news"
	"github.com/zappabad/lojistik/internal/news/classify"
	newsservice "github.com/zappabad/lojistik/internal/news/service"
	"github.com/zappabad/lojistik/internal/risk"
)

//go:embed default.yaml
var defaultYAML []byte

// Config holds configuration for both pipelines.
type Config struct {
	Files   FilesConfig   `yaml:"files"`
	Market  MarketConfig  `yaml:"market"`
	History HistoryConfig `yaml:"history"`
	News    NewsConfig    `yaml:"news"`
}

// FilesConfig locates the persisted state.
type FilesConfig struct {
	SnapshotLog string `yaml:"snapshot_log" validate:"required"`
	ErrorLog    string `yaml:"error_log" validate:"required"`
}

// InstrumentConfig is one tracked symbol.
type InstrumentConfig struct {
	Symbol string `yaml:"symbol" validate:"required"`
	Label  string `yaml:"label"`
	Color  string `yaml:"color"`
	// Decimals is the price precision; zero selects market.DefaultDecimals.
	Decimals int8 `yaml:"decimals" validate:"min=0,max=8"`
}

// RolesConfig maps heuristic inputs to symbols.
type RolesConfig struct {
	Energy    string `yaml:"energy" validate:"required"`
	Carrier   string `yaml:"carrier" validate:"required"`
	DryBulk   string `yaml:"dry_bulk" validate:"required"`
	Container string `yaml:"container" validate:"required"`
}

// ThresholdsConfig are the heuristic trigger levels.
type ThresholdsConfig struct {
	OilRise        float64 `yaml:"oil_rise"`
	CarrierLag     float64 `yaml:"carrier_lag"`
	RecessionRatio float64 `yaml:"recession_ratio" validate:"gt=0"`
}

// MarketConfig configures the market data provider and universe.
type MarketConfig struct {
	BaseURL     string             `yaml:"base_url" validate:"required,url"`
	Range       string             `yaml:"range" validate:"required"`
	Lookback    int                `yaml:"lookback" validate:"min=2"`
	Timeout     time.Duration      `yaml:"timeout" validate:"gt=0"`
	RateLimit   int                `yaml:"rate_limit" validate:"min=0"`
	Instruments []InstrumentConfig `yaml:"instruments" validate:"required,min=1,dive"`
	Roles       RolesConfig        `yaml:"roles"`
	Thresholds  ThresholdsConfig   `yaml:"thresholds"`
}

// HistoryConfig configures the log and chart views.
type HistoryConfig struct {
	Rows         int `yaml:"rows" validate:"min=1"`
	MinChartRows int `yaml:"min_chart_rows" validate:"min=2"`
	ChartHeight  int `yaml:"chart_height" validate:"min=1"`
}

// SourceConfig is one RSS feed.
type SourceConfig struct {
	Name      string `yaml:"name" validate:"required"`
	URL       string `yaml:"url" validate:"required,url"`
	Tag       string `yaml:"tag"`
	Color     string `yaml:"color"`
	ScanLimit int    `yaml:"scan_limit" validate:"min=1"`
	ShowLimit int    `yaml:"show_limit" validate:"min=0"`
}

// ClassConfig is the keyword table and presentation of one class.
type ClassConfig struct {
	Icon     string   `yaml:"icon"`
	Style    string   `yaml:"style"`
	Keywords []string `yaml:"keywords"`
}

// NewsConfig configures the feed scan.
type NewsConfig struct {
	Timeout    time.Duration          `yaml:"timeout" validate:"gt=0"`
	RateLimit  int                    `yaml:"rate_limit" validate:"min=0"`
	TitleWidth int                    `yaml:"title_width" validate:"min=4"`
	Sources    []SourceConfig         `yaml:"sources" validate:"required,min=1,dive"`
	Classes    map[string]ClassConfig `yaml:"classes"`
}

// Env holds environment overrides, read with the LOJISTIK prefix.
type Env struct {
	SnapshotLog   string `envconfig:"SNAPSHOT_LOG"`
	ErrorLog      string `envconfig:"ERROR_LOG"`
	MarketBaseURL string `envconfig:"MARKET_BASE_URL"`
	Config        string `envconfig:"CONFIG"`
}

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "LOJISTIK"

var classNames = map[string]news.Classification{
	"risk":     news.ClassRisk,
	"cargo":    news.ClassCargo,
	"positive": news.ClassPositive,
	"neutral":  news.ClassNeutral,
}

// Default returns the embedded configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default: %v", err))
	}
	return cfg
}

// Load builds the configuration. path may be empty; LOJISTIK_CONFIG is used
// then. A .env file in the working directory is loaded when present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}

	cfg := Default()
	if path == "" {
		path = env.Config
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	env.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (e Env) apply(cfg *Config) {
	if e.SnapshotLog != "" {
		cfg.Files.SnapshotLog = e.SnapshotLog
	}
	if e.ErrorLog != "" {
		cfg.Files.ErrorLog = e.ErrorLog
	}
	if e.MarketBaseURL != "" {
		cfg.Market.BaseURL = e.MarketBaseURL
	}
}

// Validate checks field constraints and cross references.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	known := make(map[string]bool, len(c.Market.Instruments))
	for _, in := range c.Market.Instruments {
		known[in.Symbol] = true
	}
	var errs []error
	for role, sym := range map[string]string{
		"energy":    c.Market.Roles.Energy,
		"carrier":   c.Market.Roles.Carrier,
		"dry_bulk":  c.Market.Roles.DryBulk,
		"container": c.Market.Roles.Container,
	} {
		if !known[sym] {
			errs = append(errs, fmt.Errorf("role %s: %s: %w", role, sym, market.ErrUnknownSymbol))
		}
	}
	for name := range c.News.Classes {
		if _, ok := classNames[name]; !ok {
			errs = append(errs, fmt.Errorf("unknown news class %q", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// MarketService converts the market section into the service configuration.
func (c Config) MarketService() marketservice.Config {
	cfg := marketservice.Config{
		Lookback: c.Market.Lookback,
		Risk: risk.Config{
			Roles: risk.Roles{
				Energy:    market.Symbol(c.Market.Roles.Energy),
				Carrier:   market.Symbol(c.Market.Roles.Carrier),
				DryBulk:   market.Symbol(c.Market.Roles.DryBulk),
				Container: market.Symbol(c.Market.Roles.Container),
			},
			Thresholds: risk.Thresholds{
				OilRise:        c.Market.Thresholds.OilRise,
				CarrierLag:     c.Market.Thresholds.CarrierLag,
				RecessionRatio: c.Market.Thresholds.RecessionRatio,
			},
		},
	}
	for _, in := range c.Market.Instruments {
		cfg.Instruments = append(cfg.Instruments, market.Instrument{
			Symbol:   market.Symbol(in.Symbol),
			Label:    in.Label,
			Color:    in.Color,
			Decimals: in.Decimals,
		})
	}
	return cfg
}

// NewsService converts the news section into the service configuration.
func (c Config) NewsService() newsservice.Config {
	cfg := newsservice.Config{
		Rules:      make(map[news.Classification]classify.Rule, len(c.News.Classes)),
		TitleWidth: c.News.TitleWidth,
	}
	for _, s := range c.News.Sources {
		cfg.Sources = append(cfg.Sources, news.Source{
			Name:      s.Name,
			URL:       s.URL,
			Tag:       s.Tag,
			Color:     s.Color,
			ScanLimit: s.ScanLimit,
			ShowLimit: s.ShowLimit,
		})
	}
	for name, cc := range c.News.Classes {
		cfg.Rules[classNames[name]] = classify.Rule{
			Keywords: cc.Keywords,
			Icon:     cc.Icon,
			Style:    cc.Style,
		}
	}
	return cfg
}
