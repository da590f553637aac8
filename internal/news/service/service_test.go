package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/lojistik/internal/logging"
	"github.com/zappabad/lojistik/internal/news"
)

type fakeFetcher struct {
	feeds map[string][]string
	errs  map[string]error
}

func (f fakeFetcher) Fetch(ctx context.Context, src news.Source) ([]news.Entry, error) {
	if err := f.errs[src.Name]; err != nil {
		return nil, err
	}
	var out []news.Entry
	for _, t := range f.feeds[src.Name] {
		out = append(out, news.Entry{Source: src.Name, Tag: src.Tag, Title: t})
	}
	return out, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Sources = []news.Source{
		{Name: "gCaptain", Tag: "DENİZCİLİK", ScanLimit: 10, ShowLimit: 2},
		{Name: "FreightWaves", Tag: "TEDARİK", ScanLimit: 8, ShowLimit: 2},
		{Name: "OilPrice", Tag: "ENERJİ", ScanLimit: 6, ShowLimit: 1},
	}
	return cfg
}

func TestScan(t *testing.T) {
	var buf bytes.Buffer
	f := fakeFetcher{
		feeds: map[string][]string{
			"gCaptain": {"Houthi attack", "Neutral a", "Neutral b", "Neutral c"},
			"OilPrice": {"Neutral x", "Neutral y", "Crude tariff talk"},
		},
		errs: map[string]error{"FreightWaves": errors.New("dial tcp: timeout")},
	}

	svc := NewNewsService(testConfig(), f, logging.NewWriter(&buf))
	desk, err := svc.Scan(context.Background())
	require.NoError(t, err)

	var got []string
	for _, r := range desk.Rows {
		if r.Err != nil {
			got = append(got, "ERR "+r.Source.Name)
			continue
		}
		got = append(got, r.Entry.Title)
	}
	assert.Equal(t, []string{
		"Houthi attack", "Neutral a", "Neutral b",
		"ERR FreightWaves",
		"Neutral x", "Crude tariff talk",
	}, got)
	assert.Equal(t, 2, desk.Important)

	failures := desk.Sources.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "FreightWaves", failures[0].Key)
	assert.Contains(t, buf.String(), " - ERROR - Kaynak hatası")
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewNewsService(testConfig(), fakeFetcher{}, nil)
	_, err := svc.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultsApplied(t *testing.T) {
	svc := NewNewsService(Config{}, fakeFetcher{}, nil)
	assert.Len(t, svc.cfg.Sources, 4)
	assert.Len(t, svc.cfg.Rules, 4)
}
