package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/lojistik/internal/config"
	"github.com/zappabad/lojistik/internal/logging"
	"github.com/zappabad/lojistik/internal/market"
	"github.com/zappabad/lojistik/internal/news"
)

type fakeProvider struct {
	closes map[market.Symbol][]float64
	err    error
}

func (f fakeProvider) FetchSeries(ctx context.Context, sym market.Symbol) (market.Series, error) {
	if f.err != nil {
		return market.Series{}, f.err
	}
	s := market.Series{Symbol: sym}
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range f.closes[sym] {
		s.Points = append(s.Points, market.PricePoint{Time: start.AddDate(0, 0, i), Symbol: sym, Close: c})
	}
	return s, nil
}

type fakeFetcher map[string][]string

func (f fakeFetcher) Fetch(ctx context.Context, src news.Source) ([]news.Entry, error) {
	titles, ok := f[src.Name]
	if !ok {
		return nil, errors.New("connection refused")
	}
	var out []news.Entry
	for _, t := range titles {
		out = append(out, news.Entry{Source: src.Name, Tag: src.Tag, Title: t})
	}
	return out, nil
}

func healthyProvider() fakeProvider {
	return fakeProvider{closes: map[market.Symbol][]float64{
		"BDRY":  {100, 102, 99, 101, 90},
		"ZIM":   {15, 14, 16},
		"AMKBY": {10, 10},
		"FDX":   {250, 245},
		"CL=F":  {70, 72},
	}}
}

func newTestApp(t *testing.T, deps Deps) (*App, string) {
	t.Helper()
	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "log.csv")
	cfg.Files.SnapshotLog = path
	if deps.Provider == nil {
		deps.Provider = healthyProvider()
	}
	if deps.Fetcher == nil {
		deps.Fetcher = fakeFetcher{}
	}
	return NewApp(cfg, deps), path
}

func TestDashboardRendersAndAppends(t *testing.T) {
	a, path := newTestApp(t, Deps{})

	var out bytes.Buffer
	require.NoError(t, a.Dashboard(context.Background(), &out))

	s := out.String()
	assert.Contains(t, s, "KÜRESEL LOJİSTİK İSTİHBARAT AĞI")
	assert.Contains(t, s, "Kuru Yük")
	assert.Contains(t, s, "MARJ BASKISI")
	assert.Contains(t, s, "Log güncellendi.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Tarih,BDRY,ZIM,AMKBY,FDX,CL=F", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",90.00,16.00,10.00,245.00,72.00"), lines[1])
}

func TestDashboardNoDataIsCritical(t *testing.T) {
	var logBuf bytes.Buffer
	a, path := newTestApp(t, Deps{
		Logger:   logging.NewWriter(&logBuf),
		Provider: fakeProvider{err: errors.New("boom")},
	})

	var out bytes.Buffer
	require.NoError(t, a.Dashboard(context.Background(), &out))

	assert.Contains(t, out.String(), "Hata:")
	assert.NotContains(t, out.String(), "Log güncellendi.")
	assert.Contains(t, logBuf.String(), " - CRITICAL - ")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDashboardLogFailure(t *testing.T) {
	var logBuf bytes.Buffer
	a, _ := newTestApp(t, Deps{Logger: logging.NewWriter(&logBuf)})
	a.History.Path = filepath.Join(t.TempDir(), "missing", "log.csv")

	var out bytes.Buffer
	require.NoError(t, a.Dashboard(context.Background(), &out))

	assert.Contains(t, out.String(), "Enstrüman")
	assert.Contains(t, out.String(), "Log güncellenemedi.")
	assert.Contains(t, logBuf.String(), " - ERROR - ")
}

func TestDashboardCancelled(t *testing.T) {
	a, _ := newTestApp(t, Deps{Provider: fakeProvider{err: context.Canceled}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := a.Dashboard(ctx, &out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShowHistory(t *testing.T) {
	a, _ := newTestApp(t, Deps{})

	var out bytes.Buffer
	require.NoError(t, a.ShowHistory(&out))
	assert.Contains(t, out.String(), "Kayıt yok!")

	require.NoError(t, a.Dashboard(context.Background(), &bytes.Buffer{}))
	require.NoError(t, a.Dashboard(context.Background(), &bytes.Buffer{}))

	out.Reset()
	require.NoError(t, a.ShowHistory(&out))
	assert.Contains(t, out.String(), "Lojistik Kayıt Defteri")
	assert.Equal(t, 2, strings.Count(out.String(), "245.00"))
}

func TestShowHistoryEmptyFile(t *testing.T) {
	a, path := newTestApp(t, Deps{})
	require.NoError(t, os.WriteFile(path, []byte("Tarih,BDRY\n"), 0o644))

	var out bytes.Buffer
	require.NoError(t, a.ShowHistory(&out))
	assert.Contains(t, out.String(), "Dosya boş.")
}

func TestShowCharts(t *testing.T) {
	a, _ := newTestApp(t, Deps{})

	var out bytes.Buffer
	require.NoError(t, a.ShowCharts(&out))
	assert.Contains(t, out.String(), "Veri yok!")

	require.NoError(t, a.Dashboard(context.Background(), &bytes.Buffer{}))
	out.Reset()
	require.NoError(t, a.ShowCharts(&out))
	assert.Contains(t, out.String(), "⚠ Grafik için en az 2 veri lazım.")

	require.NoError(t, a.Dashboard(context.Background(), &bytes.Buffer{}))
	out.Reset()
	require.NoError(t, a.ShowCharts(&out))
	s := out.String()
	assert.Contains(t, s, "📈 BDRY Trendi (Son: $90.00)")
	assert.Contains(t, s, "📈 CL=F Trendi (Son: $72.00)")
	assert.Contains(t, s, "Veri Aralığı:")
}

func TestNewsDesk(t *testing.T) {
	a, _ := newTestApp(t, Deps{Fetcher: fakeFetcher{
		"gCaptain":     {"Houthi attack on vessel", "Port opens new terminal"},
		"FreightWaves": {"Record profit for carriers"},
		"OilPrice":     {"Weekly outlook"},
	}})

	var out bytes.Buffer
	require.NoError(t, a.NewsDesk(context.Background(), &out))

	s := out.String()
	assert.Contains(t, s, "KÜRESEL İSTİHBARAT MASASI")
	assert.Contains(t, s, "Houthi attack on vessel")
	assert.Contains(t, s, "HATA")
	assert.Contains(t, s, "Dipnot: Tarama sonucunda 2 adet kritik sinyal yakalandı.")
}

func TestOpenRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  rows: 0\n"), 0o644))

	_, err := Open(Options{ConfigPath: path})
	assert.Error(t, err)
}

func TestOpenWritesErrorLog(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOJISTIK_SNAPSHOT_LOG", filepath.Join(dir, "log.csv"))
	t.Setenv("LOJISTIK_ERROR_LOG", filepath.Join(dir, "hata.log"))

	a, err := Open(Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "log.csv"), a.History.Path)

	a.logger.Error("Kaynak hatası")
	require.NoError(t, a.Close())

	data, err := os.ReadFile(filepath.Join(dir, "hata.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), " - ERROR - ")
}

func TestDashboardKeepsLoggingAfterPartialFirstRun(t *testing.T) {
	partial := healthyProvider()
	delete(partial.closes, "ZIM")

	a, path := newTestApp(t, Deps{Provider: partial})
	var out bytes.Buffer
	require.NoError(t, a.Dashboard(context.Background(), &out))
	assert.Contains(t, out.String(), "Log güncellendi.")

	healthy := NewApp(a.cfg, Deps{Provider: healthyProvider(), Fetcher: fakeFetcher{}})
	for i := 0; i < 2; i++ {
		out.Reset()
		require.NoError(t, healthy.Dashboard(context.Background(), &out))
		assert.Contains(t, out.String(), "Log güncellendi.", "run %d", i)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Tarih,BDRY,ZIM,AMKBY,FDX,CL=F", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ",90.00,,10.00,245.00,72.00"), lines[1])
	assert.True(t, strings.HasSuffix(lines[3], ",90.00,16.00,10.00,245.00,72.00"), lines[3])
}
