package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/lojistik/internal/market"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "lojistik_log.csv"), nil)
}

var t0 = time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local)

func TestAppendWritesHeaderOnce(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Append(t0, []market.Quote{{Symbol: "BDRY", Price: 9.456}, {Symbol: "CL=F", Price: 70}}))
	require.NoError(t, s.Append(t0.Add(time.Hour), []market.Quote{{Symbol: "BDRY", Price: 9.5}, {Symbol: "CL=F", Price: 71.126}}))

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t,
		"Tarih,BDRY,CL=F\n"+
			"2026-10-19 09:30:00,9.46,70.00\n"+
			"2026-10-19 10:30:00,9.50,71.13\n",
		string(data))
}

func TestAppendFollowsHeaderOrder(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(t0, []market.Quote{{Symbol: "BDRY", Price: 1}, {Symbol: "ZIM", Price: 2}}))

	// reordered and partial snapshots stay aligned with the header
	require.NoError(t, s.Append(t0, []market.Quote{{Symbol: "ZIM", Price: 3}, {Symbol: "BDRY", Price: 4}}))
	require.NoError(t, s.Append(t0, []market.Quote{{Symbol: "ZIM", Price: 5}}))

	tbl, err := s.Load()
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []string{"4.00", "3.00"}, tbl.Rows[1].Values)
	assert.Equal(t, []string{"", "5.00"}, tbl.Rows[2].Values)

	bdry, ok := tbl.Column("BDRY")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 4}, bdry)
}

func TestAppendRejectsUnknownSymbol(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Append(t0, []market.Quote{{Symbol: "BDRY", Price: 1}}))

	err := s.Append(t0, []market.Quote{{Symbol: "BDRY", Price: 2}, {Symbol: "FDX", Price: 3}})
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	tbl, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 1)
}

func TestAppendEmpty(t *testing.T) {
	s := newStore(t)
	assert.ErrorIs(t, s.Append(t0, nil), ErrEmptySnapshot)
	_, err := os.Stat(s.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestAppendIOError(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing", "log.csv"), nil)
	assert.Error(t, s.Append(t0, []market.Quote{{Symbol: "BDRY", Price: 1}}))
}

func TestLoadMissing(t *testing.T) {
	_, err := newStore(t).Load()
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestLast(t *testing.T) {
	s := newStore(t)
	for i := 0; i < 12; i++ {
		require.NoError(t, s.Append(t0.Add(time.Duration(i)*time.Minute), []market.Quote{{Symbol: "ZIM", Price: float64(i)}}))
	}

	tbl, err := s.Load()
	require.NoError(t, err)

	last := tbl.Last(10)
	require.Len(t, last, 10)
	assert.Equal(t, "11.00", last[0].Values[0])
	assert.Equal(t, "2.00", last[9].Values[0])

	assert.Len(t, tbl.Last(50), 12)
	assert.Equal(t, []string{"Tarih", "ZIM"}, tbl.Header())

	_, ok := tbl.Column("NOPE")
	assert.False(t, ok)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price    float64
		decimals int
		want     string
	}{
		{2.675, 2, "2.67"},
		{0.125, 2, "0.12"},
		{100, 2, "100.00"},
		{-1.5, 2, "-1.50"},
		{1.23456, 4, "1.2346"},
		{70.6, 0, "71"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.price, tt.decimals), "FormatPrice(%v, %d)", tt.price, tt.decimals)
	}
}

func TestAppendUsesUniverseHeader(t *testing.T) {
	universe := []market.Instrument{
		{Symbol: "BDRY"},
		{Symbol: "ZIM"},
		{Symbol: "CL=F", Decimals: 3},
	}
	s := NewStore(filepath.Join(t.TempDir(), "lojistik_log.csv"), universe)

	// ZIM is missing from the first snapshot but keeps its column
	require.NoError(t, s.Append(t0, []market.Quote{{Symbol: "BDRY", Price: 9.5}, {Symbol: "CL=F", Price: 70.1234}}))
	require.NoError(t, s.Append(t0.Add(time.Hour), []market.Quote{
		{Symbol: "BDRY", Price: 9.6}, {Symbol: "ZIM", Price: 15}, {Symbol: "CL=F", Price: 71},
	}))

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t,
		"Tarih,BDRY,ZIM,CL=F\n"+
			"2026-10-19 09:30:00,9.50,,70.123\n"+
			"2026-10-19 10:30:00,9.60,15.00,71.000\n",
		string(data))
}
