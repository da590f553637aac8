// Package history persists snapshot rows to an append-only CSV log and reads
// them back for the log and chart views.
package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zappabad/lojistik/internal/market"
)

const (
	// TimeColumn is the header of the capture time column.
	TimeColumn = "Tarih"
	// TimeLayout is the capture time format of each row.
	TimeLayout = "2006-01-02 15:04:05"
)

var (
	// ErrNoHistory is returned when the log file does not exist.
	ErrNoHistory = errors.New("no history")
	// ErrSchemaMismatch is returned when a snapshot carries a symbol the
	// log header does not know.
	ErrSchemaMismatch = errors.New("snapshot schema does not match log header")
	// ErrEmptySnapshot is returned when there is nothing to append.
	ErrEmptySnapshot = errors.New("empty snapshot")
)

// Row is one persisted snapshot. Values holds the raw cells in header order;
// an empty cell means the symbol was unavailable for that snapshot.
type Row struct {
	Time   string
	Values []string
}

// Table is the parsed log.
type Table struct {
	Symbols []market.Symbol
	Rows    []Row
}

// Header returns the header cells including the time column.
func (t Table) Header() []string {
	out := make([]string, 0, len(t.Symbols)+1)
	out = append(out, TimeColumn)
	for _, s := range t.Symbols {
		out = append(out, string(s))
	}
	return out
}

// Last returns up to n rows, most recent first.
func (t Table) Last(n int) []Row {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := make([]Row, 0, n)
	for i := len(t.Rows) - 1; i >= len(t.Rows)-n; i-- {
		out = append(out, t.Rows[i])
	}
	return out
}

// Column returns the parsed prices of sym in chronological order, skipping
// empty or unparsable cells. ok is false when the symbol is not in the header.
func (t Table) Column(sym market.Symbol) (values []float64, ok bool) {
	idx := -1
	for i, s := range t.Symbols {
		if s == sym {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	for _, r := range t.Rows {
		if idx >= len(r.Values) || r.Values[idx] == "" {
			continue
		}
		d, err := decimal.NewFromString(r.Values[idx])
		if err != nil {
			continue
		}
		values = append(values, d.InexactFloat64())
	}
	return values, true
}

// Store is the CSV snapshot log at Path. Universe fixes the header of a new
// log and the precision of each column; with no universe the header follows
// the first snapshot.
type Store struct {
	Path     string
	Universe []market.Instrument
}

// NewStore creates a Store for path over the tracked instruments.
func NewStore(path string, universe []market.Instrument) *Store {
	return &Store{Path: path, Universe: universe}
}

// Append writes one snapshot row. The first write creates the file with the
// universe as header, so an instrument missing from that snapshot still gets
// its column. Later writes follow the existing header: symbols
// missing from the snapshot become empty cells, and a symbol absent from the
// header fails with ErrSchemaMismatch without writing anything.
func (s *Store) Append(at time.Time, quotes []market.Quote) error {
	if len(quotes) == 0 {
		return ErrEmptySnapshot
	}

	header, err := s.readHeader()
	if err != nil && !errors.Is(err, ErrNoHistory) {
		return err
	}

	var records [][]string
	if header == nil {
		header = s.newHeader(quotes)
		records = append(records, Table{Symbols: header}.Header())
	}

	row, err := buildRow(header, at, quotes, s.decimals())
	if err != nil {
		return err
	}
	records = append(records, row)

	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open snapshot log: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("write snapshot log: %w", err)
	}
	return f.Close()
}

// Load parses the whole log.
func (s *Store) Load() (Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Table{}, ErrNoHistory
		}
		return Table{}, fmt.Errorf("open snapshot log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var t Table
	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read snapshot log: %w", err)
		}
		if first {
			t.Symbols = parseHeader(rec)
			first = false
			continue
		}
		if len(rec) == 0 {
			continue
		}
		values := make([]string, len(t.Symbols))
		copy(values, rec[1:])
		t.Rows = append(t.Rows, Row{Time: rec[0], Values: values})
	}
	return t, nil
}

func (s *Store) readHeader() ([]market.Symbol, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoHistory
		}
		return nil, fmt.Errorf("open snapshot log: %w", err)
	}
	defer f.Close()

	rec, err := csv.NewReader(f).Read()
	if err == io.EOF {
		// an empty file gets a fresh header
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot log header: %w", err)
	}
	return parseHeader(rec), nil
}

func (s *Store) newHeader(quotes []market.Quote) []market.Symbol {
	var header []market.Symbol
	if len(s.Universe) > 0 {
		for _, in := range s.Universe {
			header = append(header, in.Symbol)
		}
		return header
	}
	for _, q := range quotes {
		header = append(header, q.Symbol)
	}
	return header
}

func (s *Store) decimals() map[market.Symbol]int {
	out := make(map[market.Symbol]int, len(s.Universe))
	for _, in := range s.Universe {
		out[in.Symbol] = in.PriceDecimals()
	}
	return out
}

func parseHeader(rec []string) []market.Symbol {
	if len(rec) > 0 && strings.TrimPrefix(rec[0], "\ufeff") == TimeColumn {
		rec = rec[1:]
	}
	out := make([]market.Symbol, len(rec))
	for i, c := range rec {
		out[i] = market.Symbol(c)
	}
	return out
}

func buildRow(header []market.Symbol, at time.Time, quotes []market.Quote, decimals map[market.Symbol]int) ([]string, error) {
	pos := make(map[market.Symbol]int, len(header))
	for i, sym := range header {
		pos[sym] = i
	}

	row := make([]string, len(header)+1)
	row[0] = at.Format(TimeLayout)
	for _, q := range quotes {
		i, ok := pos[q.Symbol]
		if !ok {
			return nil, fmt.Errorf("%s: %w", q.Symbol, ErrSchemaMismatch)
		}
		d, ok := decimals[q.Symbol]
		if !ok {
			d = market.DefaultDecimals
		}
		row[i+1] = FormatPrice(q.Price, d)
	}
	return row, nil
}

// FormatPrice renders a price with the given decimals, correctly rounded from
// the binary value: 2.675 is stored as 2.67499... and renders as "2.67".
func FormatPrice(p float64, decimals int) string {
	return strconv.FormatFloat(p, 'f', decimals, 64)
}
