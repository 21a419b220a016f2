package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"heat-optimizer/internal/demand"
	"heat-optimizer/internal/model"

	"github.com/rs/zerolog"
)

// CSVStore keeps results in a single CSV file that every Save overwrites.
type CSVStore struct {
	path string
	log  zerolog.Logger
}

func NewCSVStore(path string, log zerolog.Logger) *CSVStore {
	return &CSVStore{path: path, log: log}
}

func (s *CSVStore) Path() string { return s.path }

func (s *CSVStore) Save(rows []model.ResultEntry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteCSV(f, rows); err != nil {
		return err
	}
	return f.Close()
}

// WriteCSV writes the header and rows to w.
func WriteCSV(w io.Writer, rows []model.ResultEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.UnitName,
			fmtTime(r.Timestamp),
			fmtFloat(r.HeatProduced),
			fmtFloat(r.ElectricityProduced),
			fmtFloat(r.ProductionCost),
			fmtFloat(r.FuelConsumption),
			fmtFloat(r.CO2Emissions),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *CSVStore) Load() ([]model.ResultEntry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Warn().Str("path", s.path).Msg("result file not found")
		return []model.ResultEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, s.log)
}

// ReadCSV parses rows by header name. A file without the expected columns
// is an error; individual bad rows are skipped.
func ReadCSV(r io.Reader, log zerolog.Logger) ([]model.ResultEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	out := []model.ResultEntry{}
	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range head {
		cols[strings.TrimSpace(h)] = i
	}
	for _, h := range Header {
		if _, ok := cols[h]; !ok {
			return nil, fmt.Errorf("missing column %q", h)
		}
	}

	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		line++
		if err != nil {
			log.Warn().Err(err).Int("row", line).Msg("error reading record")
			continue
		}
		e, err := parseRow(rec, cols)
		if err != nil {
			log.Warn().Err(err).Int("row", line).Msg("error reading record")
			continue
		}
		out = append(out, e)
	}
}

func parseRow(rec []string, cols map[string]int) (model.ResultEntry, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(rec) {
			return "", fmt.Errorf("missing field %s", name)
		}
		return strings.TrimSpace(rec[i]), nil
	}
	num := func(name string) (float64, error) {
		v, err := field(name)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return f, nil
	}

	var e model.ResultEntry
	var err error
	if e.UnitName, err = field("UnitName"); err != nil {
		return e, err
	}
	ts, err := field("Timestamp")
	if err != nil {
		return e, err
	}
	if e.Timestamp, err = demand.ParseTime(ts); err != nil {
		return e, err
	}
	if e.HeatProduced, err = num("HeatProduced"); err != nil {
		return e, err
	}
	if e.ElectricityProduced, err = num("ElectricityProduced"); err != nil {
		return e, err
	}
	if e.ProductionCost, err = num("ProductionCost"); err != nil {
		return e, err
	}
	if e.FuelConsumption, err = num("FuelConsumption"); err != nil {
		return e, err
	}
	if e.CO2Emissions, err = num("CO2Emissions"); err != nil {
		return e, err
	}
	return e, nil
}

func (s *CSVStore) Close() error { return nil }

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
