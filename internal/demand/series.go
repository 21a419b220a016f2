package demand

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"heat-optimizer/internal/model"

	"github.com/rs/zerolog"
)

// headerRows are metadata/header lines at the top of the source.
const headerRows = 3

// Column offsets of the two side-by-side streams; column 4 separates them.
const (
	winterOffset = 0
	summerOffset = 5
)

// Series holds the winter and summer demand intervals in source order.
// It is immutable after Load.
type Series struct {
	paths []string
	log   zerolog.Logger

	winter []model.HeatDemand
	summer []model.HeatDemand
}

func New(paths []string, log zerolog.Logger) *Series {
	return &Series{
		paths:  append([]string(nil), paths...),
		log:    log,
		winter: []model.HeatDemand{},
		summer: []model.HeatDemand{},
	}
}

// Load parses the first existing source path. Missing files and malformed
// rows are logged; they never abort the load.
func (s *Series) Load() {
	s.winter = []model.HeatDemand{}
	s.summer = []model.HeatDemand{}

	path := ""
	for _, p := range s.paths {
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		s.log.Warn().Strs("paths", s.paths).Msg("heat demand file not found")
		return
	}
	f, err := os.Open(path)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("open heat demand file")
		return
	}
	defer f.Close()

	if err := s.Parse(f); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("process heat demand file")
	}
	s.log.Info().Int("winter", len(s.winter)).Int("summer", len(s.summer)).Str("path", path).Msg("heat demand loaded")
}

// Parse reads the wide-format source from r, appending to both series.
// Rows that fail to parse are skipped per stream.
func (s *Series) Parse(r io.Reader) error {
	br := bufio.NewReader(r)
	for i := 0; i < headerRows; i++ {
		line, err := br.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return fmt.Errorf("unexpected end of file while skipping header line %d", i+1)
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	row := headerRows
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		row++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				s.log.Warn().Err(err).Int("row", row).Msg("csv parsing error, row skipped")
				continue
			}
			return err
		}
		if blank(rec) {
			continue
		}
		if d, err := parseInterval(rec, winterOffset); err != nil {
			s.log.Warn().Err(err).Int("row", row).Str("series", string(model.ProfileWinter)).Msg("row skipped")
		} else {
			s.winter = append(s.winter, d)
		}
		if d, err := parseInterval(rec, summerOffset); err != nil {
			s.log.Warn().Err(err).Int("row", row).Str("series", string(model.ProfileSummer)).Msg("row skipped")
		} else {
			s.summer = append(s.summer, d)
		}
	}
}

func (s *Series) Winter() []model.HeatDemand {
	return append([]model.HeatDemand(nil), s.winter...)
}

func (s *Series) Summer() []model.HeatDemand {
	return append([]model.HeatDemand(nil), s.summer...)
}

// Profile returns the series for p; an unknown profile yields nil.
func (s *Series) Profile(p model.Profile) []model.HeatDemand {
	switch p {
	case model.ProfileWinter:
		return s.Winter()
	case model.ProfileSummer:
		return s.Summer()
	}
	return nil
}

// Range returns winter then summer intervals whose bounds fall in [start, end].
func (s *Series) Range(start, end time.Time) []model.HeatDemand {
	out := []model.HeatDemand{}
	for _, series := range [][]model.HeatDemand{s.winter, s.summer} {
		for _, d := range series {
			if d.Within(start, end) {
				out = append(out, d)
			}
		}
	}
	return out
}

func parseInterval(rec []string, off int) (model.HeatDemand, error) {
	if len(rec) < off+4 {
		return model.HeatDemand{}, fmt.Errorf("expected at least %d columns, got %d", off+4, len(rec))
	}
	from, err := ParseTime(rec[off])
	if err != nil {
		return model.HeatDemand{}, fmt.Errorf("time from: %w", err)
	}
	to, err := ParseTime(rec[off+1])
	if err != nil {
		return model.HeatDemand{}, fmt.Errorf("time to: %w", err)
	}
	heat, err := parseFloat(rec[off+2])
	if err != nil {
		return model.HeatDemand{}, fmt.Errorf("heat: %w", err)
	}
	price, err := parseFloat(rec[off+3])
	if err != nil {
		return model.HeatDemand{}, fmt.Errorf("electricity price: %w", err)
	}
	d := model.HeatDemand{TimeFrom: from, TimeTo: to, Heat: heat, ElectricityPrice: price}
	if err := d.Validate(); err != nil {
		return model.HeatDemand{}, err
	}
	return d, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
