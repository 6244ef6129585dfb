// Package export writes lesson results: a columnar data file and PNG plots.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrDimension is returned when a row or a line does not have the
	// expected number of values.
	ErrDimension = errors.New("dimension mismatch")
	// ErrEmpty is returned when there is nothing to write.
	ErrEmpty = errors.New("empty series")
)

// Series is a sampled trajectory: one row per sample instant, time first.
type Series struct {
	Columns []string
	Rows    [][]float64
}

// NewSeries returns an empty series with the provided column names.
func NewSeries(columns ...string) *Series {
	return &Series{Columns: columns}
}

// Append adds a row. The row must have one value per column.
func (s *Series) Append(row ...float64) error {
	if len(row) != len(s.Columns) {
		return fmt.Errorf("%w: row of %d values for %d columns", ErrDimension, len(row), len(s.Columns))
	}
	s.Rows = append(s.Rows, row)
	return nil
}

// Len returns the number of rows.
func (s *Series) Len() int {
	return len(s.Rows)
}

// Column returns a copy of the column named name, or nil if there is none.
func (s *Series) Column(name string) []float64 {
	for i, c := range s.Columns {
		if c == name {
			out := make([]float64, len(s.Rows))
			for j, row := range s.Rows {
				out[j] = row[i]
			}
			return out
		}
	}
	return nil
}

func (s *Series) String() string {
	return fmt.Sprintf("%d rows of [%s]", len(s.Rows), strings.Join(s.Columns, " "))
}

// Config configures the exporting of a lesson.
type Config struct {
	Dir    string // output directory, created if missing
	Lesson string // lesson identifier, prefix of every file
	Data   bool   // write <lesson>_datfil.txt
	Plots  bool   // render <lesson>_<plot>.png
}

// IsUseless returns whether this config doesn't actually do anything.
func (c Config) IsUseless() bool {
	return !c.Data && !c.Plots
}

// DatfileName returns the data file path of the lesson.
func (c Config) DatfileName() string {
	return filepath.Join(c.Dir, c.Lesson+"_datfil.txt")
}

// PlotName returns the PNG path of the named plot of the lesson.
func (c Config) PlotName(plot string) string {
	return filepath.Join(c.Dir, fmt.Sprintf("%s_%s.png", c.Lesson, plot))
}

// WriteDatfile writes the series to the data file of the lesson and returns
// its path.
func (c Config) WriteDatfile(s *Series) (string, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", err
	}
	name := c.DatfileName()
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	if err := WriteRows(f, s.Rows); err != nil {
		f.Close()
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return name, f.Close()
}

// WriteRows writes one whitespace separated line per row, with a trailing
// newline after the last one. All rows must have the width of the first.
func WriteRows(w io.Writer, rows [][]float64) error {
	if len(rows) == 0 {
		return ErrEmpty
	}
	cw := csv.NewWriter(w)
	cw.Comma = ' '
	width := len(rows[0])
	record := make([]string, width)
	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d values, expected %d", ErrDimension, i, len(row), width)
		}
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'g', 10, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRows parses a data file written by WriteRows. Lines starting with #
// are ignored.
func ReadRows(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comma = ' '
	cr.Comment = '#'
	var rows [][]float64
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("%w: %s", ErrDimension, err)
			}
			return nil, err
		}
		row := make([]float64, len(record))
		for i, field := range record {
			if row[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, err
			}
		}
		rows = append(rows, row)
	}
}
