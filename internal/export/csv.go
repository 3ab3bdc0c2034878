package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/ccm/internal/edm"
	"github.com/san-kum/ccm/internal/systems"
)

var (
	ErrEmptyCSV      = errors.New("export: csv has no header")
	ErrUnknownColumn = errors.New("export: unknown column")
)

// WriteCSV writes curves in long form, one row per (curve, L).
func WriteCSV(w io.Writer, curves ...edm.Labeled) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"curve", "l", "rho", "spread"}); err != nil {
		return err
	}
	for _, c := range curves {
		for _, p := range c.Curve {
			row := []string{
				c.Name,
				strconv.Itoa(p.L),
				strconv.FormatFloat(p.Rho, 'g', -1, 64),
				strconv.FormatFloat(p.Spread, 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV writes a data set column-wise with a header row.
func WriteSeriesCSV(w io.Writer, ds *systems.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Names); err != nil {
		return err
	}

	n := 0
	for _, name := range ds.Names {
		n = max(n, len(ds.Series[name]))
	}
	row := make([]string, len(ds.Names))
	for i := 0; i < n; i++ {
		for j, name := range ds.Names {
			s := ds.Series[name]
			if i < len(s) {
				row[j] = strconv.FormatFloat(s[i], 'g', -1, 64)
			} else {
				row[j] = ""
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSeriesCSV reads a header row followed by float columns. When cols is
// non-empty only those columns are kept, in the given order.
func ReadSeriesCSV(r io.Reader, cols ...string) (*systems.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	if len(cols) == 0 {
		cols = header
	}
	pick := make([]int, len(cols))
	for i, name := range cols {
		j, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s (have %v)", ErrUnknownColumn, name, header)
		}
		pick[i] = j
	}

	ds := &systems.Dataset{Names: append([]string(nil), cols...), Series: make(map[string][]float64, len(cols))}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, j := range pick {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, cols[i], err)
			}
			ds.Series[cols[i]] = append(ds.Series[cols[i]], v)
		}
	}
	return ds, nil
}

func LoadSeriesCSV(path string, cols ...string) (*systems.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadSeriesCSV(file, cols...)
}
