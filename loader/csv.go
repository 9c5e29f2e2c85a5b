package loader

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	isoline "github.com/esimov/isoline/core"
	"github.com/pkg/errors"
)

// ErrQuotedField is returned by ReadCSV for input containing a double quote.
var ErrQuotedField = errors.New("quoted fields are not supported")

// ReadCSV reads samples from delimited rows "x,y,z". There is no header and
// no quoting; blank lines are skipped. Errors report the offending line.
func ReadCSV(r io.Reader) (*isoline.Samples, error) {
	cr := csv.NewReader(&quoteGuard{r: r})
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	cr.LazyQuotes = false

	samples := isoline.NewSamples()
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "loader: csv")
		}
		line, _ := cr.FieldPos(0)

		var v [3]float64
		for i, field := range rec {
			v[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "loader: csv line %d", line)
			}
		}
		if err := samples.Add(isoline.Pt(v[0], v[1]), v[2]); err != nil {
			return nil, errors.Wrapf(err, "loader: csv line %d", line)
		}
	}
	return samples, nil
}

// quoteGuard fails on the first double quote, which encoding/csv would
// otherwise take as the start of a quoted field.
type quoteGuard struct {
	r    io.Reader
	line int
}

func (g *quoteGuard) Read(p []byte) (int, error) {
	n, err := g.r.Read(p)
	for i, b := range p[:n] {
		switch b {
		case '\n':
			g.line++
		case '"':
			return i, errors.Wrapf(ErrQuotedField, "line %d", g.line+1)
		}
	}
	return n, err
}

// WriteCSV writes samples as "x,y,z" rows in insertion order.
func WriteCSV(w io.Writer, samples *isoline.Samples) error {
	cw := csv.NewWriter(w)
	for _, p := range samples.Points() {
		z, _ := samples.Elevation(p)
		rec := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
			strconv.FormatFloat(z, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "loader: csv")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "loader: csv")
}
