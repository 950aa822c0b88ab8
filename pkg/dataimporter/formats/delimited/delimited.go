package delimited

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

const DefaultComma = ';'

var ErrMissingColumn = errors.New("missing required column")

// ParseComma turns a configured delimiter into the field separator, defaulting to ';'
func ParseComma(delimiter string) rune {
	switch delimiter {
	case "":
		return DefaultComma
	case `\t`, "tab":
		return '\t'
	}

	comma, _ := utf8.DecodeRuneInString(delimiter)
	return comma
}

// Rows tokenises delimited text. Blank and malformed lines are skipped, fields are trimmed.
// It satisfies gocsv.CSVReader so typed rows can be decoded straight from it.
type Rows struct {
	r *csv.Reader

	required   []string
	headerRead bool

	// Lines holds the starting line of every data row returned so far
	Lines   []int
	Skipped int
}

func NewRows(reader io.Reader, comma rune) *Rows {
	r := csv.NewReader(reader)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	return &Rows{r: r}
}

// Require makes reading the header fail with ErrMissingColumn when any of columns is absent
func (r *Rows) Require(columns ...string) *Rows {
	r.required = append(r.required, columns...)
	return r
}

func (r *Rows) Read() ([]string, error) {
	for {
		row, err := r.r.Read()
		if err != nil {
			var parseError *csv.ParseError
			if errors.As(err, &parseError) && r.headerRead {
				log.Debug().Int("line", parseError.Line).Err(err).Msg("Skipping malformed row")
				r.Skipped++
				continue
			}

			return nil, err
		}

		blank := true
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
			if row[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}

		if !r.headerRead {
			r.headerRead = true
			if err := r.checkHeader(row); err != nil {
				return nil, err
			}
		} else {
			r.Lines = append(r.Lines, r.Line())
		}

		return row, nil
	}
}

func (r *Rows) ReadAll() ([][]string, error) {
	var rows [][]string

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}
}

// Line is the line the last returned row started on
func (r *Rows) Line() int {
	line, _ := r.r.FieldPos(0)
	return line
}

func (r *Rows) checkHeader(header []string) error {
	for _, column := range r.required {
		found := false
		for _, name := range header {
			if name == column {
				found = true
				break
			}
		}

		if !found {
			return fmt.Errorf("%w %q", ErrMissingColumn, column)
		}
	}

	return nil
}

// Unmarshal decodes every row into out, a pointer to a slice of csv tagged structs, and
// returns the line each decoded row started on.
// A file holding only a header, or nothing at all, decodes to no rows.
func Unmarshal(reader io.Reader, comma rune, out interface{}, required ...string) ([]int, error) {
	rows := NewRows(reader, comma).Require(required...)

	err := gocsv.UnmarshalCSV(rows, out)
	if errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return rows.Lines, nil
}
