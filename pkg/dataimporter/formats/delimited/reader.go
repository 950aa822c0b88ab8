package delimited

import (
	"io"
)

// Record is one data row keyed by header name
type Record map[string]string

// Lookup distinguishes a column missing from the header from an empty value
func (r Record) Lookup(column string) (string, bool) {
	value, exists := r[column]
	return value, exists
}

// Reader maps each data row onto the header row. Missing trailing fields read as "".
type Reader struct {
	rows   *Rows
	header []string
	line   int
}

func NewReader(reader io.Reader, comma rune) *Reader {
	return &Reader{rows: NewRows(reader, comma)}
}

func (r *Reader) Require(columns ...string) *Reader {
	r.rows.Require(columns...)
	return r
}

func (r *Reader) Header() []string {
	return r.header
}

func (r *Reader) Read() (Record, error) {
	if r.header == nil {
		header, err := r.rows.Read()
		if err != nil {
			return nil, err
		}
		r.header = header
	}

	row, err := r.rows.Read()
	if err != nil {
		return nil, err
	}
	r.line = r.rows.Line()

	record := make(Record, len(r.header))
	for i, column := range r.header {
		if i < len(row) {
			record[column] = row[i]
		} else {
			record[column] = ""
		}
	}

	return record, nil
}

func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) Skipped() int {
	return r.rows.Skipped
}
