package manager

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/travigo/dutyboard/pkg/dataimporter/datasets"
	"golang.org/x/net/html/charset"
)

var ErrUnreadableEncoding = errors.New("unreadable text encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readSource(dataset datasets.DataSet) ([]byte, error) {
	if dataset.Source == "" {
		return nil, fmt.Errorf("%w: no source file given", ErrMissingSource)
	}

	body, err := os.ReadFile(dataset.Source)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, dataset.Source)
	}
	if err != nil {
		return nil, err
	}

	if dataset.IsText() {
		return decodeText(body, dataset.Encoding)
	}

	return body, nil
}

// decodeText converts delimited text to UTF-8. Binary content and invalid UTF-8 are rejected.
func decodeText(body []byte, label string) ([]byte, error) {
	if bytes.IndexByte(body, 0) >= 0 {
		return nil, fmt.Errorf("%w: binary content", ErrUnreadableEncoding)
	}

	switch strings.ToLower(label) {
	case "", "utf-8", "utf8":
		body = bytes.TrimPrefix(body, utf8BOM)
		if !utf8.Valid(body) {
			return nil, fmt.Errorf("%w: invalid utf-8", ErrUnreadableEncoding)
		}
		return body, nil
	}

	reader, err := charset.NewReaderLabel(label, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableEncoding, err)
	}

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableEncoding, err)
	}

	return decoded, nil
}
