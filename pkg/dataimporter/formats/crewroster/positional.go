package crewroster

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/travigo/dutyboard/pkg/ctdf"
)

var ErrUndecodableDocument = errors.New("undecodable roster document")

// PositionalRoster is the typeset crew roster, read from the positions of the text on each page
type PositionalRoster struct {
	Keywords  []string
	Tolerance float64

	Pages   [][]Fragment
	Entries []*Entry
}

func (r *PositionalRoster) ParseFile(reader io.Reader) error {
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	r.Pages, err = decodePages(body)
	if err != nil {
		return err
	}

	keywords := r.Keywords
	if keywords == nil {
		keywords = DefaultObservationKeywords
	}
	r.Entries = ExtractEntries(r.Pages, keywords, r.Tolerance)

	return nil
}

func (r *PositionalRoster) Import(builder *ctdf.DatabaseBuilder, datasource *ctdf.DataSource) error {
	importEntries(builder, datasource, r.Entries)
	return nil
}

func decodePages(body []byte) (pages [][]Fragment, err error) {
	// the content stream interpreter panics on some broken documents
	defer func() {
		if recovered := recover(); recovered != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", ErrUndecodableDocument, recovered)
		}
	}()

	document, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUndecodableDocument, err)
	}

	for index := 1; index <= document.NumPage(); index++ {
		page := document.Page(index)
		if page.V.IsNull() {
			continue
		}

		pages = append(pages, mergeGlyphs(page.Content().Text))
	}

	return pages, nil
}

// mergeGlyphs joins the per character text of a content stream into word fragments.
// Whitespace glyphs and horizontal gaps wider than a quarter of the font size end a word.
func mergeGlyphs(glyphs []pdf.Text) []Fragment {
	var fragments []Fragment
	current := -1
	end := 0.0

	for _, glyph := range glyphs {
		if strings.TrimSpace(glyph.S) == "" {
			current = -1
			continue
		}

		if current >= 0 {
			fragment := &fragments[current]
			gap := glyph.X - end

			if math.Abs(glyph.Y-fragment.Y) < 0.5 && gap > -0.5 && gap <= glyph.FontSize*0.25 {
				fragment.Text += glyph.S
				end = glyph.X + glyph.W
				continue
			}
		}

		fragments = append(fragments, Fragment{X: glyph.X, Y: glyph.Y, Text: glyph.S})
		current = len(fragments) - 1
		end = glyph.X + glyph.W
	}

	return fragments
}
