package crewroster

import (
	"math"
	"regexp"
	"strings"

	"github.com/travigo/dutyboard/pkg/dutyid"
	"golang.org/x/exp/slices"
)

// DefaultLineTolerance is how far apart vertically two fragments may be and still share a line
const DefaultLineTolerance = 2.0

var DefaultObservationKeywords = []string{
	"AP", "BAIXA", "CANVI", "COMPENSACIO", "COMPENSACIÓ", "CURS", "DC", "DESCANS", "DISPONIBLE",
	"FORMACIO", "FORMACIÓ", "LLIURE", "PERMIS", "PERMÍS", "RESERVA", "VAC", "VACANCES",
}

var rosterLinePattern = regexp.MustCompile(`\b(Q[0-9A-Z]{1,5})\s+(\d{5})\b\s*(.*)$`)
var timeLikePattern = regexp.MustCompile(`^\d{1,2}[:.h]\d{2}$`)
var dateLikePattern = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}([/-]\d{2,4})?$`)

// Fragment is a run of text placed on a page. Y grows towards the top of the page.
type Fragment struct {
	X    float64
	Y    float64
	Text string
}

type visualLine struct {
	key       float64
	fragments []Fragment
}

// Lines rebuilds the reading order of a page. Fragments within tolerance of a line's key
// join that line, lines run top to bottom and fragments left to right joined by single spaces.
func Lines(fragments []Fragment, tolerance float64) []string {
	var lines []*visualLine

	for _, fragment := range fragments {
		if strings.TrimSpace(fragment.Text) == "" {
			continue
		}

		var target *visualLine
		for _, line := range lines {
			if math.Abs(line.key-fragment.Y) <= tolerance {
				target = line
				break
			}
		}
		if target == nil {
			target = &visualLine{key: fragment.Y}
			lines = append(lines, target)
		}

		target.fragments = append(target.fragments, fragment)
	}

	slices.SortStableFunc(lines, func(a, b *visualLine) int {
		switch {
		case a.key > b.key:
			return -1
		case a.key < b.key:
			return 1
		}
		return 0
	})

	text := make([]string, 0, len(lines))
	for _, line := range lines {
		slices.SortStableFunc(line.fragments, func(a, b Fragment) int {
			switch {
			case a.X < b.X:
				return -1
			case a.X > b.X:
				return 1
			}
			return 0
		})

		parts := make([]string, 0, len(line.fragments))
		for _, fragment := range line.fragments {
			parts = append(parts, strings.TrimSpace(fragment.Text))
		}

		text = append(text, strings.Join(strings.Fields(strings.Join(parts, " ")), " "))
	}

	return text
}

// ParseLine extracts a roster entry from a reconstructed line
func ParseLine(line string, keywords map[string]bool) (*Entry, bool) {
	match := rosterLinePattern.FindStringSubmatch(line)
	if match == nil {
		return nil, false
	}

	name, observation := splitName(match[3], keywords)
	if name == "" {
		return nil, false
	}

	return &Entry{
		DutyID:      dutyid.PadNumeric(match[1]),
		Payroll:     match[2],
		Name:        name,
		Observation: observation,
	}, true
}

// splitName takes the leading words up to the first observation keyword, time or date as the name
func splitName(remainder string, keywords map[string]bool) (string, string) {
	words := strings.Fields(remainder)

	for index, word := range words {
		bare := strings.ToUpper(strings.Trim(word, ".,;:()"))
		if keywords[bare] || timeLikePattern.MatchString(bare) || dateLikePattern.MatchString(bare) {
			return strings.Join(words[:index], " "), strings.Join(words[index:], " ")
		}
	}

	return strings.Join(words, " "), ""
}

// ExtractEntries runs the layout reconstruction over every page
func ExtractEntries(pages [][]Fragment, keywords []string, tolerance float64) []*Entry {
	if tolerance <= 0 {
		tolerance = DefaultLineTolerance
	}

	keywordSet := map[string]bool{}
	for _, keyword := range keywords {
		keywordSet[strings.ToUpper(keyword)] = true
	}

	var entries []*Entry
	for _, page := range pages {
		for _, line := range Lines(page, tolerance) {
			if entry, ok := ParseLine(line, keywordSet); ok {
				entries = append(entries, entry)
			}
		}
	}

	return entries
}
