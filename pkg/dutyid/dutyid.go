// Package dutyid converts duty identifiers between the three shapes the sources use.
//
//	canonical   Q0001  Q followed by a zero padded number
//	short       QP02   Q, a special letter and two digits, or the literal QF00
//	long        Q0P02  the short form with the service digit inserted after Q
//
// Crew rosters use the short form while the duty schedule uses the long form.
package dutyid

import "strings"

const (
	ServiceBase      = "000"
	ServiceAlternate = "100"

	FreeDuty = "QF00"
)

var specialLetters = map[byte]bool{
	'P': true,
	'R': true,
	'S': true,
	'T': true,
}

var serviceDigits = map[string]string{
	ServiceBase:      "0",
	ServiceAlternate: "1",
}

// Normalise upper cases and trims user input
func Normalise(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// IsSpecial reports whether id is a short form identifier
func IsSpecial(id string) bool {
	if id == FreeDuty {
		return true
	}

	return len(id) == 4 && id[0] == 'Q' && specialLetters[id[1]] && isDigits(id[2:])
}

// ShortFormToLong inserts the service digit into a short form identifier.
// Anything else, including unknown service codes, is returned unchanged.
func ShortFormToLong(id string, service string) string {
	digit, ok := serviceDigits[service]
	if !ok || !IsSpecial(id) {
		return id
	}

	return "Q" + digit + id[1:]
}

// LongFormToShort strips the service digit from a long form identifier
func LongFormToShort(id string) string {
	if id == "Q0F00" || id == "Q1F00" {
		return FreeDuty
	}

	if len(id) == 5 && id[0] == 'Q' && (id[1] == '0' || id[1] == '1') && specialLetters[id[2]] && isDigits(id[3:]) {
		return "Q" + id[2:]
	}

	return id
}

// PadNumeric zero pads the number of a canonical identifier to four digits (Q1 -> Q0001)
func PadNumeric(id string) string {
	if len(id) < 2 || id[0] != 'Q' || !isDigits(id[1:]) {
		return id
	}

	number := id[1:]
	if len(number) < 4 {
		number = strings.Repeat("0", 4-len(number)) + number
	}

	return "Q" + number
}

// Resolve finds the long form of a short identifier that exists according to exists,
// trying the base service before the alternate one. The identifier is returned as is
// when neither long form exists.
func Resolve(id string, exists func(string) bool) string {
	if !IsSpecial(id) {
		return id
	}

	for _, service := range []string{ServiceBase, ServiceAlternate} {
		long := ShortFormToLong(id, service)
		if exists(long) {
			return long
		}
	}

	return id
}

// Candidates lists the identifiers a user supplied duty could refer to, most specific first:
// the service specific long form, the input itself and its zero padded canonical form.
func Candidates(input string, service string) []string {
	input = Normalise(input)
	if input == "" {
		return nil
	}

	var candidates []string
	add := func(id string) {
		for _, existing := range candidates {
			if existing == id {
				return
			}
		}
		candidates = append(candidates, id)
	}

	if service == "" {
		add(ShortFormToLong(input, ServiceBase))
		add(ShortFormToLong(input, ServiceAlternate))
	} else {
		add(ShortFormToLong(input, service))
	}

	add(input)

	if isDigits(input) {
		add(PadNumeric("Q" + input))
	} else {
		add(PadNumeric(input))
	}

	return candidates
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
