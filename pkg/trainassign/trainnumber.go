package trainassign

import (
	"fmt"
	"strconv"
	"strings"
)

var seriesByCodePrefix = map[byte]string{
	'2': "112",
	'3': "113",
	'4': "114",
	'5': "115",
}

// DecodeTrainCode turns a three digit code painted on the train into its number (203 -> 112.03)
func DecodeTrainCode(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if len(code) != 3 {
		return "", false
	}
	if _, err := strconv.Atoi(code); err != nil {
		return "", false
	}

	series, ok := seriesByCodePrefix[code[0]]
	if !ok {
		return "", false
	}

	return series + "." + code[1:], true
}

// PhoneExtension gives the extension dialled to reach the cab of a train numbered series.unit
func PhoneExtension(train string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(train), ".")
	if len(parts) != 2 {
		return "", false
	}

	unit, err := strconv.Atoi(parts[1])
	if err != nil || unit < 0 {
		return "", false
	}

	switch parts[0] {
	case "112":
		return fmt.Sprintf("692%d", unit+50), true
	case "113":
		return fmt.Sprintf("694%02d", unit), true
	case "114":
		return fmt.Sprintf("694%d", unit+50), true
	case "115":
		return fmt.Sprintf("697%02d", unit), true
	}

	return "", false
}
