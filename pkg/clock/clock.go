package clock

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const MinutesPerDay = 1440

// ToMinutes converts a "HH:MM" wall clock time into minutes past midnight.
// Malformed input gives 0 rather than an error.
func ToMinutes(time string) int {
	parts := strings.Split(strings.TrimSpace(time), ":")
	if len(parts) < 2 {
		return 0
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}

	return hours*60 + minutes
}

// ToTimeString formats minutes past midnight as "HH:MM", wrapping the hour past 24
func ToTimeString[T int | float64](minutes T) string {
	total := int(math.Round(float64(minutes)))
	total = ((total % MinutesPerDay) + MinutesPerDay) % MinutesPerDay

	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Duration is the number of minutes from start to end, rolling over midnight when end is earlier in the day
func Duration(start string, end string) int {
	if start == "" || end == "" {
		return 0
	}

	startMinutes := ToMinutes(start)
	endMinutes := ToMinutes(end)

	if endMinutes < startMinutes {
		endMinutes += MinutesPerDay
	}

	return endMinutes - startMinutes
}

// Truncate cuts a time such as "05:30:00" down to "05:30"
func Truncate(time string) string {
	time = strings.TrimSpace(time)
	if len(time) > 5 {
		return time[:5]
	}
	return time
}

// InRange checks whether time falls inside the closed window [start, end].
// A window with start after end wraps past midnight.
func InRange(time string, start string, end string) bool {
	time = Truncate(time)
	start = Truncate(start)
	end = Truncate(end)

	if start <= end {
		return time >= start && time <= end
	}

	return time >= start || time <= end
}

// CrossesMidnight reports whether a span ends earlier in the day than it starts
func CrossesMidnight(start string, end string) bool {
	return ToMinutes(end) < ToMinutes(start)
}

// Rollover projects a minute-of-day onto a timeline beginning at origin.
// Only spans that cross midnight are shifted.
func Rollover(minutes int, origin int, crossesMidnight bool) int {
	if crossesMidnight && minutes < origin {
		return minutes + MinutesPerDay
	}
	return minutes
}
