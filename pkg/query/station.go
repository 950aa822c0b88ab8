package query

import (
	"fmt"
	"strings"

	"github.com/travigo/dutyboard/pkg/clock"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"golang.org/x/exp/slices"
)

type EventType string

const (
	EventTypeDutyStart EventType = "DutyStart"
	EventTypeDutyEnd   EventType = "DutyEnd"
	EventTypeDeparture EventType = EventType(ctdf.CallTypeDeparture)
	EventTypePass      EventType = EventType(ctdf.CallTypePass)
	EventTypeArrival   EventType = EventType(ctdf.CallTypeArrival)
)

type StationResult struct {
	Status  Status `groups:"basic"`
	Message string `groups:"basic" json:",omitempty"`

	Station string `groups:"basic"`
	From    string `groups:"basic"`
	To      string `groups:"basic"`

	Events []StationEvent `groups:"basic"`
}

type StationEvent struct {
	Time   string    `groups:"basic"`
	Type   EventType `groups:"basic"`
	DutyID string    `groups:"basic"`

	Train       string `groups:"basic" json:",omitempty"`
	Line        string `groups:"basic" json:",omitempty"`
	Origin      string `groups:"basic" json:",omitempty"`
	Destination string `groups:"basic" json:",omitempty"`

	sortKey int
}

// ByStation lists duties signing on or off at the station and trains calling there within the
// window. A window with from later than to runs over midnight.
func (e *Engine) ByStation(station string, from string, to string, service string) StationResult {
	station = strings.TrimSpace(station)
	if from == "" {
		from = "00:00"
	}
	if to == "" {
		to = "23:59"
	}

	result := StationResult{Station: station, From: clock.Truncate(from), To: clock.Truncate(to)}

	if station == "" {
		result.Status = StatusInvalid
		result.Message = "no station given"
		return result
	}
	if !e.db.HasStation(station) {
		result.Status = StatusNotFound
		result.Message = fmt.Sprintf("station %s not found", station)
		return result
	}

	duties := e.db.DutiesInService(service)
	carriers := map[string]string{}

	for _, duty := range duties {
		if duty.HomeStation == station && clock.InRange(duty.StartTime, from, to) {
			result.Events = append(result.Events, StationEvent{Time: clock.Truncate(duty.StartTime), Type: EventTypeDutyStart, DutyID: duty.ID})
		}
		if duty.FinalStation() == station && clock.InRange(duty.EndTime, from, to) {
			result.Events = append(result.Events, StationEvent{Time: clock.Truncate(duty.EndTime), Type: EventTypeDutyEnd, DutyID: duty.ID})
		}

		for _, run := range duty.Runs {
			if _, exists := carriers[run.Code]; !exists {
				carriers[run.Code] = duty.ID
			}
		}
	}

	for _, circulation := range e.db.Circulations() {
		dutyID, carried := carriers[circulation.Code]
		if !carried {
			continue
		}

		for _, call := range circulation.CallsAt(station) {
			if !clock.InRange(call.Time, from, to) {
				continue
			}

			result.Events = append(result.Events, StationEvent{
				Time:        clock.Truncate(call.Time),
				Type:        EventType(call.Type),
				DutyID:      dutyID,
				Train:       circulation.Code,
				Line:        circulation.Line,
				Origin:      circulation.Origin,
				Destination: circulation.Destination,
			})
		}
	}

	start := clock.ToMinutes(from)
	wraps := clock.CrossesMidnight(from, to)
	for index := range result.Events {
		result.Events[index].sortKey = clock.Rollover(clock.ToMinutes(result.Events[index].Time), start, wraps)
	}

	slices.SortStableFunc(result.Events, func(a, b StationEvent) int {
		return a.sortKey - b.sortKey
	})

	result.Status = StatusFound

	return result
}
