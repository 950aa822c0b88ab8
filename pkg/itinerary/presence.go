package itinerary

import (
	"fmt"

	"github.com/travigo/dutyboard/pkg/clock"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"golang.org/x/exp/slices"
)

// Interval is a stretch of time the duty spends at one station, in duty timeline minutes
type Interval struct {
	Station string `groups:"basic"`

	Start int `groups:"detailed"`
	End   int `groups:"detailed"`

	StartTime   string `groups:"basic"`
	EndTime     string `groups:"basic"`
	StartReason string `groups:"basic"`
	EndReason   string `groups:"basic"`
}

func (i Interval) Minutes() int {
	return i.End - i.Start
}

func (b *Builder) IsKeyStation(station string) bool {
	return station != "" && slices.Contains(b.KeyStations, station)
}

// PresenceIntervals lists when the duty is standing at one of the key stations
func (b *Builder) PresenceIntervals(duty *ctdf.Duty, db *ctdf.Database) []Interval {
	start := clock.ToMinutes(duty.StartTime)
	end := start + duty.Minutes()

	var candidates []Interval

	runs := schedule(duty, db)
	if len(runs) == 0 {
		candidates = append(candidates, newInterval(duty.HomeStation, start, end, "Duty start", "Duty end"))
	} else {
		first := runs[0]
		if first.origin == duty.HomeStation {
			candidates = append(candidates, newInterval(duty.HomeStation, start, first.departure,
				"Duty start", fmt.Sprintf("Departure of %s", first.ref.Code)))
		}

		for index := 1; index < len(runs); index++ {
			previous, next := runs[index-1], runs[index]
			if previous.destination != "" && previous.destination == next.origin {
				candidates = append(candidates, newInterval(next.origin, previous.arrival, next.departure,
					fmt.Sprintf("Arrival of %s", previous.ref.Code), fmt.Sprintf("Departure of %s", next.ref.Code)))
			}
		}

		last := runs[len(runs)-1]
		if last.destination == duty.FinalStation() {
			candidates = append(candidates, newInterval(last.destination, last.arrival, end,
				fmt.Sprintf("Arrival of %s", last.ref.Code), "Duty end"))
		}
	}

	var intervals []Interval
	for _, interval := range candidates {
		if b.IsKeyStation(interval.Station) && interval.End > interval.Start {
			intervals = append(intervals, interval)
		}
	}

	return intervals
}

// LastRun is the run of the duty arriving last on its timeline
func LastRun(duty *ctdf.Duty, db *ctdf.Database) (ref ctdf.TrainRunRef, arrivalStation string, arrivalTime string, found bool) {
	runs := schedule(duty, db)
	if len(runs) == 0 {
		return ctdf.TrainRunRef{}, "", "", false
	}

	last := runs[0]
	for _, run := range runs[1:] {
		if run.arrival >= last.arrival {
			last = run
		}
	}

	return last.ref, last.destination, last.arrivalTime, true
}

func newInterval(station string, start int, end int, startReason string, endReason string) Interval {
	return Interval{
		Station:     station,
		Start:       start,
		End:         end,
		StartTime:   clock.ToTimeString(start),
		EndTime:     clock.ToTimeString(end),
		StartReason: startReason,
		EndReason:   endReason,
	}
}
