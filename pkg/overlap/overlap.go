package overlap

import (
	"fmt"

	"github.com/travigo/dutyboard/pkg/clock"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/dutyid"
	"github.com/travigo/dutyboard/pkg/itinerary"
	"github.com/travigo/dutyboard/pkg/query"
)

const DefaultReliefTolerance = 15

type Comparison struct {
	Status  query.Status `groups:"basic"`
	Message string       `groups:"basic" json:",omitempty"`

	First  Side `groups:"basic"`
	Second Side `groups:"basic"`

	Overlaps []Overlap `groups:"basic"`

	// Relief is set when both duties finish with a run into the same station close together
	Relief bool `groups:"basic"`
}

type Side struct {
	Query  string `groups:"basic"`
	DutyID string `groups:"basic" json:",omitempty"`
	Found  bool   `groups:"basic"`

	Intervals []itinerary.Interval `groups:"detailed"`

	LastRun            *ctdf.TrainRunRef `groups:"basic" json:",omitempty"`
	LastArrivalStation string            `groups:"basic" json:",omitempty"`
	LastArrivalTime    string            `groups:"basic" json:",omitempty"`
}

type Overlap struct {
	Station   string `groups:"basic"`
	Start     int    `groups:"detailed"`
	End       int    `groups:"detailed"`
	StartTime string `groups:"basic"`
	EndTime   string `groups:"basic"`
}

// Comparator finds where two duties stand at the same key station at the same time
type Comparator struct {
	Itineraries     *itinerary.Builder
	ReliefTolerance int
}

func NewComparator(itineraries *itinerary.Builder) *Comparator {
	if itineraries == nil {
		itineraries = itinerary.NewBuilder()
	}

	return &Comparator{
		Itineraries:     itineraries,
		ReliefTolerance: DefaultReliefTolerance,
	}
}

func (c *Comparator) Compare(db *ctdf.Database, first string, second string) Comparison {
	comparison := Comparison{
		First:  Side{Query: first},
		Second: Side{Query: second},
	}

	firstID := dutyid.PadNumeric(dutyid.Normalise(first))
	secondID := dutyid.PadNumeric(dutyid.Normalise(second))

	if firstID == "" || secondID == "" {
		comparison.Status = query.StatusInvalid
		comparison.Message = "two duties are needed"
		return comparison
	}

	firstDuty := c.resolve(db, firstID, &comparison.First)
	secondDuty := c.resolve(db, secondID, &comparison.Second)

	if firstID == secondID || comparison.First.DutyID == comparison.Second.DutyID {
		comparison.Status = query.StatusInvalid
		comparison.Message = "a duty cannot be compared with itself"
		return comparison
	}

	if firstDuty == nil || secondDuty == nil {
		comparison.Status = query.StatusNotFound
		comparison.Message = notFoundMessage(comparison.First, comparison.Second)
		return comparison
	}

	// Intervals sit on each duty's own timeline. When only one duty runs past midnight the
	// pair is also compared with the day duty moved one day later.
	offsets := []int{0}
	switch {
	case firstDuty.CrossesMidnight() && !secondDuty.CrossesMidnight():
		offsets = append(offsets, clock.MinutesPerDay)
	case !firstDuty.CrossesMidnight() && secondDuty.CrossesMidnight():
		offsets = append(offsets, -clock.MinutesPerDay)
	}

	for _, a := range comparison.First.Intervals {
		for _, b := range comparison.Second.Intervals {
			if a.Station != b.Station {
				continue
			}

			for _, offset := range offsets {
				start := max(a.Start, b.Start+offset)
				end := min(a.End, b.End+offset)
				if start >= end {
					continue
				}

				comparison.Overlaps = append(comparison.Overlaps, Overlap{
					Station:   a.Station,
					Start:     start,
					End:       end,
					StartTime: clock.ToTimeString(start),
					EndTime:   clock.ToTimeString(end),
				})
			}
		}
	}

	comparison.Relief = c.reliefPossible(comparison.First, comparison.Second)
	comparison.Status = query.StatusFound

	return comparison
}

func (c *Comparator) resolve(db *ctdf.Database, id string, side *Side) *ctdf.Duty {
	resolved := db.ResolveDutyID(id)
	side.DutyID = resolved

	duty, found := db.Duty(resolved)
	if !found {
		return nil
	}

	side.Found = true
	side.Intervals = c.Itineraries.PresenceIntervals(duty, db)

	if run, station, arrival, found := itinerary.LastRun(duty, db); found {
		side.LastRun = &run
		side.LastArrivalStation = station
		side.LastArrivalTime = arrival
	}

	return duty
}

// reliefPossible compares plain clock times of the final arrivals, not duty timelines
func (c *Comparator) reliefPossible(first Side, second Side) bool {
	if first.LastRun == nil || second.LastRun == nil {
		return false
	}
	if first.LastArrivalStation == "" || first.LastArrivalStation != second.LastArrivalStation {
		return false
	}

	difference := clock.ToMinutes(first.LastArrivalTime) - clock.ToMinutes(second.LastArrivalTime)
	if difference < 0 {
		difference = -difference
	}

	return difference <= c.ReliefTolerance
}

func notFoundMessage(first Side, second Side) string {
	switch {
	case !first.Found && !second.Found:
		return fmt.Sprintf("duties %s and %s not found", first.DutyID, second.DutyID)
	case !first.Found:
		return fmt.Sprintf("duty %s not found", first.DutyID)
	default:
		return fmt.Sprintf("duty %s not found", second.DutyID)
	}
}
