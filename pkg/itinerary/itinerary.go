package itinerary

import (
	"github.com/travigo/dutyboard/pkg/clock"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"golang.org/x/exp/slices"
)

const DefaultRestThreshold = 15

var DefaultKeyStations = []string{"PC", "SR", "RE", "TB", "SC", "RB", "TR", "NA"}

type ItemType string

const (
	ItemTypeRun        ItemType = "Run"
	ItemTypeRest       ItemType = "Rest"
	ItemTypeChangeover ItemType = "Changeover"
)

// Item is either a run or the gap around one. Start and End are minutes on the duty timeline.
type Item struct {
	Type ItemType `groups:"basic"`

	Run         *ctdf.TrainRunRef `groups:"basic" json:",omitempty"`
	Circulation *ctdf.Circulation `groups:"detailed" json:",omitempty"`

	Origin      string `groups:"basic" json:",omitempty"`
	Destination string `groups:"basic" json:",omitempty"`

	StartTime string `groups:"basic"`
	EndTime   string `groups:"basic"`
	Start     int    `groups:"detailed"`
	End       int    `groups:"detailed"`
	Minutes   int    `groups:"basic"`
}

type Itinerary struct {
	DutyID string `groups:"basic"`
	Items  []Item `groups:"basic"`

	origin          int
	crossesMidnight bool
}

// ActiveAt gives the index of the item running at the clock time, or -1
func (i *Itinerary) ActiveAt(time string) int {
	position := clock.Rollover(clock.ToMinutes(time), i.origin, i.crossesMidnight)

	for index, item := range i.Items {
		if position >= item.Start && position < item.End {
			return index
		}
	}

	return -1
}

// Builder reconstructs itineraries and presence intervals of duties
type Builder struct {
	RestThreshold int
	KeyStations   []string
}

func NewBuilder() *Builder {
	return &Builder{
		RestThreshold: DefaultRestThreshold,
		KeyStations:   slices.Clone(DefaultKeyStations),
	}
}

// scheduledRun is a run placed on the duty timeline
type scheduledRun struct {
	ref         ctdf.TrainRunRef
	circulation *ctdf.Circulation

	origin      string
	destination string

	departureTime string
	arrivalTime   string
	departure     int
	arrival       int
}

// schedule sorts the runs of the duty by departure on the duty timeline.
// Times come from the duty schedule, falling back to the timetable when left blank.
func schedule(duty *ctdf.Duty, db *ctdf.Database) []scheduledRun {
	runs := make([]scheduledRun, 0, len(duty.Runs))

	for _, ref := range duty.Runs {
		run := scheduledRun{
			ref:           ref,
			departureTime: ref.DepartureTime,
			arrivalTime:   ref.ArrivalTime,
		}

		if db != nil {
			if circulation, found := db.Circulation(ref.Code); found {
				run.circulation = circulation
				run.origin = circulation.Origin
				run.destination = circulation.Destination

				if run.departureTime == "" {
					run.departureTime = circulation.DepartureTime
				}
				if run.arrivalTime == "" {
					run.arrivalTime = circulation.ArrivalTime
				}
			}
		}

		// Runs without any times, such as transfers, are placed at the start of the duty
		if run.departureTime == "" {
			run.departureTime = duty.StartTime
		}
		if run.arrivalTime == "" {
			run.arrivalTime = run.departureTime
		}

		run.departure = duty.Timeline(run.departureTime)
		run.arrival = duty.Timeline(run.arrivalTime)
		if run.arrival < run.departure {
			run.arrival += clock.MinutesPerDay
		}

		runs = append(runs, run)
	}

	slices.SortStableFunc(runs, func(a, b scheduledRun) int {
		return a.departure - b.departure
	})

	return runs
}

// Build lays out the runs of the duty chronologically with the gaps before, between and after them
func (b *Builder) Build(duty *ctdf.Duty, db *ctdf.Database) *Itinerary {
	itinerary := &Itinerary{
		DutyID:          duty.ID,
		origin:          clock.ToMinutes(duty.StartTime),
		crossesMidnight: duty.CrossesMidnight(),
	}

	cursor := itinerary.origin
	cursorStation := duty.HomeStation

	for _, run := range schedule(duty, db) {
		if gap := b.gap(cursor, run.departure, cursorStation); gap != nil {
			itinerary.Items = append(itinerary.Items, *gap)
		}

		ref := run.ref
		itinerary.Items = append(itinerary.Items, Item{
			Type:        ItemTypeRun,
			Run:         &ref,
			Circulation: run.circulation,
			Origin:      run.origin,
			Destination: run.destination,
			StartTime:   clock.ToTimeString(run.departure),
			EndTime:     clock.ToTimeString(run.arrival),
			Start:       run.departure,
			End:         run.arrival,
			Minutes:     run.arrival - run.departure,
		})

		if run.arrival > cursor {
			cursor = run.arrival
		}
		if run.destination != "" {
			cursorStation = run.destination
		}
	}

	end := itinerary.origin + duty.Minutes()
	if gap := b.gap(cursor, end, cursorStation); gap != nil {
		itinerary.Items = append(itinerary.Items, *gap)
	}

	return itinerary
}

func (b *Builder) gap(start int, end int, station string) *Item {
	if end <= start {
		return nil
	}

	gapType := ItemTypeChangeover
	if end-start >= b.RestThreshold {
		gapType = ItemTypeRest
	}

	return &Item{
		Type:        gapType,
		Origin:      station,
		Destination: station,
		StartTime:   clock.ToTimeString(start),
		EndTime:     clock.ToTimeString(end),
		Start:       start,
		End:         end,
		Minutes:     end - start,
	}
}
