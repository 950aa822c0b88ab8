package ctdf

import (
	"github.com/travigo/dutyboard/pkg/clock"
)

type Duty struct {
	ID            string `groups:"basic"`
	Service       string `groups:"basic"`
	StartTime     string `groups:"basic"`
	EndTime       string `groups:"basic"`
	DurationLabel string `groups:"basic" json:",omitempty"`
	HomeStation   string `groups:"basic"`
	EndStation    string `groups:"basic" json:",omitempty"`

	Runs []TrainRunRef `groups:"detailed"`

	DataSource *DataSource `groups:"detailed" json:",omitempty"`
}

// TrainRunRef is a run as assigned to a duty in the duty schedule
type TrainRunRef struct {
	Code          string `groups:"basic"`
	DepartureTime string `groups:"basic"`
	ArrivalTime   string `groups:"basic"`
	Cycle         string `groups:"basic" json:",omitempty"`
	Note          string `groups:"basic" json:",omitempty"`
}

func (d *Duty) CrossesMidnight() bool {
	return clock.CrossesMidnight(d.StartTime, d.EndTime)
}

// Minutes is the length of the duty, rolling over midnight
func (d *Duty) Minutes() int {
	return clock.Duration(d.StartTime, d.EndTime)
}

// Timeline projects a clock time onto the duty's timeline, which continues past 24:00
// for duties that cross midnight
func (d *Duty) Timeline(time string) int {
	return clock.Rollover(clock.ToMinutes(time), clock.ToMinutes(d.StartTime), d.CrossesMidnight())
}

// FinalStation is where the duty signs off, the home station unless the schedule says otherwise
func (d *Duty) FinalStation() string {
	if d.EndStation != "" {
		return d.EndStation
	}
	return d.HomeStation
}

func (d *Duty) HasRun(code string) bool {
	_, found := d.Run(code)
	return found
}

func (d *Duty) Run(code string) (TrainRunRef, bool) {
	for _, run := range d.Runs {
		if run.Code == code {
			return run, true
		}
	}

	return TrainRunRef{}, false
}

func (d *Duty) InService(service string) bool {
	return service == "" || d.Service == service
}
