package query

import (
	"fmt"

	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/dutyid"
	"github.com/travigo/dutyboard/pkg/itinerary"
	"github.com/travigo/dutyboard/pkg/trainassign"
)

type DutyResult struct {
	Status  Status `groups:"basic"`
	Message string `groups:"basic" json:",omitempty"`
	Query   string `groups:"basic"`

	// Service the duty actually belongs to when it is outside the filter
	Service string `groups:"basic" json:",omitempty"`

	Duty *DutyView `groups:"basic" json:",omitempty"`
}

type DutyView struct {
	Duty *ctdf.Duty `groups:"basic"`

	Runs []RunView  `groups:"basic"`
	Crew []CrewView `groups:"basic"`

	Itinerary *itinerary.Itinerary `groups:"detailed"`
	Intervals []itinerary.Interval `groups:"detailed"`

	Minutes int `groups:"basic"`
}

type RunView struct {
	Run         ctdf.TrainRunRef  `groups:"basic"`
	Circulation *ctdf.Circulation `groups:"detailed" json:",omitempty"`

	Origin      string `groups:"basic" json:",omitempty"`
	Destination string `groups:"basic" json:",omitempty"`

	Train string `groups:"basic" json:",omitempty"`
	Phone string `groups:"basic" json:",omitempty"`
}

type CrewView struct {
	Member    ctdf.CrewMember      `groups:"basic"`
	Phonebook *ctdf.PhonebookEntry `groups:"basic" json:",omitempty"`
}

// ByDuty looks a duty up by any of the identifier shapes a user may type
func (e *Engine) ByDuty(input string, service string) DutyResult {
	result := DutyResult{Query: input}

	if dutyid.Normalise(input) == "" {
		result.Status = StatusInvalid
		result.Message = "no duty given"
		return result
	}

	duty := e.findDuty(input, service)
	if duty == nil && service != "" {
		duty = e.findDuty(input, "")
	}

	switch {
	case duty == nil:
		result.Status = StatusNotFound
		result.Message = fmt.Sprintf("duty %s not found", dutyid.Normalise(input))
	case !duty.InService(service):
		result.Status = StatusWrongService
		result.Service = duty.Service
		result.Message = fmt.Sprintf("duty %s belongs to service %s", duty.ID, duty.Service)
	default:
		result.Status = StatusFound
		result.Duty = e.View(duty)
	}

	return result
}

func (e *Engine) findDuty(input string, service string) *ctdf.Duty {
	for _, candidate := range dutyid.Candidates(input, service) {
		if duty, found := e.db.Duty(e.db.ResolveDutyID(candidate)); found {
			return duty
		}
	}

	return nil
}

// View assembles everything known about a duty
func (e *Engine) View(duty *ctdf.Duty) *DutyView {
	duty = clone(duty)

	view := &DutyView{
		Duty:      duty,
		Itinerary: e.itineraries.Build(duty, e.db),
		Intervals: e.itineraries.PresenceIntervals(duty, e.db),
		Minutes:   duty.Minutes(),
	}

	for index, item := range view.Itinerary.Items {
		if item.Circulation != nil {
			view.Itinerary.Items[index].Circulation = clone(item.Circulation)
		}

		if item.Type != itinerary.ItemTypeRun {
			continue
		}

		run := RunView{
			Run:         *item.Run,
			Circulation: view.Itinerary.Items[index].Circulation,
			Origin:      item.Origin,
			Destination: item.Destination,
			Train:       e.trainFor(item.Run.Cycle),
		}
		run.Phone, _ = trainassign.PhoneExtension(run.Train)

		view.Runs = append(view.Runs, run)
	}

	for _, member := range e.db.Crew(duty.ID) {
		crew := CrewView{Member: member}
		if entry, found := e.db.PhonebookEntry(member.Payroll); found {
			crew.Phonebook = clone(entry)
		}

		view.Crew = append(view.Crew, crew)
	}

	return view
}
