package query

import (
	"fmt"
	"strings"

	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/trainassign"
)

type RunResult struct {
	Status  Status `groups:"basic"`
	Message string `groups:"basic" json:",omitempty"`
	Code    string `groups:"basic"`

	Circulation *ctdf.Circulation  `groups:"basic" json:",omitempty"`
	Stops       []ctdf.StationPass `groups:"basic"`

	DutyID string            `groups:"basic" json:",omitempty"`
	Run    *ctdf.TrainRunRef `groups:"basic" json:",omitempty"`
	Cycle  string            `groups:"basic" json:",omitempty"`

	Train string `groups:"basic" json:",omitempty"`
	Phone string `groups:"basic" json:",omitempty"`
}

// ByRun finds a train run and the duty working it
func (e *Engine) ByRun(code string, service string) RunResult {
	code = strings.TrimSpace(code)
	result := RunResult{Code: code}

	if code == "" {
		result.Status = StatusInvalid
		result.Message = "no train given"
		return result
	}

	circulation, known := e.db.Circulation(code)
	if known {
		result.Circulation = clone(circulation)
		result.Stops = circulation.Stops()
	}

	var carrier *ctdf.Duty
	var carriedElsewhere bool
	for _, duty := range e.db.Duties() {
		if !duty.HasRun(code) {
			continue
		}
		if duty.InService(service) {
			carrier = duty
			break
		}
		carriedElsewhere = true
	}

	if carrier == nil {
		if !known && !carriedElsewhere {
			result.Status = StatusRunUnknown
			result.Message = fmt.Sprintf("train %s not found", code)
		} else {
			result.Status = StatusRunUnassigned
			result.Message = fmt.Sprintf("train %s is not worked by any duty of the selected service", code)
		}
		return result
	}

	run, _ := carrier.Run(code)

	result.Status = StatusFound
	if !known {
		result.Message = fmt.Sprintf("train %s has no timetable entry", code)
	}
	result.DutyID = carrier.ID
	result.Run = &run
	result.Cycle = run.Cycle
	result.Train = e.trainFor(run.Cycle)
	result.Phone, _ = trainassign.PhoneExtension(result.Train)

	return result
}
