package query

import (
	"fmt"
	"strings"

	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/trainassign"
	"golang.org/x/exp/slices"
)

type CycleResult struct {
	Status  Status `groups:"basic"`
	Message string `groups:"basic" json:",omitempty"`
	Cycle   string `groups:"basic"`

	Train string `groups:"basic" json:",omitempty"`
	Phone string `groups:"basic" json:",omitempty"`

	Runs []CycleRun `groups:"basic"`
}

type CycleRun struct {
	DutyID      string            `groups:"basic"`
	Run         ctdf.TrainRunRef  `groups:"basic"`
	Circulation *ctdf.Circulation `groups:"basic" json:",omitempty"`

	departureTime string
}

// ByCycle lists every run of the cycle in departure order
func (e *Engine) ByCycle(cycle string, service string) CycleResult {
	cycle = strings.TrimSpace(cycle)
	result := CycleResult{Cycle: cycle}

	if cycle == "" {
		result.Status = StatusInvalid
		result.Message = "no cycle given"
		return result
	}

	for _, duty := range e.db.DutiesInService(service) {
		for _, run := range duty.Runs {
			if run.Cycle != cycle {
				continue
			}

			cycleRun := CycleRun{
				DutyID:        duty.ID,
				Run:           run,
				departureTime: run.DepartureTime,
			}
			if circulation, found := e.db.Circulation(run.Code); found {
				cycleRun.Circulation = clone(circulation)
				if cycleRun.departureTime == "" {
					cycleRun.departureTime = circulation.DepartureTime
				}
			}

			result.Runs = append(result.Runs, cycleRun)
		}
	}

	if len(result.Runs) == 0 {
		result.Status = StatusNotFound
		if e.db.HasCycle(cycle) {
			result.Message = fmt.Sprintf("cycle %s has no runs in the selected service", cycle)
		} else {
			result.Message = fmt.Sprintf("cycle %s not found", cycle)
		}
		return result
	}

	slices.SortStableFunc(result.Runs, func(a, b CycleRun) int {
		return strings.Compare(a.departureTime, b.departureTime)
	})

	result.Status = StatusFound
	result.Train = e.trainFor(cycle)
	result.Phone, _ = trainassign.PhoneExtension(result.Train)

	return result
}
