package trainassign

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/slices"
)

var ErrEmptyAssignment = errors.New("cycle and train must both be given")

// ConflictError is returned when the train already runs another cycle
type ConflictError struct {
	Train string
	Cycle string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("train %s is already assigned to cycle %s", e.Train, e.Cycle)
}

type Assignment struct {
	Cycle string `groups:"basic"`
	Train string `groups:"basic"`
	Phone string `groups:"basic" json:",omitempty"`
}

// Assignments maps cycles to the physical train running them. A train runs at most one cycle.
type Assignments struct {
	mutex   sync.RWMutex
	byCycle map[string]string
}

func NewAssignments() *Assignments {
	return &Assignments{
		byCycle: map[string]string{},
	}
}

// Assign sets or overwrites the train of a cycle
func (a *Assignments) Assign(cycle string, train string) error {
	cycle = strings.TrimSpace(cycle)
	train = strings.TrimSpace(train)
	if cycle == "" || train == "" {
		return ErrEmptyAssignment
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()

	return a.assign(cycle, train)
}

func (a *Assignments) assign(cycle string, train string) error {
	for existingCycle, existingTrain := range a.byCycle {
		if existingTrain == train && existingCycle != cycle {
			return &ConflictError{Train: train, Cycle: existingCycle}
		}
	}

	a.byCycle[cycle] = train

	return nil
}

func (a *Assignments) Remove(cycle string) bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	_, exists := a.byCycle[cycle]
	delete(a.byCycle, cycle)

	return exists
}

func (a *Assignments) TrainFor(cycle string) (string, bool) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	train, exists := a.byCycle[cycle]
	return train, exists
}

func (a *Assignments) CycleFor(train string) (string, bool) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	for cycle, assigned := range a.byCycle {
		if assigned == train {
			return cycle, true
		}
	}

	return "", false
}

// Lookup returns the assignment of a cycle together with the train phone extension
func (a *Assignments) Lookup(cycle string) (Assignment, bool) {
	train, exists := a.TrainFor(cycle)
	if !exists {
		return Assignment{}, false
	}

	phone, _ := PhoneExtension(train)

	return Assignment{Cycle: cycle, Train: train, Phone: phone}, true
}

// Snapshot lists every assignment ordered by cycle
func (a *Assignments) Snapshot() []Assignment {
	a.mutex.RLock()
	assignments := make([]Assignment, 0, len(a.byCycle))
	for cycle, train := range a.byCycle {
		phone, _ := PhoneExtension(train)
		assignments = append(assignments, Assignment{Cycle: cycle, Train: train, Phone: phone})
	}
	a.mutex.RUnlock()

	slices.SortFunc(assignments, func(x, y Assignment) int {
		return strings.Compare(x.Cycle, y.Cycle)
	})

	return assignments
}
