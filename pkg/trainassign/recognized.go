package trainassign

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// Pair is a cycle read off a rotation board next to the three digit code of its train
type Pair struct {
	Cycle string `json:"cycle"`
	Code  string `json:"code"`
}

type ApplyReport struct {
	Added       int `groups:"basic"`
	Overwritten int `groups:"basic"`
	Unchanged   int `groups:"basic"`
	Discarded   int `groups:"basic"`
	Conflicting int `groups:"basic"`
}

// ApplyRecognized upserts the recognised pairs. Pairs with an unknown cycle or an
// undecodable train code are discarded, ones clashing with another cycle are skipped.
func (a *Assignments) ApplyRecognized(pairs []Pair, knownCycle func(string) bool) ApplyReport {
	var report ApplyReport

	a.mutex.Lock()
	defer a.mutex.Unlock()

	for _, pair := range pairs {
		train, ok := DecodeTrainCode(pair.Code)
		if !ok || !knownCycle(pair.Cycle) {
			report.Discarded++
			continue
		}

		existing, exists := a.byCycle[pair.Cycle]
		if exists && existing == train {
			report.Unchanged++
			continue
		}

		err := a.assign(pair.Cycle, train)

		var conflict *ConflictError
		if errors.As(err, &conflict) {
			log.Debug().Str("cycle", pair.Cycle).Str("train", train).Str("holder", conflict.Cycle).Msg("Skipping conflicting recognised pair")
			report.Conflicting++
			continue
		}

		if exists {
			report.Overwritten++
		} else {
			report.Added++
		}
	}

	return report
}
