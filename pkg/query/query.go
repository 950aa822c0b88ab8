package query

import (
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/itinerary"
)

type Status string

const (
	StatusFound         Status = "found"
	StatusNotFound      Status = "not-found"
	StatusWrongService  Status = "wrong-service"
	StatusRunUnknown    Status = "run-unknown"
	StatusRunUnassigned Status = "run-unassigned"
	StatusInvalid       Status = "invalid"
)

const MaxCrewSuggestions = 10

// TrainLookup finds the train currently running a cycle
type TrainLookup interface {
	TrainFor(cycle string) (string, bool)
}

// Engine answers lookups against one loaded database. Results never share memory with it.
type Engine struct {
	db          *ctdf.Database
	itineraries *itinerary.Builder
	trains      TrainLookup
}

func NewEngine(db *ctdf.Database, itineraries *itinerary.Builder, trains TrainLookup) *Engine {
	if itineraries == nil {
		itineraries = itinerary.NewBuilder()
	}

	return &Engine{
		db:          db,
		itineraries: itineraries,
		trains:      trains,
	}
}

func (e *Engine) Database() *ctdf.Database {
	return e.db
}

func (e *Engine) trainFor(cycle string) string {
	if e.trains == nil || cycle == "" {
		return ""
	}

	train, _ := e.trains.TrainFor(cycle)
	return train
}

// clone deep copies a database record
func clone[T any](source *T) *T {
	if source == nil {
		return nil
	}

	var copied T
	if err := copier.CopyWithOption(&copied, source, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Msg("Failed to copy record")
		copied = *source
	}

	return &copied
}
