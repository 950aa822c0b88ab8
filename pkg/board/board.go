package board

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/config"
	"github.com/travigo/dutyboard/pkg/database"
	"github.com/travigo/dutyboard/pkg/itinerary"
	"github.com/travigo/dutyboard/pkg/overlap"
	"github.com/travigo/dutyboard/pkg/query"
	"github.com/travigo/dutyboard/pkg/recognition"
	"github.com/travigo/dutyboard/pkg/trainassign"
)

// Board is one working session: the loaded schedule plus the train assignments made on top of it
type Board struct {
	Config *config.Config

	Store       *database.Store
	Assignments *trainassign.Assignments

	Itineraries *itinerary.Builder
	Comparator  *overlap.Comparator
	Recognizer  recognition.Recognizer
}

// Open reads the configuration and wires the session together without loading any data
func Open(configPath string) (*Board, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	return New(cfg)
}

func New(cfg *config.Config) (*Board, error) {
	dataSets, err := cfg.DataSets()
	if err != nil {
		return nil, err
	}

	itineraries := cfg.ItineraryBuilder()

	log.Debug().Int("datasets", len(dataSets)).Strs("key_stations", cfg.KeyStations).Msg("Board configured")

	return &Board{
		Config:      cfg,
		Store:       database.NewStore(cfg.Loader(), dataSets),
		Assignments: trainassign.NewAssignments(),
		Itineraries: itineraries,
		Comparator:  cfg.Comparator(itineraries),
		Recognizer:  cfg.Recognizer(),
	}, nil
}

func (b *Board) Load(ctx context.Context) error {
	return b.Store.Reload(ctx)
}

// Engine queries the database active right now
func (b *Board) Engine() (*query.Engine, error) {
	db := b.Store.Get()
	if db == nil {
		return nil, database.ErrNotLoaded
	}

	return query.NewEngine(db, b.Itineraries, b.Assignments), nil
}

func (b *Board) Compare(first string, second string) (overlap.Comparison, error) {
	db := b.Store.Get()
	if db == nil {
		return overlap.Comparison{}, database.ErrNotLoaded
	}

	return b.Comparator.Compare(db, first, second), nil
}

// ApplyRecognized runs the image through the recognizer and merges the pairs for known cycles
func (b *Board) ApplyRecognized(ctx context.Context, image []byte, filename string) (trainassign.ApplyReport, error) {
	db := b.Store.Get()
	if db == nil {
		return trainassign.ApplyReport{}, database.ErrNotLoaded
	}

	pairs, err := b.Recognizer.Recognize(ctx, image, filename)
	if err != nil {
		return trainassign.ApplyReport{}, err
	}

	report := b.Assignments.ApplyRecognized(pairs, db.HasCycle)

	log.Info().
		Int("added", report.Added).
		Int("overwritten", report.Overwritten).
		Int("discarded", report.Discarded).
		Int("conflicting", report.Conflicting).
		Msg("Applied recognised train assignments")

	return report, nil
}
