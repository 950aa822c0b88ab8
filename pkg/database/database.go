package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/dataimporter/datasets"
	"github.com/travigo/dutyboard/pkg/dataimporter/manager"
)

var ErrNotLoaded = errors.New("no schedule database loaded")

// Store holds the active schedule database. Readers take the current reference with Get
// and keep using it even if a reload swaps in a newer one meanwhile.
type Store struct {
	active atomic.Pointer[ctdf.Database]

	loader *manager.Loader

	reloadMutex sync.Mutex
	dataSets    []datasets.DataSet
}

func NewStore(loader *manager.Loader, dataSets []datasets.DataSet) *Store {
	if loader == nil {
		loader = &manager.Loader{}
	}

	return &Store{
		loader:   loader,
		dataSets: dataSets,
	}
}

// Get returns the active database or nil before the first successful load
func (s *Store) Get() *ctdf.Database {
	return s.active.Load()
}

func (s *Store) Loaded() bool {
	return s.active.Load() != nil
}

func (s *Store) Replace(db *ctdf.Database) {
	s.active.Store(db)
}

// Reload runs the import pipeline over the configured datasets and swaps the result in.
// On failure the previous database stays active.
func (s *Store) Reload(ctx context.Context) error {
	s.reloadMutex.Lock()
	defer s.reloadMutex.Unlock()

	db, err := s.loader.Load(ctx, s.dataSets)
	if err != nil {
		log.Error().Err(err).Bool("previous", s.Loaded()).Msg("Failed to load schedule database")
		return err
	}

	s.Replace(db)

	return nil
}
