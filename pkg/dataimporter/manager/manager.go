package manager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/dataimporter/datasets"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats"
)

var (
	ErrMissingSource   = errors.New("missing required source")
	ErrInvalidManifest = errors.New("invalid dataset manifest")
)

// LoadError names the dataset that made a load fail
type LoadError struct {
	Dataset string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("dataset %s: %s", e.Dataset, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader runs the import pipeline. The schedule goes first as the crew rosters resolve
// their duty identifiers against it, timetables are decoded concurrently, the directory last.
type Loader struct {
	ObservationKeywords []string
	LineTolerance       float64

	MaxConcurrentDecodes int
}

type parsedDataSet struct {
	index   int
	dataset datasets.DataSet
	format  formats.Format
}

// Load builds a new database from dataSets. Nothing is returned but the error when any
// dataset cannot be read, so a failed load never yields a partial database.
func (l *Loader) Load(ctx context.Context, dataSets []datasets.DataSet) (*ctdf.Database, error) {
	startTime := time.Now()

	if err := validateIdentifiers(dataSets); err != nil {
		return nil, err
	}

	var schedules, timetables, rosters, directories []datasets.DataSet
	for _, dataset := range dataSets {
		switch dataset.ResolvedFormat() {
		case datasets.DataSetFormatSchedule:
			schedules = append(schedules, dataset)
		case datasets.DataSetFormatTimetable:
			timetables = append(timetables, dataset)
		case datasets.DataSetFormatCrewRoster, datasets.DataSetFormatCrewRosterPDF:
			rosters = append(rosters, dataset)
		case datasets.DataSetFormatDirectory:
			directories = append(directories, dataset)
		default:
			return nil, &LoadError{Dataset: dataset.Identifier, Err: fmt.Errorf("unsupported format %q", dataset.Format)}
		}
	}

	if len(schedules) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one schedule, got %d", ErrMissingSource, len(schedules))
	}
	if len(timetables) == 0 {
		return nil, fmt.Errorf("%w: at least one timetable is needed", ErrMissingSource)
	}

	builder := ctdf.NewDatabaseBuilder()

	schedule, err := l.parse(schedules[0])
	if err != nil {
		return nil, err
	}
	if err := l.importInto(builder, schedule); err != nil {
		return nil, err
	}

	parsedTimetables, err := l.parseConcurrently(ctx, timetables)
	if err != nil {
		return nil, err
	}
	for _, timetable := range parsedTimetables {
		if err := l.importInto(builder, timetable); err != nil {
			return nil, err
		}
	}

	for _, dataset := range append(rosters, directories...) {
		parsed, err := l.parse(dataset)
		if err != nil {
			return nil, err
		}
		if err := l.importInto(builder, parsed); err != nil {
			return nil, err
		}
	}

	db := builder.Build()

	stats := db.Stats()
	log.Info().
		Int("duties", stats.Duties).
		Int("trains", stats.Circulations).
		Int("crew", stats.CrewMembers).
		Int("phonebook", stats.Phonebook).
		Int("cycles", stats.Cycles).
		Int("stations", stats.Stations).
		Str("took", time.Since(startTime).String()).
		Msg("Loaded schedule database")

	return db, nil
}

// parseConcurrently decodes every dataset at once and waits for all of them.
// Results keep the order of dataSets so the first timetable still wins duplicate trains.
func (l *Loader) parseConcurrently(ctx context.Context, dataSets []datasets.DataSet) ([]parsedDataSet, error) {
	p := pool.NewWithResults[parsedDataSet]().WithContext(ctx).WithFirstError()
	if l.MaxConcurrentDecodes > 0 {
		p = p.WithMaxGoroutines(l.MaxConcurrentDecodes)
	}

	for index, dataset := range dataSets {
		p.Go(func(ctx context.Context) (parsedDataSet, error) {
			parsed, err := l.parse(dataset)
			parsed.index = index
			return parsed, err
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	ordered := make([]parsedDataSet, len(dataSets))
	for _, result := range results {
		ordered[result.index] = result
	}

	return ordered, nil
}

func (l *Loader) parse(dataset datasets.DataSet) (parsedDataSet, error) {
	format, err := l.formatFor(dataset)
	if err != nil {
		return parsedDataSet{}, &LoadError{Dataset: dataset.Identifier, Err: err}
	}

	body, err := readSource(dataset)
	if err != nil {
		return parsedDataSet{}, &LoadError{Dataset: dataset.Identifier, Err: err}
	}

	log.Debug().Str("dataset", dataset.Identifier).Str("provider", dataset.Provider.Name).Str("file", dataset.Source).Msg("Parsing file")

	if err := format.ParseFile(bytes.NewReader(body)); err != nil {
		return parsedDataSet{}, &LoadError{Dataset: dataset.Identifier, Err: err}
	}

	return parsedDataSet{dataset: dataset, format: format}, nil
}

func (l *Loader) importInto(builder *ctdf.DatabaseBuilder, parsed parsedDataSet) error {
	datasource := &ctdf.DataSource{
		OriginalFormat: string(parsed.dataset.ResolvedFormat()),
		Dataset:        parsed.dataset.Identifier,
	}

	if err := parsed.format.Import(builder, datasource); err != nil {
		return &LoadError{Dataset: parsed.dataset.Identifier, Err: err}
	}

	return nil
}

// Check parses a single dataset without building a database
func (l *Loader) Check(dataset datasets.DataSet) error {
	_, err := l.parse(dataset)
	return err
}

// validateIdentifiers rejects manifests where a dataset could not be named in an error or
// would be confused with another one
func validateIdentifiers(dataSets []datasets.DataSet) error {
	seen := map[string]bool{}

	for _, dataset := range dataSets {
		if dataset.Identifier == "" {
			return fmt.Errorf("%w: dataset %s has no identifier", ErrInvalidManifest, dataset.Source)
		}
		if seen[dataset.Identifier] {
			return &LoadError{Dataset: dataset.Identifier, Err: fmt.Errorf("%w: identifier used more than once", ErrInvalidManifest)}
		}
		seen[dataset.Identifier] = true
	}

	return nil
}
