package timetable

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats/delimited"
)

var RequiredColumns = []string{"train", "origin", "departure_time", "destination", "arrival_time"}

// Timetable is one per-service timetable file: a run per row followed by as many
// station_N/time_N column pairs as the export needs
type Timetable struct {
	Comma   rune
	Service string

	Circulations []ctdf.Circulation
	Skipped      int
}

func (t *Timetable) ParseFile(reader io.Reader) error {
	comma := t.Comma
	if comma == 0 {
		comma = delimited.DefaultComma
	}

	rows := delimited.NewReader(reader, comma).Require(RequiredColumns...)

	for {
		record, err := rows.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		code := record["train"]
		if code == "" {
			log.Debug().Int("line", rows.Line()).Msg("Skipping timetable row without train")
			t.Skipped++
			continue
		}

		circulation := ctdf.Circulation{
			Code:          code,
			Line:          record["line"],
			Origin:        record["origin"],
			DepartureTime: record["departure_time"],
			Destination:   record["destination"],
			ArrivalTime:   record["arrival_time"],
			DataSource:    &ctdf.DataSource{Line: rows.Line()},
		}

		for index := 1; ; index++ {
			station, exists := record.Lookup(fmt.Sprintf("station_%d", index))
			if !exists {
				break
			}
			if station == "" {
				continue
			}

			circulation.Intermediate = append(circulation.Intermediate, ctdf.StationPass{
				Station: station,
				Time:    record[fmt.Sprintf("time_%d", index)],
			})
		}

		t.Circulations = append(t.Circulations, circulation)
	}

	t.Skipped += rows.Skipped()

	return nil
}

func (t *Timetable) Import(builder *ctdf.DatabaseBuilder, datasource *ctdf.DataSource) error {
	duplicates := 0

	for _, circulation := range t.Circulations {
		if circulation.DataSource != nil {
			source := *datasource
			source.Line = circulation.DataSource.Line
			circulation.DataSource = &source
		}

		if !builder.AddCirculation(circulation) {
			log.Debug().Str("train", circulation.Code).Str("dataset", datasource.Dataset).Msg("Train already defined by an earlier timetable")
			duplicates++
		}
	}

	log.Info().
		Str("dataset", datasource.Dataset).
		Str("service", t.Service).
		Int("trains", len(t.Circulations)).
		Int("duplicates", duplicates).
		Int("skipped", t.Skipped).
		Msg("Imported timetable")

	return nil
}
