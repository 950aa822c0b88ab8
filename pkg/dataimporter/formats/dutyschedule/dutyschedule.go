package dutyschedule

import (
	"io"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats/delimited"
	"github.com/travigo/dutyboard/pkg/dutyid"
)

// Row is one (duty, assigned run) pair of the duty schedule export
type Row struct {
	DutyID      string `csv:"duty_id"`
	Service     string `csv:"service"`
	StartTime   string `csv:"start_time"`
	EndTime     string `csv:"end_time"`
	Duration    string `csv:"duration"`
	HomeStation string `csv:"home_station"`
	EndStation  string `csv:"end_station"`

	Train         string `csv:"train"`
	DepartureTime string `csv:"departure_time"`
	ArrivalTime   string `csv:"arrival_time"`
	Cycle         string `csv:"cycle"`
	Note          string `csv:"note"`
}

var RequiredColumns = []string{"duty_id", "service", "start_time", "end_time", "home_station"}

type Schedule struct {
	Comma rune

	Rows []*Row

	lines []int
}

func (s *Schedule) ParseFile(reader io.Reader) error {
	comma := s.Comma
	if comma == 0 {
		comma = delimited.DefaultComma
	}

	lines, err := delimited.Unmarshal(reader, comma, &s.Rows, RequiredColumns...)
	s.lines = lines
	return err
}

func (s *Schedule) Import(builder *ctdf.DatabaseBuilder, datasource *ctdf.DataSource) error {
	skipped := 0

	for index, row := range s.Rows {
		id := dutyid.PadNumeric(dutyid.Normalise(row.DutyID))
		if id == "" {
			log.Debug().Int("row", index+1).Msg("Skipping schedule row without duty")
			skipped++
			continue
		}

		source := *datasource
		if index < len(s.lines) {
			source.Line = s.lines[index]
		}

		builder.AddDuty(ctdf.Duty{
			ID:            id,
			Service:       row.Service,
			StartTime:     row.StartTime,
			EndTime:       row.EndTime,
			DurationLabel: row.Duration,
			HomeStation:   row.HomeStation,
			EndStation:    row.EndStation,
			DataSource:    &source,
		})

		builder.AddCycle(row.Cycle)

		if row.Train == "" {
			continue
		}

		builder.AppendRun(id, ctdf.TrainRunRef{
			Code:          row.Train,
			DepartureTime: row.DepartureTime,
			ArrivalTime:   row.ArrivalTime,
			Cycle:         row.Cycle,
			Note:          row.Note,
		})
	}

	log.Info().
		Str("dataset", datasource.Dataset).
		Int("rows", len(s.Rows)).
		Int("skipped", skipped).
		Msg("Imported duty schedule")

	return nil
}
