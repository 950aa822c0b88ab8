package crewroster

import (
	"io"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats/delimited"
	"github.com/travigo/dutyboard/pkg/dutyid"
)

// Entry is a crew assignment as printed in a roster, before the duty is resolved
type Entry struct {
	DutyID      string `csv:"duty_id"`
	Name        string `csv:"name"`
	Payroll     string `csv:"payroll"`
	Observation string `csv:"observation"`
}

var RequiredColumns = []string{"duty_id", "name", "payroll"}

// Roster is the delimited text crew roster
type Roster struct {
	Comma rune

	Entries []*Entry
}

func (r *Roster) ParseFile(reader io.Reader) error {
	comma := r.Comma
	if comma == 0 {
		comma = delimited.DefaultComma
	}

	_, err := delimited.Unmarshal(reader, comma, &r.Entries, RequiredColumns...)
	return err
}

func (r *Roster) Import(builder *ctdf.DatabaseBuilder, datasource *ctdf.DataSource) error {
	importEntries(builder, datasource, r.Entries)
	return nil
}

// importEntries resolves each roster duty identifier against the duties already loaded and
// appends the crew member. Both roster variants go through here.
func importEntries(builder *ctdf.DatabaseBuilder, datasource *ctdf.DataSource, entries []*Entry) {
	skipped := 0
	unresolved := 0

	for _, entry := range entries {
		id := dutyid.PadNumeric(dutyid.Normalise(entry.DutyID))
		if id == "" || (entry.Name == "" && entry.Payroll == "") {
			skipped++
			continue
		}

		resolved := dutyid.Resolve(id, builder.HasDuty)
		if !builder.HasDuty(resolved) {
			log.Debug().Str("duty", id).Str("dataset", datasource.Dataset).Msg("Roster duty not in schedule")
			unresolved++
		}

		builder.AddCrewMember(resolved, ctdf.CrewMember{
			Name:        entry.Name,
			Payroll:     entry.Payroll,
			Observation: entry.Observation,
		})
	}

	log.Info().
		Str("dataset", datasource.Dataset).
		Int("entries", len(entries)).
		Int("skipped", skipped).
		Int("unresolved", unresolved).
		Msg("Imported crew roster")
}
