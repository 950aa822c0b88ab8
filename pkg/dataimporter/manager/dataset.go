package manager

import (
	"fmt"

	"github.com/travigo/dutyboard/pkg/dataimporter/datasets"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats/crewroster"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats/delimited"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats/directory"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats/dutyschedule"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats/timetable"
)

func (l *Loader) formatFor(dataset datasets.DataSet) (formats.Format, error) {
	comma := delimited.ParseComma(dataset.Delimiter)

	switch dataset.ResolvedFormat() {
	case datasets.DataSetFormatSchedule:
		return &dutyschedule.Schedule{Comma: comma}, nil
	case datasets.DataSetFormatTimetable:
		return &timetable.Timetable{Comma: comma, Service: dataset.Service}, nil
	case datasets.DataSetFormatCrewRoster:
		return &crewroster.Roster{Comma: comma}, nil
	case datasets.DataSetFormatCrewRosterPDF:
		return &crewroster.PositionalRoster{Keywords: l.ObservationKeywords, Tolerance: l.LineTolerance}, nil
	case datasets.DataSetFormatDirectory:
		return &directory.Directory{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", dataset.Format)
	}
}
