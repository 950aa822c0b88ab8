package datasets

import (
	"path/filepath"
	"strings"
)

type DataSet struct {
	Identifier string        `yaml:"identifier"`
	Format     DataSetFormat `yaml:"format"`

	Provider Provider `yaml:"-"`

	Source    string `yaml:"source"`
	Encoding  string `yaml:"encoding"`
	Delimiter string `yaml:"delimiter"`

	// Service code the file belongs to, informational for timetables
	Service string `yaml:"service"`
}

type DataSetFormat string

const (
	DataSetFormatSchedule      DataSetFormat = "schedule"
	DataSetFormatTimetable     DataSetFormat = "timetable"
	DataSetFormatCrewRoster    DataSetFormat = "crew-roster"
	DataSetFormatCrewRosterPDF DataSetFormat = "crew-roster-pdf"
	DataSetFormatDirectory     DataSetFormat = "directory"
)

type Provider struct {
	Name    string `yaml:"name"`
	Website string `yaml:"website"`
}

// ResolvedFormat infers the positional crew roster format from a .pdf source
func (d DataSet) ResolvedFormat() DataSetFormat {
	if d.Format == DataSetFormatCrewRoster && strings.EqualFold(filepath.Ext(d.Source), ".pdf") {
		return DataSetFormatCrewRosterPDF
	}

	return d.Format
}

// IsText reports whether the source is delimited text that goes through character set decoding
func (d DataSet) IsText() bool {
	switch d.ResolvedFormat() {
	case DataSetFormatSchedule, DataSetFormatTimetable, DataSetFormatCrewRoster:
		return true
	}

	return false
}
