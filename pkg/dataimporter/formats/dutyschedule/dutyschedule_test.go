package dutyschedule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/dataimporter/formats/delimited"
)

const header = "duty_id;service;start_time;end_time;duration;home_station;train;departure_time;arrival_time;cycle;note\n"

func importSchedule(t *testing.T, input string) *ctdf.Database {
	t.Helper()

	schedule := &Schedule{}
	require.NoError(t, schedule.ParseFile(strings.NewReader(input)))

	builder := ctdf.NewDatabaseBuilder()
	require.NoError(t, schedule.Import(builder, &ctdf.DataSource{OriginalFormat: "schedule", Dataset: "test"}))

	return builder.Build()
}

func TestImport(t *testing.T) {
	db := importSchedule(t, header+
		"Q0001;000;05:00;06:40;1:40;PC;1001;05:30;06:10;A1;\n"+
		"Q0001;000;05:00;06:40;1:40;PC;1002;06:15;06:35;A1;empty\n"+
		"Q1;000;05:00;06:40;1:40;PC\n"+
		"Q0P02;000;22:00;02:00;4:00;SR;;;;B2\n"+
		";000;05:00;06:00;;PC;9999;05:00;06:00;C3\n")

	duties := db.Duties()
	require.Len(t, duties, 2)

	duty, found := db.Duty("Q0001")
	require.True(t, found)
	assert.Equal(t, "000", duty.Service)
	assert.Equal(t, "PC", duty.HomeStation)
	assert.Equal(t, "1:40", duty.DurationLabel)
	require.Len(t, duty.Runs, 2)
	assert.Equal(t, ctdf.TrainRunRef{Code: "1002", DepartureTime: "06:15", ArrivalTime: "06:35", Cycle: "A1", Note: "empty"}, duty.Runs[1])
	assert.Equal(t, 2, duty.DataSource.Line)

	special, found := db.Duty("Q0P02")
	require.True(t, found)
	assert.Empty(t, special.Runs)
	assert.True(t, special.CrossesMidnight())

	assert.Equal(t, []string{"A1", "B2"}, db.Cycles())
}

func TestImportLineAfterBlankLines(t *testing.T) {
	db := importSchedule(t, header+
		"\n"+
		";;;;;;;;;;\n"+
		"Q0003;000;07:00;09:00;2:00;TB;3001;07:30;08:10;C3;\n")

	duty, found := db.Duty("Q0003")
	require.True(t, found)
	assert.Equal(t, 4, duty.DataSource.Line)
}

func TestImportHeaderOnly(t *testing.T) {
	db := importSchedule(t, header)
	assert.Empty(t, db.Duties())
}

func TestParseFileMissingColumn(t *testing.T) {
	schedule := &Schedule{}
	err := schedule.ParseFile(strings.NewReader("duty_id;service\nQ0001;000\n"))
	assert.ErrorIs(t, err, delimited.ErrMissingColumn)
}
