package ctdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseBuilder(t *testing.T) {
	builder := NewDatabaseBuilder()

	duty := builder.AddDuty(Duty{ID: "Q0001", Service: "000", StartTime: "05:00", EndTime: "06:40", HomeStation: "PC"})
	assert.Equal(t, "Q0001", duty.ID)

	again := builder.AddDuty(Duty{ID: "Q0001", Service: "100", HomeStation: "SR"})
	assert.Equal(t, "000", again.Service)

	assert.True(t, builder.AppendRun("Q0001", TrainRunRef{Code: "1001", DepartureTime: "05:30", ArrivalTime: "06:10", Cycle: "A1"}))
	assert.False(t, builder.AppendRun("Q9999", TrainRunRef{Code: "1002"}))

	assert.True(t, builder.AddCirculation(Circulation{Code: "1001", Origin: "PC", Destination: "SR", Intermediate: []StationPass{{Station: "GR", Time: "05:40"}}}))
	assert.False(t, builder.AddCirculation(Circulation{Code: "1001", Origin: "TB", Destination: "RE"}))

	builder.AddCrewMember("Q0001", CrewMember{Name: "JOAN GARCIA", Payroll: "12345"})
	builder.AddCrewMember("Q0001", CrewMember{Name: "ANNA PUIG", Payroll: "54321"})

	assert.True(t, builder.AddPhonebookEntry(PhonebookEntry{Payroll: "12345", FirstName: "Joan"}))
	assert.False(t, builder.AddPhonebookEntry(PhonebookEntry{Payroll: "12345", FirstName: "Other"}))

	db := builder.Build()

	assert.Equal(t, DatabaseStats{Duties: 1, Circulations: 1, CrewMembers: 2, Phonebook: 1, Cycles: 1, Stations: 3}, db.Stats())

	circulation, found := db.Circulation("1001")
	require.True(t, found)
	assert.Equal(t, "PC", circulation.Origin)

	assert.Equal(t, []string{"A1"}, db.Cycles())
	assert.Equal(t, []string{"GR", "PC", "SR"}, db.Stations())
	assert.Equal(t, []string{"000"}, db.Services())
	assert.Len(t, db.Crew("Q0001"), 2)
	assert.Equal(t, "JOAN GARCIA", db.Crew("Q0001")[0].Name)

	crew := db.Crew("Q0001")
	crew[0].Name = "CHANGED"
	assert.Equal(t, "JOAN GARCIA", db.Crew("Q0001")[0].Name)
}

func TestResolveDutyID(t *testing.T) {
	builder := NewDatabaseBuilder()
	builder.AddDuty(Duty{ID: "Q1P02", Service: "100"})
	db := builder.Build()

	assert.Equal(t, "Q1P02", db.ResolveDutyID(" qp02"))
	assert.Equal(t, "QP03", db.ResolveDutyID("QP03"))
}

func TestCirculationStops(t *testing.T) {
	circulation := Circulation{
		Code:          "1001",
		Origin:        "PC",
		DepartureTime: "05:30",
		Destination:   "SR",
		ArrivalTime:   "06:10",
		Intermediate: []StationPass{
			{Station: "GR", Time: "05:35"},
			{Station: "GR", Time: "05:36"},
			{Station: "MN", Time: "05:50"},
		},
	}

	assert.Equal(t, []StationPass{
		{Station: "PC", Time: "05:30"},
		{Station: "GR", Time: "05:35"},
		{Station: "MN", Time: "05:50"},
		{Station: "SR", Time: "06:10"},
	}, circulation.Stops())

	calls := circulation.CallsAt("GR")
	require.Len(t, calls, 2)
	assert.Equal(t, CallTypePass, calls[0].Type)

	calls = circulation.CallsAt("SR")
	require.Len(t, calls, 1)
	assert.Equal(t, CallTypeArrival, calls[0].Type)
	assert.Equal(t, "06:10", calls[0].Time)
}

func TestDutyTimeline(t *testing.T) {
	duty := Duty{StartTime: "22:00", EndTime: "02:00"}
	assert.True(t, duty.CrossesMidnight())
	assert.Equal(t, 240, duty.Minutes())
	assert.Equal(t, 1440+60, duty.Timeline("01:00"))
	assert.Equal(t, 1380, duty.Timeline("23:00"))

	day := Duty{StartTime: "05:00", EndTime: "06:40"}
	assert.False(t, day.CrossesMidnight())
	assert.Equal(t, 60, day.Timeline("01:00"))
}

func TestPhonebookEntryFullName(t *testing.T) {
	entry := PhonebookEntry{FirstName: "Joan", Surname1: "Garcia", Surname2: ""}
	assert.Equal(t, "Joan Garcia", entry.FullName())
}
