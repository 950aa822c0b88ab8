package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/itinerary"
	"github.com/travigo/dutyboard/pkg/trainassign"
)

func fixture(t *testing.T) *Engine {
	t.Helper()

	builder := ctdf.NewDatabaseBuilder()

	builder.AddDuty(ctdf.Duty{ID: "Q0001", Service: "000", StartTime: "05:00", EndTime: "08:00", HomeStation: "PC"})
	builder.AppendRun("Q0001", ctdf.TrainRunRef{Code: "1002", DepartureTime: "06:40", ArrivalTime: "07:20", Cycle: "A1"})
	builder.AppendRun("Q0001", ctdf.TrainRunRef{Code: "1001", DepartureTime: "05:30", ArrivalTime: "06:10", Cycle: "A1"})

	builder.AddDuty(ctdf.Duty{ID: "Q0P02", Service: "000", StartTime: "23:00", EndTime: "03:00", HomeStation: "SR"})
	builder.AppendRun("Q0P02", ctdf.TrainRunRef{Code: "2001", DepartureTime: "23:45", ArrivalTime: "00:10", Cycle: "B2"})
	builder.AppendRun("Q0P02", ctdf.TrainRunRef{Code: "TRASLADO", Cycle: "B2"})

	builder.AddDuty(ctdf.Duty{ID: "Q1P02", Service: "100", StartTime: "06:00", EndTime: "09:00", HomeStation: "PC"})
	builder.AppendRun("Q1P02", ctdf.TrainRunRef{Code: "3001", DepartureTime: "06:30", ArrivalTime: "07:00", Cycle: "C3"})

	builder.AddDuty(ctdf.Duty{ID: "Q0010", Service: "100", StartTime: "10:00", EndTime: "12:00", HomeStation: "TB"})

	for _, cycle := range []string{"A1", "B2", "C3", "D4"} {
		builder.AddCycle(cycle)
	}

	builder.AddCirculation(ctdf.Circulation{Code: "1001", Line: "S1", Origin: "PC", DepartureTime: "05:30", Destination: "SR", ArrivalTime: "06:10",
		Intermediate: []ctdf.StationPass{{Station: "GR", Time: "05:45"}}})
	builder.AddCirculation(ctdf.Circulation{Code: "1002", Line: "S1", Origin: "SR", DepartureTime: "06:40", Destination: "PC", ArrivalTime: "07:20"})
	builder.AddCirculation(ctdf.Circulation{Code: "2001", Line: "S2", Origin: "SR", DepartureTime: "23:45", Destination: "PC", ArrivalTime: "00:10"})
	builder.AddCirculation(ctdf.Circulation{Code: "3001", Line: "S3", Origin: "PC", DepartureTime: "06:30", Destination: "GR", ArrivalTime: "07:00"})
	builder.AddCirculation(ctdf.Circulation{Code: "9001", Line: "S9", Origin: "PC", DepartureTime: "05:50", Destination: "GR", ArrivalTime: "06:20"})

	builder.AddCrewMember("Q0001", ctdf.CrewMember{Name: "Ana Muñoz Pérez", Payroll: "12345"})
	builder.AddCrewMember("Q0001", ctdf.CrewMember{Name: "Luis Gómez", Payroll: "23456", Observation: "PRACT"})
	builder.AddCrewMember("Q0P02", ctdf.CrewMember{Name: "Ana Muñoz Pérez", Payroll: "12345"})
	builder.AddCrewMember("Q1P02", ctdf.CrewMember{Name: "Marta Ruiz", Payroll: "34567"})

	builder.AddPhonebookEntry(ctdf.PhonebookEntry{Payroll: "12345", FirstName: "Ana", Surname1: "Muñoz", Surname2: "Pérez", Phones: []string{"600111222"}})
	builder.AddPhonebookEntry(ctdf.PhonebookEntry{Payroll: "34567", FirstName: "Marta", Surname1: "Ruiz", Phones: []string{"600333444", "913000000"}})

	assignments := trainassign.NewAssignments()
	require.NoError(t, assignments.Assign("A1", "112.03"))

	return NewEngine(builder.Build(), itinerary.NewBuilder(), assignments)
}

func TestByDuty(t *testing.T) {
	engine := fixture(t)

	result := engine.ByDuty("1", "")
	require.Equal(t, StatusFound, result.Status)
	assert.Equal(t, "Q0001", result.Duty.Duty.ID)
	assert.Equal(t, 180, result.Duty.Minutes)

	require.Len(t, result.Duty.Runs, 2)
	assert.Equal(t, "1001", result.Duty.Runs[0].Run.Code)
	assert.Equal(t, "SR", result.Duty.Runs[0].Destination)
	assert.Equal(t, "112.03", result.Duty.Runs[0].Train)
	assert.Equal(t, "69253", result.Duty.Runs[0].Phone)

	require.Len(t, result.Duty.Crew, 2)
	require.NotNil(t, result.Duty.Crew[0].Phonebook)
	assert.Equal(t, []string{"600111222"}, result.Duty.Crew[0].Phonebook.Phones)
	assert.Nil(t, result.Duty.Crew[1].Phonebook)

	assert.Len(t, result.Duty.Intervals, 3)
	assert.NotEmpty(t, result.Duty.Itinerary.Items)

	assert.Equal(t, StatusFound, engine.ByDuty(" q0001 ", "000").Status)
	assert.Equal(t, StatusFound, engine.ByDuty("Q1", "").Status)
}

func TestByDutyIsIdempotent(t *testing.T) {
	engine := fixture(t)

	assert.Equal(t, engine.ByDuty("QP02", "000"), engine.ByDuty("QP02", "000"))
}

func TestByDutyShortForm(t *testing.T) {
	engine := fixture(t)

	result := engine.ByDuty("qp02", "000")
	require.Equal(t, StatusFound, result.Status)
	assert.Equal(t, "Q0P02", result.Duty.Duty.ID)

	result = engine.ByDuty("QP02", "100")
	require.Equal(t, StatusFound, result.Status)
	assert.Equal(t, "Q1P02", result.Duty.Duty.ID)

	// Without a filter the base service wins
	result = engine.ByDuty("QP02", "")
	require.Equal(t, StatusFound, result.Status)
	assert.Equal(t, "Q0P02", result.Duty.Duty.ID)
}

func TestByDutyWrongService(t *testing.T) {
	engine := fixture(t)

	result := engine.ByDuty("Q0010", "000")
	assert.Equal(t, StatusWrongService, result.Status)
	assert.Equal(t, "100", result.Service)
	assert.Nil(t, result.Duty)

	assert.Equal(t, StatusNotFound, engine.ByDuty("Q9999", "").Status)
	assert.Equal(t, StatusInvalid, engine.ByDuty("  ", "").Status)
}

func TestByDutyDoesNotAlias(t *testing.T) {
	engine := fixture(t)

	result := engine.ByDuty("Q0001", "")
	require.Equal(t, StatusFound, result.Status)

	result.Duty.Duty.HomeStation = "XX"
	result.Duty.Runs[0].Circulation.Intermediate[0].Station = "XX"
	result.Duty.Crew[0].Phonebook.Phones[0] = "0"

	duty, _ := engine.Database().Duty("Q0001")
	assert.Equal(t, "PC", duty.HomeStation)

	circulation, _ := engine.Database().Circulation("1001")
	assert.Equal(t, "GR", circulation.Intermediate[0].Station)

	entry, _ := engine.Database().PhonebookEntry("12345")
	assert.Equal(t, "600111222", entry.Phones[0])
}

func TestByRun(t *testing.T) {
	engine := fixture(t)

	result := engine.ByRun("1001", "")
	require.Equal(t, StatusFound, result.Status)
	assert.Equal(t, "Q0001", result.DutyID)
	assert.Equal(t, "A1", result.Cycle)
	assert.Equal(t, "112.03", result.Train)
	assert.Equal(t, "S1", result.Circulation.Line)
	assert.Len(t, result.Stops, 3)

	// Transfers have no timetable but are still worked by a duty
	result = engine.ByRun("TRASLADO", "")
	assert.Equal(t, StatusFound, result.Status)
	assert.Nil(t, result.Circulation)
	assert.Equal(t, "train TRASLADO has no timetable entry", result.Message)
	assert.Empty(t, engine.ByRun("1001", "").Message)

	assert.Equal(t, StatusRunUnassigned, engine.ByRun("3001", "000").Status)
	assert.Equal(t, StatusRunUnassigned, engine.ByRun("9001", "").Status)
	assert.Equal(t, StatusRunUnknown, engine.ByRun("7777", "").Status)
	assert.Equal(t, StatusInvalid, engine.ByRun("", "").Status)
}

func TestByCycle(t *testing.T) {
	engine := fixture(t)

	result := engine.ByCycle("A1", "000")
	require.Equal(t, StatusFound, result.Status)
	require.Len(t, result.Runs, 2)
	assert.Equal(t, "1001", result.Runs[0].Run.Code)
	assert.Equal(t, "1002", result.Runs[1].Run.Code)
	assert.Equal(t, "Q0001", result.Runs[0].DutyID)
	assert.Equal(t, "112.03", result.Train)

	result = engine.ByCycle("B2", "")
	require.Equal(t, StatusFound, result.Status)
	require.Len(t, result.Runs, 2)
	assert.Equal(t, "TRASLADO", result.Runs[0].Run.Code)

	assert.Equal(t, StatusNotFound, engine.ByCycle("C3", "000").Status)
	assert.Equal(t, StatusNotFound, engine.ByCycle("D4", "").Status)
	assert.Equal(t, StatusNotFound, engine.ByCycle("Z9", "").Status)
}

func TestByStation(t *testing.T) {
	engine := fixture(t)

	result := engine.ByStation("PC", "05:00", "05:59", "")
	require.Equal(t, StatusFound, result.Status)

	var trains []string
	var types []EventType
	for _, event := range result.Events {
		trains = append(trains, event.Train)
		types = append(types, event.Type)
	}

	// 9001 calls at PC in the window but no duty works it
	assert.Equal(t, []string{"", "1001"}, trains)
	assert.Equal(t, []EventType{EventTypeDutyStart, EventTypeDeparture}, types)

	result = engine.ByStation("PC", "06:00", "07:00", "100")
	require.Len(t, result.Events, 2)
	assert.Equal(t, "Q1P02", result.Events[0].DutyID)
	assert.Equal(t, EventTypeDutyStart, result.Events[0].Type)
	assert.Equal(t, "3001", result.Events[1].Train)

	assert.Equal(t, StatusNotFound, engine.ByStation("ZZ", "", "", "").Status)
	assert.Equal(t, StatusInvalid, engine.ByStation("", "", "", "").Status)
}

func TestByStationAcrossMidnight(t *testing.T) {
	engine := fixture(t)

	result := engine.ByStation("PC", "23:30", "00:30", "")
	require.Len(t, result.Events, 1)
	assert.Equal(t, "00:10", result.Events[0].Time)

	result = engine.ByStation("SR", "22:30", "00:30", "")
	require.Len(t, result.Events, 2)
	assert.Equal(t, EventTypeDutyStart, result.Events[0].Type)
	assert.Equal(t, "23:00", result.Events[0].Time)
	assert.Equal(t, "23:45", result.Events[1].Time)
}

func TestStationSortWraps(t *testing.T) {
	builder := ctdf.NewDatabaseBuilder()
	builder.AddDuty(ctdf.Duty{ID: "Q0001", StartTime: "23:00", EndTime: "02:00", HomeStation: "PC"})
	builder.AppendRun("Q0001", ctdf.TrainRunRef{Code: "1"})
	builder.AppendRun("Q0001", ctdf.TrainRunRef{Code: "2"})
	builder.AddCirculation(ctdf.Circulation{Code: "1", Origin: "XX", DepartureTime: "00:00", Destination: "PC", ArrivalTime: "00:10"})
	builder.AddCirculation(ctdf.Circulation{Code: "2", Origin: "PC", DepartureTime: "23:45", Destination: "XX", ArrivalTime: "23:55"})

	engine := NewEngine(builder.Build(), nil, nil)

	result := engine.ByStation("PC", "23:30", "00:30", "")
	require.Len(t, result.Events, 2)
	assert.Equal(t, "23:45", result.Events[0].Time)
	assert.Equal(t, "00:10", result.Events[1].Time)
}

func TestSuggestCrew(t *testing.T) {
	engine := fixture(t)

	suggestions := engine.SuggestCrew("muñoz")
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Q0001", suggestions[0].DutyID)

	suggestions = engine.SuggestCrew("23456")
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Luis Gómez", suggestions[0].Name)

	assert.Len(t, engine.SuggestCrew("a"), 2)
	assert.Empty(t, engine.SuggestCrew(""))
}

func TestSuggestCrewLimit(t *testing.T) {
	builder := ctdf.NewDatabaseBuilder()
	for index := 0; index < 15; index++ {
		builder.AddCrewMember("Q0001", ctdf.CrewMember{Name: "Driver", Payroll: string(rune('a' + index))})
	}

	engine := NewEngine(builder.Build(), nil, nil)
	assert.Len(t, engine.SuggestCrew("driver"), MaxCrewSuggestions)
}

func TestByCrewMember(t *testing.T) {
	engine := fixture(t)

	result := engine.ByCrewMember("12345", "")
	require.Equal(t, StatusFound, result.Status)
	assert.Equal(t, "Q0001", result.Duty.Duty.ID)
	assert.Equal(t, "12345", result.Query)

	result = engine.ByCrewMember("marta ruiz", "000")
	assert.Equal(t, StatusWrongService, result.Status)
	assert.Equal(t, "100", result.Service)

	assert.Equal(t, StatusNotFound, engine.ByCrewMember("99999", "").Status)
}

func TestFilterPhonebook(t *testing.T) {
	engine := fixture(t)

	assert.Len(t, engine.FilterPhonebook(""), 2)

	entries := engine.FilterPhonebook("pérez")
	require.Len(t, entries, 1)
	assert.Equal(t, "12345", entries[0].Payroll)

	entries = engine.FilterPhonebook("345")
	assert.Len(t, entries, 2)

	entries = engine.FilterPhonebook("MARTA")
	require.Len(t, entries, 1)
	entries[0].Phones[0] = "0"

	entry, _ := engine.Database().PhonebookEntry("34567")
	assert.Equal(t, "600333444", entry.Phones[0])
}
