package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/query"
)

func fixture() *ctdf.Database {
	builder := ctdf.NewDatabaseBuilder()

	builder.AddDuty(ctdf.Duty{ID: "Q0001", StartTime: "05:00", EndTime: "07:00", HomeStation: "PC"})
	builder.AppendRun("Q0001", ctdf.TrainRunRef{Code: "1001", DepartureTime: "05:30", ArrivalTime: "06:10"})

	builder.AddDuty(ctdf.Duty{ID: "Q0002", StartTime: "05:15", EndTime: "07:00", HomeStation: "PC"})
	builder.AppendRun("Q0002", ctdf.TrainRunRef{Code: "2001", DepartureTime: "05:45", ArrivalTime: "06:20"})

	builder.AddDuty(ctdf.Duty{ID: "Q0P03", StartTime: "04:00", EndTime: "09:00", HomeStation: "TB"})
	builder.AppendRun("Q0P03", ctdf.TrainRunRef{Code: "3001", DepartureTime: "07:30", ArrivalTime: "08:00"})

	builder.AddDuty(ctdf.Duty{ID: "Q0004", StartTime: "10:00", EndTime: "11:00", HomeStation: "SR"})

	builder.AddCirculation(ctdf.Circulation{Code: "1001", Origin: "PC", Destination: "SR"})
	builder.AddCirculation(ctdf.Circulation{Code: "2001", Origin: "PC", Destination: "SR"})
	builder.AddCirculation(ctdf.Circulation{Code: "3001", Origin: "XX", Destination: "SR"})

	return builder.Build()
}

func TestCompareOverlap(t *testing.T) {
	comparison := NewComparator(nil).Compare(fixture(), "q1", "Q0002")
	require.Equal(t, query.StatusFound, comparison.Status)

	assert.Equal(t, "Q0001", comparison.First.DutyID)
	require.Len(t, comparison.Overlaps, 1)
	assert.Equal(t, Overlap{Station: "PC", Start: 315, End: 330, StartTime: "05:15", EndTime: "05:30"}, comparison.Overlaps[0])

	// Both end at SR ten minutes apart
	assert.True(t, comparison.Relief)
	assert.Equal(t, "SR", comparison.First.LastArrivalStation)
}

func TestCompareRelief(t *testing.T) {
	comparator := NewComparator(nil)

	comparison := comparator.Compare(fixture(), "Q0001", "QP03")
	require.Equal(t, query.StatusFound, comparison.Status)
	assert.Equal(t, "Q0P03", comparison.Second.DutyID)
	assert.Empty(t, comparison.Overlaps)
	assert.False(t, comparison.Relief)

	comparator.ReliefTolerance = 5
	assert.False(t, comparator.Compare(fixture(), "Q0001", "Q0002").Relief)

	// No runs means no last run to hand over
	assert.False(t, NewComparator(nil).Compare(fixture(), "Q0001", "Q0004").Relief)
}

func TestCompareAcrossMidnight(t *testing.T) {
	builder := ctdf.NewDatabaseBuilder()
	builder.AddDuty(ctdf.Duty{ID: "Q0010", StartTime: "22:00", EndTime: "06:00", HomeStation: "PC"})
	builder.AddDuty(ctdf.Duty{ID: "Q0011", StartTime: "04:00", EndTime: "08:00", HomeStation: "PC"})
	builder.AddDuty(ctdf.Duty{ID: "Q0012", StartTime: "21:00", EndTime: "23:00", HomeStation: "PC"})
	db := builder.Build()

	comparator := NewComparator(nil)

	for _, pair := range [][2]string{{"Q0010", "Q0011"}, {"Q0011", "Q0010"}} {
		comparison := comparator.Compare(db, pair[0], pair[1])
		require.Equal(t, query.StatusFound, comparison.Status)
		require.Len(t, comparison.Overlaps, 1, pair)
		assert.Equal(t, "PC", comparison.Overlaps[0].Station)
		assert.Equal(t, "04:00", comparison.Overlaps[0].StartTime)
		assert.Equal(t, "06:00", comparison.Overlaps[0].EndTime)
	}

	// Evening overlap stays on the same day
	comparison := comparator.Compare(db, "Q0012", "Q0010")
	require.Len(t, comparison.Overlaps, 1)
	assert.Equal(t, Overlap{Station: "PC", Start: 1320, End: 1380, StartTime: "22:00", EndTime: "23:00"}, comparison.Overlaps[0])
}

func TestCompareInvalid(t *testing.T) {
	comparator := NewComparator(nil)

	assert.Equal(t, query.StatusInvalid, comparator.Compare(fixture(), "q0001", "Q1").Status)
	assert.Equal(t, query.StatusInvalid, comparator.Compare(fixture(), "QP03", "Q0P03").Status)
	assert.Equal(t, query.StatusInvalid, comparator.Compare(fixture(), "", "Q0001").Status)

	comparison := comparator.Compare(fixture(), "Q0001", "Q9999")
	assert.Equal(t, query.StatusNotFound, comparison.Status)
	assert.True(t, comparison.First.Found)
	assert.False(t, comparison.Second.Found)
	assert.Equal(t, "duty Q9999 not found", comparison.Message)
}
