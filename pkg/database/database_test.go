package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/dutyboard/pkg/ctdf"
	"github.com/travigo/dutyboard/pkg/dataimporter/datasets"
	"github.com/travigo/dutyboard/pkg/dataimporter/manager"
)

func TestReloadKeepsPreviousOnFailure(t *testing.T) {
	directory := t.TempDir()

	schedule := filepath.Join(directory, "schedule.csv")
	require.NoError(t, os.WriteFile(schedule, []byte(
		"duty_id;service;start_time;end_time;duration;home_station;train;departure_time;arrival_time;cycle;note\n"+
			"Q0001;000;05:00;06:40;1:40;PC;1001;05:30;06:10;A1;\n"), 0o644))

	timetable := filepath.Join(directory, "timetable.csv")
	require.NoError(t, os.WriteFile(timetable, []byte(
		"train;line;origin;departure_time;destination;arrival_time\n"+
			"1001;S1;PC;05:30;SR;06:10\n"), 0o644))

	store := NewStore(nil, []datasets.DataSet{
		{Identifier: "schedule", Format: datasets.DataSetFormatSchedule, Source: schedule},
		{Identifier: "timetable", Format: datasets.DataSetFormatTimetable, Source: timetable},
	})

	assert.False(t, store.Loaded())
	assert.Nil(t, store.Get())

	require.NoError(t, store.Reload(context.Background()))
	require.True(t, store.Loaded())

	first := store.Get()
	assert.True(t, first.HasDuty("Q0001"))

	require.NoError(t, os.Remove(timetable))

	err := store.Reload(context.Background())
	assert.ErrorIs(t, err, manager.ErrMissingSource)
	assert.Same(t, first, store.Get())
}

func TestReplace(t *testing.T) {
	store := NewStore(nil, nil)

	db := ctdf.NewDatabaseBuilder().Build()
	store.Replace(db)

	assert.Same(t, db, store.Get())
}
