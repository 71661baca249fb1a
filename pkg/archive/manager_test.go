package archive

import (
	"path/filepath"
	"testing"
	"time"

	"lapstats/pkg/model"
	"lapstats/pkg/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func sampleReport(races ...string) stats.Report {
	ham := 44
	drivers := model.NewDrivers()
	drivers.Set("HAM", &model.DriverRecord{CarNumber: &ham, Name: "Lewis Hamilton", Team: "Mercedes", LapTimes: []float64{88.123, 87.456}, HasLaps: true})
	drivers.Set("LEC", &model.DriverRecord{Name: "Charles Leclerc", Team: "Ferrari"})
	drivers.Set("ZHO", model.Placeholder([]float64{92.5}))

	laps := model.NewLapData()
	laps.Append("HAM", 88.123)
	laps.Append("HAM", 87.456)
	laps.Append("ZHO", 92.5)
	return stats.Build(drivers, model.RaceSet{Races: races, Laps: laps})
}

func TestSaveAndList(t *testing.T) {
	m := newTestManager(t)
	m.now = func() time.Time { return time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC) }

	first, err := m.Save(sampleReport("Bahrain GP"))
	require.NoError(t, err)
	second, err := m.Save(sampleReport("Bahrain GP", "Jeddah GP"))
	require.NoError(t, err)
	assert.Greater(t, second, first)

	runs, err := m.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, []string{"Bahrain GP", "Jeddah GP"}, runs[0].Races)
	assert.Equal(t, 3, runs[0].Drivers)
	assert.Equal(t, 87.456, runs[0].BestLap)
	assert.InDelta(t, (88.123+87.456+92.5)/3, runs[0].OverallAverage, 1e-9)
	assert.True(t, runs[0].CreatedAt.Equal(time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, first, runs[1].ID)
}

func TestEntries(t *testing.T) {
	m := newTestManager(t)

	id, err := m.Save(sampleReport("Monaco GP"))
	require.NoError(t, err)

	entries, err := m.Entries(id)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	ham := entries[0]
	assert.Equal(t, "HAM", ham.Code)
	require.NotNil(t, ham.CarNumber)
	assert.Equal(t, 44, *ham.CarNumber)
	assert.Equal(t, 2, ham.Laps)
	require.NotNil(t, ham.Fastest)
	assert.Equal(t, 87.456, *ham.Fastest)
	assert.Equal(t, 88.123, *ham.Slowest)

	lec := entries[1]
	assert.Equal(t, "LEC", lec.Code)
	assert.Nil(t, lec.CarNumber)
	assert.Nil(t, lec.Fastest)
	assert.Nil(t, lec.Average)
	assert.Equal(t, 0, lec.Laps)

	zho := entries[2]
	assert.Equal(t, "Unknown", zho.Name)
	assert.Nil(t, zho.CarNumber)
}

func TestNewManagerRequiresPath(t *testing.T) {
	_, err := NewManager("")
	assert.Error(t, err)
}

func TestListRunsEmpty(t *testing.T) {
	m := newTestManager(t)

	runs, err := m.ListRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	entries, err := m.Entries(42)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
