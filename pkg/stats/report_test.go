package stats

import (
	"testing"

	"lapstats/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raceSet(races []string, laps map[string][]float64, order ...string) model.RaceSet {
	data := model.NewLapData()
	for _, code := range order {
		for _, t := range laps[code] {
			data.Append(code, t)
		}
	}
	return model.RaceSet{Races: races, Laps: data}
}

func driversFrom(rs model.RaceSet, rosterCodes ...string) *model.Drivers {
	d := model.NewDrivers()
	for i, code := range rosterCodes {
		n := i + 1
		d.Set(code, &model.DriverRecord{CarNumber: &n, Name: code + " name", Team: code + " team"})
	}
	rs.Laps.Each(func(code string, times []float64) {
		if r, ok := d.Get(code); ok {
			r.LapTimes = times
			r.HasLaps = true
			return
		}
		d.Set(code, model.Placeholder(times))
	})
	return d
}

func TestBuild(t *testing.T) {
	rs := raceSet([]string{"Bahrain GP", "Monaco GP"}, map[string][]float64{
		"HAM": {90, 92},
		"VER": {88, 89, 91},
	}, "HAM", "VER")
	report := Build(driversFrom(rs, "HAM", "LEC"), rs)

	assert.Equal(t, "Monaco GP", report.LastRace())
	require.Len(t, report.Rows, 3)
	assert.Equal(t, "HAM", report.Rows[0].Code)
	assert.Equal(t, "LEC", report.Rows[1].Code)
	assert.Nil(t, report.Rows[1].Summary)
	assert.Equal(t, "VER", report.Rows[2].Code)
	assert.Equal(t, "Unknown", report.Rows[2].Driver.Name)

	// total summed time over total lap count across both files
	assert.InDelta(t, 450.0/5, report.OverallAverage, 1e-12)
}

func TestSortedByFastestIsStable(t *testing.T) {
	rs := raceSet([]string{"Monza"}, map[string][]float64{
		"AAA": {80.5},
		"BBB": {79.0},
		"CCC": {80.5},
		"DDD": {81.0},
	}, "AAA", "BBB", "CCC", "DDD")
	report := Build(driversFrom(rs, "ZZZ"), rs)

	sorted := report.SortedByFastest()
	codes := make([]string, len(sorted))
	for i, row := range sorted {
		codes[i] = row.Code
	}
	assert.Equal(t, []string{"BBB", "AAA", "CCC", "DDD"}, codes)

	top := report.Top(3)
	require.Len(t, top, 3)
	assert.Equal(t, "CCC", top[2].Code)
	assert.Len(t, report.Top(10), 4)
	assert.Empty(t, report.Top(0))
}

func TestGap(t *testing.T) {
	rs := raceSet([]string{"Monza"}, map[string][]float64{
		"HAM": {88.123, 87.456},
		"VER": {86.789},
	}, "HAM", "VER")
	report := Build(driversFrom(rs, "HAM", "VER", "LEC"), rs)

	best, ok := report.BestLap()
	require.True(t, ok)
	assert.Equal(t, 86.789, best)

	gap, ok := report.Gap(report.Rows[0])
	require.True(t, ok)
	assert.InDelta(t, 0.667, gap, 1e-9)

	_, ok = report.Gap(report.Rows[2])
	assert.False(t, ok)
}

func TestBuildEmpty(t *testing.T) {
	rs := model.RaceSet{Races: []string{"Monza"}, Laps: model.NewLapData()}
	report := Build(model.NewDrivers(), rs)

	assert.Equal(t, 0.0, report.OverallAverage)
	assert.Empty(t, report.SortedByFastest())
	_, ok := report.BestLap()
	assert.False(t, ok)
}
