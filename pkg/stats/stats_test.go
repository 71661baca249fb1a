package stats

import (
	"testing"

	"lapstats/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLaps(times ...float64) *model.DriverRecord {
	return &model.DriverRecord{Name: "Driver", LapTimes: times, HasLaps: true}
}

func TestMetricsScenario(t *testing.T) {
	ham := withLaps(88.123, 87.456)

	fastest, ok := Fastest(ham)
	require.True(t, ok)
	assert.Equal(t, 87.456, fastest)

	average, ok := Average(ham)
	require.True(t, ok)
	assert.InDelta(t, 87.7895, average, 1e-9)

	slowest, _ := Slowest(ham)
	assert.Equal(t, 88.123, slowest)

	r, ok := Range(ham)
	require.True(t, ok)
	assert.InDelta(t, 0.667, r, 1e-9)
}

func TestMetricsWithoutLaps(t *testing.T) {
	n := 44
	noLaps := &model.DriverRecord{CarNumber: &n, Name: "Lewis Hamilton"}

	for name, metric := range map[string]func(*model.DriverRecord) (float64, bool){
		"fastest": Fastest,
		"slowest": Slowest,
		"average": Average,
		"range":   Range,
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := metric(noLaps)
			assert.False(t, ok)
			_, ok = metric(nil)
			assert.False(t, ok)
		})
	}

	_, ok := Summarize(noLaps)
	assert.False(t, ok)
}

func TestSummaryOrdering(t *testing.T) {
	tests := []struct {
		name  string
		times []float64
	}{
		{name: "single lap", times: []float64{90.5}},
		{name: "two laps", times: []float64{88.123, 87.456}},
		{name: "many laps", times: []float64{95.1, 91.2, 93.3, 90.0, 99.9, 90.0}},
		{name: "equal laps", times: []float64{80, 80, 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := Summarize(withLaps(tt.times...))
			require.True(t, ok)
			assert.Equal(t, len(tt.times), s.Laps)
			assert.LessOrEqual(t, s.Fastest, s.Average)
			assert.LessOrEqual(t, s.Average, s.Slowest)
			assert.InDelta(t, s.Slowest-s.Fastest, s.Range, 1e-12)
			if len(tt.times) == 1 {
				assert.Equal(t, s.Fastest, s.Average)
				assert.Equal(t, 0.0, s.Range)
			}
		})
	}
}

func TestOverallAverage(t *testing.T) {
	assert.Equal(t, 0.0, OverallAverage(model.NewLapData()))

	laps := model.NewLapData()
	laps.Append("HAM", 90)
	laps.Append("HAM", 92)
	laps.Append("VER", 88)
	laps.Append("VER", 89)
	laps.Append("VER", 91)
	assert.InDelta(t, (90.0+92+88+89+91)/5, OverallAverage(laps), 1e-12)
}

func TestMetricMappingsOmitDriversWithoutLaps(t *testing.T) {
	n := 1
	drivers := model.NewDrivers()
	drivers.Set("HAM", withLaps(88.123, 87.456))
	drivers.Set("VER", &model.DriverRecord{CarNumber: &n, Name: "Max Verstappen"})

	fastest := FastestLaps(drivers)
	assert.Equal(t, map[string]float64{"HAM": 87.456}, fastest)
	assert.NotContains(t, AverageLaps(drivers), "VER")
	assert.NotContains(t, Ranges(drivers), "VER")
	assert.Len(t, Ranges(drivers), 1)
}
