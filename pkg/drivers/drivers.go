package drivers

import (
	"lapstats/pkg/model"
)

// Merge attaches the lap times of every code in laps to its roster record.
// Codes missing from the roster get a placeholder record. The inputs are
// left untouched.
func Merge(roster *model.Drivers, laps *model.LapData) *model.Drivers {
	merged := roster.Clone()
	laps.Each(func(code string, times []float64) {
		lapTimes := append([]float64(nil), times...)
		if r, ok := merged.Get(code); ok {
			r.LapTimes = lapTimes
			r.HasLaps = true
			return
		}
		merged.Set(code, model.Placeholder(lapTimes))
	})
	return merged
}
