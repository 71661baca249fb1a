package stats

import (
	"lapstats/pkg/model"
)

// Summary holds the per-driver lap statistics. It only exists for drivers
// with at least one lap.
type Summary struct {
	Laps    int     `json:"laps"`
	Fastest float64 `json:"fastest"`
	Slowest float64 `json:"slowest"`
	Average float64 `json:"average"`
	Range   float64 `json:"range"`
}

func lapTimes(d *model.DriverRecord) ([]float64, bool) {
	if d == nil || !d.HasLaps || len(d.LapTimes) == 0 {
		return nil, false
	}
	return d.LapTimes, true
}

// Fastest returns the minimum lap time. ok is false when the driver has no
// laps; the value is never defaulted.
func Fastest(d *model.DriverRecord) (float64, bool) {
	times, ok := lapTimes(d)
	if !ok {
		return 0, false
	}
	best := times[0]
	for _, t := range times[1:] {
		if t < best {
			best = t
		}
	}
	return best, true
}

func Slowest(d *model.DriverRecord) (float64, bool) {
	times, ok := lapTimes(d)
	if !ok {
		return 0, false
	}
	worst := times[0]
	for _, t := range times[1:] {
		if t > worst {
			worst = t
		}
	}
	return worst, true
}

func Average(d *model.DriverRecord) (float64, bool) {
	times, ok := lapTimes(d)
	if !ok {
		return 0, false
	}
	return sum(times) / float64(len(times)), true
}

// Range is the spread between the slowest and the fastest lap.
func Range(d *model.DriverRecord) (float64, bool) {
	fastest, ok := Fastest(d)
	if !ok {
		return 0, false
	}
	slowest, _ := Slowest(d)
	return slowest - fastest, true
}

func Summarize(d *model.DriverRecord) (Summary, bool) {
	times, ok := lapTimes(d)
	if !ok {
		return Summary{}, false
	}
	fastest, _ := Fastest(d)
	slowest, _ := Slowest(d)
	average, _ := Average(d)
	return Summary{
		Laps:    len(times),
		Fastest: fastest,
		Slowest: slowest,
		Average: average,
		Range:   slowest - fastest,
	}, true
}

// OverallAverage is the mean of every lap of every driver, 0 when there
// are no laps at all.
func OverallAverage(laps *model.LapData) float64 {
	total := 0.0
	count := 0
	laps.Each(func(_ string, times []float64) {
		total += sum(times)
		count += len(times)
	})
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// FastestLaps maps the code of every driver with laps to its fastest lap.
func FastestLaps(drivers *model.Drivers) map[string]float64 {
	return collect(drivers, Fastest)
}

func AverageLaps(drivers *model.Drivers) map[string]float64 {
	return collect(drivers, Average)
}

func Ranges(drivers *model.Drivers) map[string]float64 {
	return collect(drivers, Range)
}

func collect(drivers *model.Drivers, metric func(*model.DriverRecord) (float64, bool)) map[string]float64 {
	values := make(map[string]float64)
	drivers.Each(func(code string, r *model.DriverRecord) {
		if v, ok := metric(r); ok {
			values[code] = v
		}
	})
	return values
}

func sum(times []float64) float64 {
	total := 0.0
	for _, t := range times {
		total += t
	}
	return total
}
