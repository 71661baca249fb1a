package stats

import (
	"sort"

	"lapstats/pkg/model"
)

const DefaultTop = 3

type Row struct {
	Code    string             `json:"code"`
	Driver  model.DriverRecord `json:"driver"`
	Summary *Summary           `json:"summary,omitempty"`
}

// Report is the outcome of one run: every driver in mapping order plus the
// overall average of all laps.
type Report struct {
	Races          []string `json:"races"`
	Rows           []Row    `json:"rows"`
	OverallAverage float64  `json:"overallAverage"`
}

func Build(drivers *model.Drivers, rs model.RaceSet) Report {
	rows := make([]Row, 0, drivers.Len())
	drivers.Each(func(code string, r *model.DriverRecord) {
		row := Row{Code: code, Driver: *r}
		if s, ok := Summarize(r); ok {
			row.Summary = &s
		}
		rows = append(rows, row)
	})

	races := append([]string{}, rs.Races...)
	return Report{
		Races:          races,
		Rows:           rows,
		OverallAverage: OverallAverage(rs.Laps),
	}
}

// LastRace is the name used to title the results; laps of earlier races
// are blended in.
func (r Report) LastRace() string {
	if len(r.Races) == 0 {
		return ""
	}
	return r.Races[len(r.Races)-1]
}

// SortedByFastest returns the drivers with laps from fastest to slowest
// fastest lap. Ties keep mapping order.
func (r Report) SortedByFastest() []Row {
	sorted := make([]Row, 0, len(r.Rows))
	for _, row := range r.Rows {
		if row.Summary != nil {
			sorted = append(sorted, row)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Summary.Fastest < sorted[j].Summary.Fastest
	})
	return sorted
}

func (r Report) Top(n int) []Row {
	sorted := r.SortedByFastest()
	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		return sorted[:n]
	}
	return sorted
}

// BestLap is the fastest lap over all drivers.
func (r Report) BestLap() (float64, bool) {
	sorted := r.SortedByFastest()
	if len(sorted) == 0 {
		return 0, false
	}
	return sorted[0].Summary.Fastest, true
}

// Gap is how far a row's fastest lap is from the best lap of the report.
func (r Report) Gap(row Row) (float64, bool) {
	if row.Summary == nil {
		return 0, false
	}
	best, ok := r.BestLap()
	if !ok {
		return 0, false
	}
	return row.Summary.Fastest - best, true
}
