package model

import "fmt"

const (
	// CodeLength is the width of the driver code prefix on every lap line.
	CodeLength = 3

	UnknownName = "Unknown"
	UnknownTeam = "Unknown"
)

type DriverRecord struct {
	CarNumber *int      `json:"carNumber"`
	Name      string    `json:"name"`
	Team      string    `json:"team"`
	LapTimes  []float64 `json:"lapTimes,omitempty"`
	// HasLaps tells an absent lap sequence apart from an empty one.
	HasLaps bool `json:"hasLaps"`
}

func (d DriverRecord) CarNumberString() string {
	if d.CarNumber == nil {
		return "N/A"
	}
	return fmt.Sprint(*d.CarNumber)
}

// Placeholder is the record used for codes that only show up in lap data.
func Placeholder(lapTimes []float64) *DriverRecord {
	return &DriverRecord{
		Name:     UnknownName,
		Team:     UnknownTeam,
		LapTimes: lapTimes,
		HasLaps:  true,
	}
}

// Drivers is a code -> record mapping that remembers insertion order.
// Setting an existing code replaces the record but keeps its position.
type Drivers struct {
	codes  []string
	byCode map[string]*DriverRecord
}

func NewDrivers() *Drivers {
	return &Drivers{
		byCode: make(map[string]*DriverRecord),
	}
}

func (d *Drivers) Set(code string, record *DriverRecord) {
	if _, exists := d.byCode[code]; !exists {
		d.codes = append(d.codes, code)
	}
	d.byCode[code] = record
}

func (d *Drivers) Get(code string) (*DriverRecord, bool) {
	r, ok := d.byCode[code]
	return r, ok
}

func (d *Drivers) Len() int {
	return len(d.codes)
}

// Codes returns the driver codes in insertion order.
func (d *Drivers) Codes() []string {
	codes := make([]string, len(d.codes))
	copy(codes, d.codes)
	return codes
}

// Each calls fn for every record in insertion order.
func (d *Drivers) Each(fn func(code string, record *DriverRecord)) {
	for _, code := range d.codes {
		fn(code, d.byCode[code])
	}
}

// Clone copies the mapping and every record in it, lap slices included.
func (d *Drivers) Clone() *Drivers {
	c := NewDrivers()
	d.Each(func(code string, r *DriverRecord) {
		cp := *r
		if r.CarNumber != nil {
			n := *r.CarNumber
			cp.CarNumber = &n
		}
		if r.LapTimes != nil {
			cp.LapTimes = append([]float64(nil), r.LapTimes...)
		}
		c.Set(code, &cp)
	})
	return c
}

// LapData maps driver codes to lap times in order of first appearance.
type LapData struct {
	codes  []string
	byCode map[string][]float64
}

func NewLapData() *LapData {
	return &LapData{
		byCode: make(map[string][]float64),
	}
}

func (l *LapData) Append(code string, lapTime float64) {
	if _, exists := l.byCode[code]; !exists {
		l.codes = append(l.codes, code)
	}
	l.byCode[code] = append(l.byCode[code], lapTime)
}

func (l *LapData) Times(code string) ([]float64, bool) {
	t, ok := l.byCode[code]
	return t, ok
}

func (l *LapData) Codes() []string {
	codes := make([]string, len(l.codes))
	copy(codes, l.codes)
	return codes
}

func (l *LapData) Len() int {
	return len(l.codes)
}

func (l *LapData) Each(fn func(code string, times []float64)) {
	for _, code := range l.codes {
		fn(code, l.byCode[code])
	}
}

// RaceSet pairs the race names, in input order, with the laps of every
// input file. Laps are not partitioned by race.
type RaceSet struct {
	Races []string
	Laps  *LapData
}
