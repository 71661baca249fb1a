package helper

import (
	"fmt"
	"math"
)

// method to convert from seconds to minutes:seconds.milliseconds
func SecondsToMinutes(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	ms := int64(math.Round(seconds * 1000))
	minutes := ms / 60000
	ms -= minutes * 60000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, ms/1000, ms%1000)
}

// SecondsToDiff renders a gap to the leader, "-" for the leader itself.
func SecondsToDiff(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	return fmt.Sprintf("+%.3fs", seconds)
}

// method to convert to seconds and 3 milliseconds
func ToLapTime(t float64) string {
	return fmt.Sprintf("%.3f", t)
}
