package notification

import (
	"context"
	"testing"

	"lapstats/pkg/model"
	"lapstats/pkg/stats"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	subjects []string
	messages []string
	err      error
}

func (f *fakeService) Send(_ context.Context, subject, message string) error {
	f.subjects = append(f.subjects, subject)
	f.messages = append(f.messages, message)
	return f.err
}

func testReport() stats.Report {
	ham, ver := 44, 1
	drivers := model.NewDrivers()
	drivers.Set("HAM", &model.DriverRecord{CarNumber: &ham, Name: "Lewis Hamilton", Team: "Mercedes", LapTimes: []float64{88.123, 87.456}, HasLaps: true})
	drivers.Set("VER", &model.DriverRecord{CarNumber: &ver, Name: "Max Verstappen", Team: "Red Bull & Co", LapTimes: []float64{86.789}, HasLaps: true})

	laps := model.NewLapData()
	laps.Append("HAM", 88.123)
	laps.Append("HAM", 87.456)
	laps.Append("VER", 86.789)
	return stats.Build(drivers, model.RaceSet{Races: []string{"Monaco GP"}, Laps: laps})
}

func TestSummary(t *testing.T) {
	subject, body, err := Summary(testReport(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Lap statistics: Monaco GP", subject)
	assert.True(t, len(body) > len("<pre></pre>"))
	assert.Contains(t, body, "<pre>")
	assert.Contains(t, body, "Top 1 Fastest Drivers:")
	assert.Contains(t, body, "Max Verstappen")
	assert.Contains(t, body, "Red Bull &amp; Co")
	assert.NotContains(t, body, "Lewis Hamilton")
	assert.Contains(t, body, "Overall Average Lap Time:")
}

func TestSendSummary(t *testing.T) {
	svc := &fakeService{}
	m := NewManager(context.Background(), svc)

	require.NoError(t, m.SendSummary(testReport(), 3))
	require.Len(t, svc.subjects, 1)
	assert.Equal(t, "Lap statistics: Monaco GP", svc.subjects[0])
	assert.Contains(t, svc.messages[0], "Lewis Hamilton")
}

func TestSendSummaryError(t *testing.T) {
	svc := &fakeService{err: errors.New("boom")}
	m := NewManager(context.Background(), svc)

	assert.Error(t, m.SendSummary(testReport(), 3))
}

func TestSendSummaryEveryService(t *testing.T) {
	first, second := &fakeService{}, &fakeService{}
	m := NewManager(context.Background(), first, second)

	require.NoError(t, m.SendSummary(testReport(), 2))
	require.Len(t, first.messages, 1)
	require.Len(t, second.messages, 1)
	assert.Equal(t, first.messages[0], second.messages[0])
	assert.Contains(t, second.messages[0], "Top 2 Fastest Drivers:")
}

func TestSendSummaryWithoutServices(t *testing.T) {
	assert.NoError(t, NewManager(context.Background()).SendSummary(testReport(), 3))
}
