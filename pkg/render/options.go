package render

import (
	"strings"

	"github.com/pkg/errors"
)

type Metric string

const (
	MetricFastest Metric = "fastest"
	MetricAverage Metric = "average"
	MetricRange   Metric = "range"
	MetricSlowest Metric = "slowest"
	MetricLaps    Metric = "laps"
	MetricGap     Metric = "gap"
)

var metricHeaders = map[Metric]string{
	MetricFastest: "Fastest Lap Time",
	MetricAverage: "Average Lap Time",
	MetricRange:   "Lap Time Range",
	MetricSlowest: "Slowest Lap Time",
	MetricLaps:    "Laps",
	MetricGap:     "Gap",
}

type View string

const (
	ViewSorted  View = "sorted"
	ViewResults View = "results"
	ViewTop     View = "top"
	ViewDetail  View = "detail"
)

var knownViews = map[View]bool{ViewSorted: true, ViewResults: true, ViewTop: true, ViewDetail: true}

type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

var knownFormats = map[Format]bool{FormatTable: true, FormatMarkdown: true, FormatCSV: true, FormatHTML: true, FormatJSON: true}

type TimeFormat string

const (
	TimeSeconds TimeFormat = "seconds"
	TimeClock   TimeFormat = "clock"
)

type Options struct {
	Metrics    []Metric
	Views      []View
	Top        int
	Format     Format
	TimeFormat TimeFormat
}

func DefaultOptions() Options {
	return Options{
		Metrics:    []Metric{MetricFastest, MetricAverage},
		Views:      []View{ViewSorted, ViewResults},
		Top:        3,
		Format:     FormatTable,
		TimeFormat: TimeSeconds,
	}
}

func ParseMetrics(names []string) ([]Metric, error) {
	metrics := make([]Metric, 0, len(names))
	for _, name := range names {
		m := Metric(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := metricHeaders[m]; !ok {
			return nil, errors.Errorf("unknown metric %q", name)
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

func ParseViews(names []string) ([]View, error) {
	views := make([]View, 0, len(names))
	for _, name := range names {
		v := View(strings.ToLower(strings.TrimSpace(name)))
		if !knownViews[v] {
			return nil, errors.Errorf("unknown view %q", name)
		}
		views = append(views, v)
	}
	return views, nil
}

func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if !knownFormats[f] {
		return "", errors.Errorf("unknown format %q", name)
	}
	return f, nil
}

func ParseTimeFormat(name string) (TimeFormat, error) {
	switch tf := TimeFormat(strings.ToLower(strings.TrimSpace(name))); tf {
	case TimeSeconds, TimeClock:
		return tf, nil
	}
	return "", errors.Errorf("unknown time format %q", name)
}

func (o Options) Validate() error {
	if len(o.Views) == 0 {
		return errors.New("at least one view is required")
	}
	if o.Top < 0 {
		return errors.Errorf("top must not be negative, got %d", o.Top)
	}
	if !knownFormats[o.Format] {
		return errors.Errorf("unknown format %q", o.Format)
	}
	if _, err := ParseTimeFormat(string(o.TimeFormat)); err != nil {
		return err
	}
	for _, m := range o.Metrics {
		if _, ok := metricHeaders[m]; !ok {
			return errors.Errorf("unknown metric %q", m)
		}
	}
	for _, v := range o.Views {
		if !knownViews[v] {
			return errors.Errorf("unknown view %q", v)
		}
	}
	return nil
}
