package render

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"lapstats/pkg/helper"
	"lapstats/pkg/stats"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
)

const notAvailable = "N/A"

type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render writes every configured view of the report to w.
func (r *Renderer) Render(w io.Writer, report stats.Report) error {
	if r.opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding report")
	}

	var b strings.Builder
	for i, view := range r.opts.Views {
		if i > 0 {
			b.WriteString("\n")
		}
		if view == ViewResults {
			r.line(&b, "Races: "+strings.Join(report.Races, ", "))
		}
		r.line(&b, r.Heading(view, report))
		b.WriteString(Output(r.Table(view, report), r.opts.Format))
		b.WriteString("\n")
		if view == ViewResults {
			r.line(&b, fmt.Sprintf("Overall Average Lap Time: %.3f", report.OverallAverage))
		}
	}
	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "writing report")
}

func (r *Renderer) line(b *strings.Builder, text string) {
	if r.opts.Format == FormatHTML {
		fmt.Fprintf(b, "<p>%s</p>\n", html.EscapeString(text))
		return
	}
	b.WriteString(text)
	b.WriteString("\n")
}

// Output renders t in the given format; JSON and table both use the text form.
func Output(t table.Writer, f Format) string {
	switch f {
	case FormatMarkdown:
		return t.RenderMarkdown()
	case FormatCSV:
		return t.RenderCSV()
	case FormatHTML:
		return t.RenderHTML()
	}
	return t.Render()
}

func (r *Renderer) Heading(view View, report stats.Report) string {
	switch view {
	case ViewSorted:
		return "Sorted Fastest Lap Times (from fastest to slowest):"
	case ViewResults:
		return fmt.Sprintf("Results for %s:", report.LastRace())
	case ViewTop:
		return fmt.Sprintf("Top %d Fastest Drivers:", r.opts.Top)
	case ViewDetail:
		return "Driver Details:"
	}
	return ""
}

// Table builds the go-pretty table of one view.
func (r *Renderer) Table(view View, report stats.Report) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)

	switch view {
	case ViewSorted:
		t.AppendHeader(table.Row{"Code", "Name", "Team", "Car Number", "Fastest Lap Time"})
		for _, row := range report.SortedByFastest() {
			t.AppendRow(table.Row{row.Code, row.Driver.Name, row.Driver.Team, row.Driver.CarNumberString(), r.lapTime(row.Summary.Fastest)})
		}
	case ViewResults:
		header := table.Row{"Driver", "Car Number", "Team"}
		for _, m := range r.opts.Metrics {
			header = append(header, metricHeaders[m])
		}
		t.AppendHeader(header)
		for _, row := range report.Rows {
			values := table.Row{row.Driver.Name, row.Driver.CarNumberString(), row.Driver.Team}
			for _, m := range r.opts.Metrics {
				values = append(values, r.metric(m, row, report))
			}
			t.AppendRow(values)
		}
	case ViewTop:
		t.AppendHeader(table.Row{"Rank", "Driver", "Car Number", "Team", "Fastest Lap Time"})
		for i, row := range report.Top(r.opts.Top) {
			t.AppendRow(table.Row{i + 1, row.Driver.Name, row.Driver.CarNumberString(), row.Driver.Team, r.lapTime(row.Summary.Fastest)})
		}
	case ViewDetail:
		t.AppendHeader(table.Row{"Driver", "Car Number", "Team", "Laps Completed", "Slowest Lap Time"})
		for _, row := range report.Rows {
			if row.Summary == nil {
				continue
			}
			t.AppendRow(table.Row{row.Driver.Name, row.Driver.CarNumberString(), row.Driver.Team, row.Summary.Laps, r.lapTime(row.Summary.Slowest)})
		}
	}
	return t
}

func (r *Renderer) metric(m Metric, row stats.Row, report stats.Report) string {
	if row.Summary == nil {
		return notAvailable
	}
	switch m {
	case MetricFastest:
		return r.lapTime(row.Summary.Fastest)
	case MetricAverage:
		return r.lapTime(row.Summary.Average)
	case MetricSlowest:
		return r.lapTime(row.Summary.Slowest)
	case MetricRange:
		return helper.ToLapTime(row.Summary.Range)
	case MetricLaps:
		return fmt.Sprint(row.Summary.Laps)
	case MetricGap:
		gap, _ := report.Gap(row)
		return helper.SecondsToDiff(gap)
	}
	return notAvailable
}

func (r *Renderer) lapTime(seconds float64) string {
	if r.opts.TimeFormat == TimeClock {
		return helper.SecondsToMinutes(seconds)
	}
	return helper.ToLapTime(seconds)
}
