package main

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"lapstats/pkg/archive"
	"lapstats/pkg/helper"
	"lapstats/pkg/render"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
)

func printHistory(w io.Writer, dbPath string, format render.Format, args []string) error {
	if dbPath == "" {
		return errors.New("no archive configured (set --archive or archive in the config file)")
	}
	m, err := archive.NewManager(dbPath)
	if err != nil {
		return err
	}
	defer m.Close()

	if len(args) == 1 {
		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return errors.Errorf("invalid run id %q", args[0])
		}
		entries, err := m.Entries(runID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return errors.Errorf("run %d not found", runID)
		}
		if format == render.FormatJSON {
			return writeJSON(w, entries)
		}
		return writeTable(w, entriesTable(entries), format)
	}

	runs, err := m.ListRuns()
	if err != nil {
		return err
	}
	if format == render.FormatJSON {
		return writeJSON(w, runs)
	}
	return writeTable(w, runsTable(runs), format)
}

func runsTable(runs []archive.Run) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Run", "Date", "Races", "Drivers", "Best Lap", "Overall Average"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			strings.Join(r.Races, ", "),
			r.Drivers,
			helper.ToLapTime(r.BestLap),
			helper.ToLapTime(r.OverallAverage),
		})
	}
	return t
}

func entriesTable(entries []archive.Entry) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Code", "Driver", "Car Number", "Team", "Laps", "Fastest Lap Time", "Average Lap Time", "Slowest Lap Time"})
	for _, e := range entries {
		carNumber := "N/A"
		if e.CarNumber != nil {
			carNumber = strconv.Itoa(*e.CarNumber)
		}
		t.AppendRow(table.Row{e.Code, e.Name, carNumber, e.Team, e.Laps, lapTime(e.Fastest), lapTime(e.Average), lapTime(e.Slowest)})
	}
	return t
}

func lapTime(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return helper.ToLapTime(*v)
}

func writeTable(w io.Writer, t table.Writer, format render.Format) error {
	_, err := io.WriteString(w, render.Output(t, format)+"\n")
	return errors.Wrap(err, "writing history")
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding history")
}
