package archive

import (
	"database/sql"
	"strings"
	"time"
)

func buildCreateTables() string {
	return `CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		races TEXT NOT NULL,
		overall_average REAL NOT NULL);
	CREATE TABLE IF NOT EXISTS lap_stats (
		run_id INTEGER NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		team TEXT NOT NULL,
		car_number INTEGER,
		laps INTEGER NOT NULL,
		fastest REAL,
		average REAL,
		slowest REAL,
		lap_range REAL,
		PRIMARY KEY (run_id, code));`
}

func buildInsertRunCommand() string {
	return `INSERT INTO runs (created_at, races, overall_average) VALUES (?, ?, ?)`
}

func buildInsertLapStatsCommand() string {
	fields := "run_id, position, code, name, team, car_number, laps, fastest, average, slowest, lap_range"
	return `INSERT INTO lap_stats (` + fields + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
}

func buildSelectRunsCommand() (string, func(*sql.Rows) ([]Run, error)) {
	fields := "r.id, r.created_at, r.races, r.overall_average, COUNT(s.code), MIN(s.fastest)"
	return `SELECT ` + fields + ` FROM runs r LEFT JOIN lap_stats s ON s.run_id = r.id
		GROUP BY r.id ORDER BY r.id DESC`, processSelectRunsRows
}

func processSelectRunsRows(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var run Run
		var createdAt string
		var races string
		var bestLap sql.NullFloat64
		err := rows.Scan(&run.ID, &createdAt, &races, &run.OverallAverage, &run.Drivers, &bestLap)
		if err != nil {
			return runs, err
		}
		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return runs, err
		}
		if races != "" {
			run.Races = strings.Split(races, racesSeparator)
		}
		if bestLap.Valid {
			run.BestLap = bestLap.Float64
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func buildSelectLapStatsCommand() (string, func(*sql.Rows) ([]Entry, error)) {
	fields := "code, name, team, car_number, laps, fastest, average, slowest, lap_range"
	return `SELECT ` + fields + ` FROM lap_stats WHERE run_id = ? ORDER BY position`, processSelectLapStatsRows
}

func processSelectLapStatsRows(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var carNumber sql.NullInt64
		var fastest, average, slowest, lapRange sql.NullFloat64
		err := rows.Scan(&e.Code, &e.Name, &e.Team, &carNumber, &e.Laps, &fastest, &average, &slowest, &lapRange)
		if err != nil {
			return entries, err
		}
		if carNumber.Valid {
			n := int(carNumber.Int64)
			e.CarNumber = &n
		}
		e.Fastest = nullable(fastest)
		e.Average = nullable(average)
		e.Slowest = nullable(slowest)
		e.Range = nullable(lapRange)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullable(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
