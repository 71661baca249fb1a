package archive

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	"lapstats/pkg/stats"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const racesSeparator = "\x1f"

// Run is one archived report.
type Run struct {
	ID             int64
	CreatedAt      time.Time
	Races          []string
	OverallAverage float64
	Drivers        int
	BestLap        float64
}

// Entry is the archived statistics line of one driver within a run.
// Metric pointers are nil for drivers without laps.
type Entry struct {
	Code      string
	Name      string
	Team      string
	CarNumber *int
	Laps      int
	Fastest   *float64
	Average   *float64
	Slowest   *float64
	Range     *float64
}

type Manager struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

func NewManager(dbPath string) (*Manager, error) {
	if dbPath == "" {
		return nil, errors.New("no archive database path given")
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening database %s", dbPath)
	}

	_, err = db.Exec(buildCreateTables())
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "initialising database %s", dbPath)
	}
	logrus.WithField("db", dbPath).Debug("archive ready")

	return &Manager{
		db:  db,
		mu:  sync.Mutex{},
		now: time.Now,
	}, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.db.Close()
}

// Save stores the report as a new run and returns its id.
func (m *Manager) Save(report stats.Report) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, err := m.db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "starting transaction")
	}
	defer tx.Rollback()

	createdAt := m.now().UTC().Format(time.RFC3339)
	res, err := tx.Exec(buildInsertRunCommand(), createdAt, strings.Join(report.Races, racesSeparator), report.OverallAverage)
	if err != nil {
		return 0, errors.Wrap(err, "inserting run")
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "reading run id")
	}

	stmt, err := tx.Prepare(buildInsertLapStatsCommand())
	if err != nil {
		return 0, errors.Wrap(err, "preparing lap stats insert")
	}
	defer stmt.Close()

	for i, row := range report.Rows {
		var carNumber, fastest, average, slowest, lapRange interface{}
		laps := 0
		if row.Driver.CarNumber != nil {
			carNumber = *row.Driver.CarNumber
		}
		if s := row.Summary; s != nil {
			laps = s.Laps
			fastest, average, slowest, lapRange = s.Fastest, s.Average, s.Slowest, s.Range
		}
		_, err = stmt.Exec(runID, i, row.Code, row.Driver.Name, row.Driver.Team, carNumber, laps, fastest, average, slowest, lapRange)
		if err != nil {
			return 0, errors.Wrapf(err, "inserting lap stats for %s", row.Code)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing run")
	}
	logrus.WithFields(logrus.Fields{"run": runID, "drivers": len(report.Rows)}).Info("report archived")
	return runID, nil
}

// ListRuns returns the archived runs, newest first.
func (m *Manager) ListRuns() ([]Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	query, process := buildSelectRunsCommand()
	rows, err := m.db.Query(query)
	if err != nil {
		return nil, errors.Wrap(err, "querying runs")
	}
	return process(rows)
}

// Entries returns the driver lines of a run in report order.
func (m *Manager) Entries(runID int64) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	query, process := buildSelectLapStatsCommand()
	rows, err := m.db.Query(query, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying run %d", runID)
	}
	return process(rows)
}
