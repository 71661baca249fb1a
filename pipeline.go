package main

import (
	"context"
	"io"

	"lapstats/pkg/archive"
	"lapstats/pkg/config"
	"lapstats/pkg/drivers"
	"lapstats/pkg/laps"
	"lapstats/pkg/notification"
	"lapstats/pkg/render"
	"lapstats/pkg/roster"
	"lapstats/pkg/stats"

	"github.com/sirupsen/logrus"
)

// buildReport loads, merges and summarises the input files. Any file level
// failure aborts before a report exists.
func buildReport(rosterPath string, lapPaths []string) (stats.Report, error) {
	drv, err := roster.Load(rosterPath)
	if err != nil {
		return stats.Report{}, err
	}
	raceSet, err := laps.Load(lapPaths)
	if err != nil {
		return stats.Report{}, err
	}

	merged := drivers.Merge(drv, raceSet.Laps)
	logrus.WithFields(logrus.Fields{
		"drivers": merged.Len(),
		"races":   len(raceSet.Races),
	}).Debug("merged roster with lap times")

	return stats.Build(merged, raceSet), nil
}

func printReport(w io.Writer, report stats.Report, opts render.Options) error {
	return render.New(opts).Render(w, report)
}

// publish hands the report to the configured sinks. It reports false when
// any of them failed.
func publish(ctx context.Context, cfg *config.Config, report stats.Report) bool {
	ok := true

	if cfg.Archive != "" {
		if err := archiveReport(cfg.Archive, report); err != nil {
			logrus.WithError(err).WithField("db", cfg.Archive).Error("could not archive report")
			ok = false
		}
	}

	if cfg.Notify {
		tg, err := notification.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatIDs)
		if err == nil {
			err = notification.NewManager(ctx, tg).SendSummary(report, cfg.Top)
		}
		if err != nil {
			logrus.WithError(err).Error("could not send notification")
			ok = false
		}
	}
	return ok
}

func archiveReport(dbPath string, report stats.Report) error {
	m, err := archive.NewManager(dbPath)
	if err != nil {
		return err
	}
	defer m.Close()

	_, err = m.Save(report)
	return err
}
