package notification

import (
	"context"
	"fmt"
	"html"
	"strings"

	"lapstats/pkg/render"
	"lapstats/pkg/stats"

	"github.com/nikoksr/notify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Manager struct {
	ctx      context.Context
	notifier *notify.Notify
	services int
}

func NewManager(ctx context.Context, services ...notify.Notifier) *Manager {
	return &Manager{
		ctx:      ctx,
		notifier: notify.NewWithServices(services...),
		services: len(services),
	}
}

// SendSummary pushes the top n drivers of the report to every service.
func (m *Manager) SendSummary(report stats.Report, n int) error {
	if m.services == 0 {
		return nil
	}

	subject, body, err := Summary(report, n)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"race": report.LastRace(), "services": m.services}).Info("sending lap statistics summary")
	if err := m.notifier.Send(m.ctx, subject, body); err != nil {
		return errors.Wrap(err, "sending summary")
	}
	return nil
}

// Summary builds the subject and HTML body of a summary message.
func Summary(report stats.Report, n int) (string, string, error) {
	opts := render.DefaultOptions()
	opts.Views = []render.View{render.ViewTop}
	opts.Top = n

	var b strings.Builder
	if err := render.New(opts).Render(&b, report); err != nil {
		return "", "", err
	}
	fmt.Fprintf(&b, "Overall Average Lap Time: %.3f", report.OverallAverage)

	subject := "Lap statistics: " + report.LastRace()
	body := "<pre>" + html.EscapeString(b.String()) + "</pre>"
	return subject, body, nil
}
