package webserver

import (
	"bytes"
	"context"
	"html/template"
	"net"
	"net/http"
	"time"

	"lapstats/pkg/render"
	"lapstats/pkg/stats"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAddress  = ":8080"
	shutdownTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{} // use default options

// Message is the envelope pushed over the websocket.
type Message struct {
	Type string       `json:"type"`
	Body stats.Report `json:"body"`
}

// Manager serves one precomputed report over HTTP and WebSocket.
type Manager struct {
	r      *mux.Router
	report stats.Report
	opts   render.Options
}

func NewManager(report stats.Report, opts render.Options) *Manager {
	m := &Manager{
		r:      mux.NewRouter(),
		report: report,
		opts:   opts,
	}

	m.rootHandlers()
	return m
}

func (m *Manager) Handler() http.Handler {
	return m.r
}

func (m *Manager) rootHandlers() {
	m.r.HandleFunc("/", m.pageHandler()).Methods(http.MethodGet)
	m.r.HandleFunc("/api/report", m.reportHandler()).Methods(http.MethodGet)
	m.r.HandleFunc("/ws", m.websocketHandler())
}

// Routes lists the path templates of every registered route.
func (m *Manager) Routes() []string {
	var routes []string
	_ = m.r.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		if pathTemplate, err := route.GetPathTemplate(); err == nil {
			routes = append(routes, pathTemplate)
		}
		return nil
	})
	return routes
}

type pageData struct {
	Title   string
	Content template.HTML
}

func (m *Manager) pageHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := m.opts
		opts.Format = render.FormatHTML

		var content bytes.Buffer
		if err := render.New(opts).Render(&content, m.report); err != nil {
			logrus.WithError(err).Error("rendering page")
			http.Error(w, "could not render report", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := homeTemplate.Execute(w, pageData{
			Title:   "Lap statistics: " + m.report.LastRace(),
			Content: template.HTML(content.String()),
		})
		if err != nil {
			logrus.WithError(err).Error("executing page template")
		}
	}
}

func (m *Manager) reportHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := m.opts
		opts.Format = render.FormatJSON

		w.Header().Set("Content-Type", "application/json")
		if err := render.New(opts).Render(w, m.report); err != nil {
			logrus.WithError(err).Error("writing report")
		}
	}
}

func (m *Manager) websocketHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Warn("websocket upgrade")
			return
		}
		defer c.Close()

		if err := c.WriteJSON(Message{Type: "report", Body: m.report}); err != nil {
			logrus.WithError(err).Warn("websocket write")
			return
		}

		// the report never changes; drain until the client leaves
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				logrus.WithField("remote", r.RemoteAddr).Debug("websocket closed")
				return
			}
		}
	}
}

// Serve listens on addr until ctx is done, then shuts the server down.
func (m *Manager) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddress
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", addr)
	}
	return m.serve(ctx, ln)
}

func (m *Manager) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		Handler:           m.r,
	}

	errChan := make(chan error, 1)
	go func() {
		logrus.WithField("address", ln.Addr().String()).Info("webserver listening")
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return errors.Wrap(err, "webserver")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logrus.Info("webserver shutting down")
	return srv.Shutdown(shutdownCtx)
}

var homeTemplate = template.Must(template.New("").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{ .Title }}</title>
</head>
<body>
  <h1>{{ .Title }}</h1>
  {{ .Content }}
  <p id="status"></p>

  <script>
    const socket = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
    socket.addEventListener('message', (event) => {
      const msg = JSON.parse(event.data);
      if (msg.type === 'report') {
        document.getElementById('status').textContent = 'Live: ' + msg.body.rows.length + ' drivers';
      }
    });
  </script>
</body>
</html>
`))
