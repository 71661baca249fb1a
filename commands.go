package main

import (
	"fmt"
	"io"

	"lapstats/pkg/config"
	"lapstats/pkg/webserver"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const usageLine = "Usage: lapstats <roster_file> <lap_file_1> [<lap_file_2> ...]"

type flags struct {
	configPath string
	metrics    []string
	views      []string
	top        int
	format     string
	timeFormat string
	archive    string
	notify     bool
	verbose    bool
	listen     string
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	flags  flags
	// status is the exit status of a command that ran to completion.
	status int
}

func (a *app) rootCommand() *cobra.Command {
	defaults := config.Default()

	root := &cobra.Command{
		Use:           "lapstats <roster_file> <lap_file_1> [<lap_file_2> ...]",
		Short:         "Lap time statistics for a roster of drivers",
		Long:          "Merges a driver roster with one or more lap time files and prints per-driver lap statistics.",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.runReport,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "YAML config file")
	pf.StringSliceVar(&a.flags.metrics, "metrics", defaults.Metrics, "metrics of the results view (fastest, average, range, slowest, laps, gap)")
	pf.StringSliceVar(&a.flags.views, "views", defaults.Views, "views to print in order (sorted, results, top, detail)")
	pf.IntVar(&a.flags.top, "top", defaults.Top, "number of drivers in the top view")
	pf.StringVarP(&a.flags.format, "format", "f", defaults.Format, "output format (table, markdown, csv, html, json)")
	pf.StringVar(&a.flags.timeFormat, "time-format", defaults.TimeFormat, "lap time format (seconds, clock)")
	pf.StringVar(&a.flags.archive, "archive", "", "sqlite database to archive the report in")
	pf.BoolVar(&a.flags.notify, "notify", false, "send a summary to the configured telegram chats")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")

	serve := &cobra.Command{
		Use:   "serve <roster_file> <lap_file_1> [<lap_file_2> ...]",
		Short: "Serve the report over HTTP and WebSocket",
		Args:  cobra.ArbitraryArgs,
		RunE:  a.runServe,
	}
	serve.Flags().StringVar(&a.flags.listen, "listen", "", fmt.Sprintf("listen address (default %s)", webserver.DefaultAddress))

	history := &cobra.Command{
		Use:   "history [run_id]",
		Short: "List archived runs, or the drivers of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runHistory,
	}

	root.AddCommand(serve, history)
	return root
}

// loadConfig layers the command line flags over the config file and the
// environment.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("metrics") {
		cfg.Metrics = a.flags.metrics
	}
	if fs.Changed("views") {
		cfg.Views = a.flags.views
	}
	if fs.Changed("top") {
		cfg.Top = a.flags.top
	}
	if fs.Changed("format") {
		cfg.Format = a.flags.format
	}
	if fs.Changed("time-format") {
		cfg.TimeFormat = a.flags.timeFormat
	}
	if fs.Changed("archive") {
		cfg.Archive = a.flags.archive
	}
	if fs.Changed("notify") {
		cfg.Notify = a.flags.notify
	}
	if fs.Lookup("listen") != nil && fs.Changed("listen") {
		cfg.Listen = a.flags.listen
	}
	if a.flags.verbose {
		cfg.LogLevel = logrus.DebugLevel.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	level, _ := cfg.Level()
	logrus.SetLevel(level)
	return cfg, nil
}

func (a *app) checkInputs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.stderr, usageLine)
		fmt.Fprint(a.stderr, cmd.UsageString())
		return errUsage
	}
	return nil
}

func (a *app) runReport(cmd *cobra.Command, args []string) error {
	if err := a.checkInputs(cmd, args); err != nil {
		return err
	}
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, _ := cfg.RenderOptions()

	report, err := buildReport(args[0], args[1:])
	if err != nil {
		return err
	}
	if err := printReport(a.stdout, report, opts); err != nil {
		return err
	}

	if !publish(cmd.Context(), cfg, report) {
		a.status = 1
	}
	return nil
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	if err := a.checkInputs(cmd, args); err != nil {
		return err
	}
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, _ := cfg.RenderOptions()

	report, err := buildReport(args[0], args[1:])
	if err != nil {
		return err
	}
	if !publish(cmd.Context(), cfg, report) {
		a.status = 1
	}

	return webserver.NewManager(report, opts).Serve(cmd.Context(), cfg.Listen)
}

func (a *app) runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, _ := cfg.RenderOptions()

	return printHistory(a.stdout, cfg.Archive, opts.Format, args)
}
