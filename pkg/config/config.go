package config

import (
	"os"
	"strconv"
	"strings"

	"lapstats/pkg/render"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const DefaultListen = ":8080"

type Telegram struct {
	Token   string  `yaml:"token"`
	ChatIDs []int64 `yaml:"chat_ids"`
}

// Config holds every setting of a run. Values come from the defaults, an
// optional YAML file, the environment and finally command line flags.
type Config struct {
	Metrics    []string `yaml:"metrics"`
	Views      []string `yaml:"views"`
	Top        int      `yaml:"top"`
	Format     string   `yaml:"format"`
	TimeFormat string   `yaml:"time_format"`

	Archive  string   `yaml:"archive"`
	Notify   bool     `yaml:"notify"`
	Listen   string   `yaml:"listen"`
	LogLevel string   `yaml:"log_level"`
	Telegram Telegram `yaml:"telegram"`
}

func Default() *Config {
	opts := render.DefaultOptions()
	cfg := &Config{
		Top:        opts.Top,
		Format:     string(opts.Format),
		TimeFormat: string(opts.TimeFormat),
		Listen:     DefaultListen,
		LogLevel:   logrus.InfoLevel.String(),
	}
	for _, m := range opts.Metrics {
		cfg.Metrics = append(cfg.Metrics, string(m))
	}
	for _, v := range opts.Views {
		cfg.Views = append(cfg.Views, string(v))
	}
	return cfg
}

// Load reads the YAML file at path over the defaults and applies the
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing config %s", path)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if level := os.Getenv("LAPSTATS_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		c.Telegram.Token = token
	}
	if ids := os.Getenv("TELEGRAM_CHAT_IDS"); ids != "" {
		chatIDs, err := ParseChatIDs(ids)
		if err != nil {
			return errors.Wrap(err, "TELEGRAM_CHAT_IDS")
		}
		c.Telegram.ChatIDs = chatIDs
	}
	if addr := os.Getenv("WEBSERVER_ADDRESS"); addr != "" {
		c.Listen = addr
	}
	return nil
}

// ParseChatIDs parses a comma separated list of telegram chat ids.
func ParseChatIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.Errorf("invalid chat id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// RenderOptions converts the presentation settings, validating them.
func (c *Config) RenderOptions() (render.Options, error) {
	var opts render.Options
	var err error

	if opts.Metrics, err = render.ParseMetrics(c.Metrics); err != nil {
		return opts, err
	}
	if opts.Views, err = render.ParseViews(c.Views); err != nil {
		return opts, err
	}
	if opts.Format, err = render.ParseFormat(c.Format); err != nil {
		return opts, err
	}
	if opts.TimeFormat, err = render.ParseTimeFormat(c.TimeFormat); err != nil {
		return opts, err
	}
	opts.Top = c.Top
	return opts, opts.Validate()
}

func (c *Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	return level, errors.Wrap(err, "log level")
}

// Validate checks the settings that the sinks depend on.
func (c *Config) Validate() error {
	if _, err := c.RenderOptions(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Notify {
		if c.Telegram.Token == "" {
			return errors.New("notification requested but no telegram token configured (set TELEGRAM_TOKEN)")
		}
		if len(c.Telegram.ChatIDs) == 0 {
			return errors.New("notification requested but no telegram chat ids configured (set TELEGRAM_CHAT_IDS)")
		}
	}
	return nil
}
