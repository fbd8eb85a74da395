// Package shopcheck runs end-to-end scenarios against a shop in a real browser
// and keeps a journal of every run for reporting.
package shopcheck

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	slogmulti "github.com/samber/slog-multi"

	"github.com/networkteam/shopcheck/browser"
	"github.com/networkteam/shopcheck/campaigns"
	"github.com/networkteam/shopcheck/internal/config"
	"github.com/networkteam/shopcheck/journal"
	"github.com/networkteam/shopcheck/report"
	"github.com/networkteam/shopcheck/scenario"
)

// Suite wires configuration, browser, journal and runner.
type Suite struct {
	config   *config.Config
	launcher *browser.Launcher
	sessions scenario.SessionOpener
	journal  *journal.Journal
	runner   *scenario.Runner
	logger   *slog.Logger
	env      *campaigns.Env
}

type Options struct {
	// ConfigPath is the directory of an optional shopcheck.yaml.
	// Default: "", only environment variables and defaults are used
	ConfigPath string
	// Config is used instead of loading the configuration.
	Config *config.Config

	// LogHandler receives log records in addition to the journal.
	// Default: nil, will use a text handler on stderr
	LogHandler slog.Handler
	// LogLevel is the minimum level of log records kept in the journal.
	LogLevel slog.Level

	// Sessions replaces the browser, e.g. with scenario.FakeSessions.
	// Default: nil, will launch the configured browser
	Sessions scenario.SessionOpener
}

// New creates a suite. Unless Options.Sessions is set, the configured browser is launched.
func New(options Options) (*Suite, error) {
	cfg := options.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(options.ConfigPath)
		if err != nil {
			return nil, err
		}
	}

	j := journal.New(cfg.Journal.Capacity)

	logHandler := options.LogHandler
	if logHandler == nil {
		logHandler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(slogmulti.Fanout(
		logHandler,
		journal.NewHandler(j, journal.HandlerOptions{Level: options.LogLevel}),
	))

	s := &Suite{
		config:   cfg,
		sessions: options.Sessions,
		journal:  j,
		logger:   logger,
		env:      campaigns.NewEnv(cfg),
	}

	if s.sessions == nil {
		launcher, err := browser.Launch(browser.LaunchOptions{
			Browser:  cfg.Browser.Name,
			Headless: cfg.Browser.Headless,
			SlowMo:   float64(cfg.Browser.SlowMo.Milliseconds()),
			Install:  cfg.Browser.Install,
		})
		if err != nil {
			j.Close()
			return nil, err
		}
		s.launcher = launcher
		s.sessions = browser.NewSessionManager(launcher.Browser,
			browser.WithLocale(cfg.Browser.Locale),
			browser.WithTimeout(cfg.Timeout),
			browser.WithScreenshotDir(cfg.Artifacts.Screenshots),
			browser.WithLogger(logger),
		)
		logger.Info("Launched browser", slog.String("browser", cfg.Browser.Name), slog.Bool("headless", cfg.Browser.Headless))
	}

	s.runner = scenario.NewRunner(scenario.RunnerOptions{
		Sessions:         s.sessions,
		Logger:           logger,
		StepTimeout:      cfg.StepTimeout,
		CaptureOnFailure: cfg.Artifacts.CaptureOnFailure,
		Observer:         j,
	})

	return s, nil
}

// Config returns the loaded configuration.
func (s *Suite) Config() *config.Config {
	return s.config
}

// Env returns the campaign environment built from the configuration.
func (s *Suite) Env() *campaigns.Env {
	return s.env
}

// Journal returns the journal of all runs of the suite.
func (s *Suite) Journal() *journal.Journal {
	return s.journal
}

// Logger returns the logger writing to the log handler and the journal.
func (s *Suite) Logger() *slog.Logger {
	return s.logger
}

// Run runs one scenario with its pre- and post-conditions.
func (s *Suite) Run(ctx context.Context, sc *scenario.Scenario) *scenario.Result {
	return s.runner.Run(ctx, sc)
}

// RunAll runs scenarios with the configured parallelism. Results are in input order.
func (s *Suite) RunAll(ctx context.Context, scenarios []*scenario.Scenario) []*scenario.Result {
	return s.runner.RunAll(ctx, scenarios, s.config.Runner.Parallelism)
}

// ReportHandler serves the run report below pathPrefix.
func (s *Suite) ReportHandler(pathPrefix string) http.Handler {
	return report.NewHandler(s.journal, report.WithPathPrefix(pathPrefix))
}

// WriteReport writes the run report as a single HTML file.
func (s *Suite) WriteReport(ctx context.Context, path string) error {
	return report.WriteFile(ctx, path, s.journal)
}

// Close closes all sessions, the browser and the journal.
func (s *Suite) Close() error {
	var errs []error
	if sm, ok := s.sessions.(*browser.SessionManager); ok {
		errs = append(errs, sm.Close())
	}
	if s.launcher != nil {
		errs = append(errs, s.launcher.Close())
	}
	s.journal.Close()
	return errors.Join(errs...)
}
