package browser

import (
	"log/slog"
	"time"
)

const (
	// DefaultTimeout is the default timeout of a single browser action.
	DefaultTimeout = 30 * time.Second
	// DefaultScreenshotDir is where failure screenshots are written.
	DefaultScreenshotDir = "test-results/screenshots"
)

// sessionManagerOptions holds configuration for a SessionManager.
// This is unexported; use Option functions to configure.
type sessionManagerOptions struct {
	ViewportWidth  int
	ViewportHeight int
	Locale         string
	// Timeout is applied as default timeout to every page of a session.
	Timeout       time.Duration
	ScreenshotDir string
	// MaxSessions is the maximum number of concurrently open sessions (0 = unlimited).
	MaxSessions int
	Logger      *slog.Logger
}

// Option configures a SessionManager.
type Option func(*sessionManagerOptions)

// WithViewport sets the viewport size of new sessions.
// Default is 1920x1280.
func WithViewport(width, height int) Option {
	return func(o *sessionManagerOptions) {
		o.ViewportWidth = width
		o.ViewportHeight = height
	}
}

// WithLocale sets the browser locale of new sessions.
func WithLocale(locale string) Option {
	return func(o *sessionManagerOptions) {
		o.Locale = locale
	}
}

// WithTimeout sets the default action timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *sessionManagerOptions) {
		o.Timeout = timeout
	}
}

// WithScreenshotDir sets the directory for screenshots.
func WithScreenshotDir(dir string) Option {
	return func(o *sessionManagerOptions) {
		o.ScreenshotDir = dir
	}
}

// WithMaxSessions limits the number of concurrently open sessions.
// Default is 0 (unlimited).
func WithMaxSessions(limit int) Option {
	return func(o *sessionManagerOptions) {
		o.MaxSessions = limit
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *sessionManagerOptions) {
		o.Logger = logger
	}
}
