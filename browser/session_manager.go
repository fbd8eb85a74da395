package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/networkteam/shopcheck/scenario"
)

// ErrManagerClosed is returned by Open after Close.
var ErrManagerClosed = errors.New("session manager closed")

// ErrTooManySessions is returned by Open when the session limit is reached.
var ErrTooManySessions = errors.New("too many open sessions")

// ContextFactory creates browser contexts. It is implemented by playwright.Browser.
type ContextFactory interface {
	NewContext(options ...playwright.BrowserNewContextOptions) (playwright.BrowserContext, error)
}

// SessionManager opens isolated browser sessions and tracks them until they are closed.
type SessionManager struct {
	factory ContextFactory
	opts    sessionManagerOptions

	sessions   map[uuid.UUID]*Session
	sessionsMu sync.RWMutex
	closed     bool
}

var _ scenario.SessionOpener = (*SessionManager)(nil)

// NewSessionManager creates a SessionManager opening contexts from factory.
func NewSessionManager(factory ContextFactory, options ...Option) *SessionManager {
	opts := sessionManagerOptions{
		ViewportWidth:  1920,
		ViewportHeight: 1280,
		Timeout:        DefaultTimeout,
		ScreenshotDir:  DefaultScreenshotDir,
	}
	for _, o := range options {
		o(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &SessionManager{
		factory:  factory,
		opts:     opts,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Open creates a fresh browser context with one page.
func (sm *SessionManager) Open(ctx context.Context) (scenario.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, &scenario.EnvironmentError{Op: "opening session", Err: err}
	}

	sm.sessionsMu.Lock()
	defer sm.sessionsMu.Unlock()

	if sm.closed {
		return nil, &scenario.EnvironmentError{Op: "opening session", Err: ErrManagerClosed}
	}
	if sm.opts.MaxSessions > 0 && len(sm.sessions) >= sm.opts.MaxSessions {
		return nil, &scenario.EnvironmentError{Op: "opening session", Err: fmt.Errorf("%w (max %d)", ErrTooManySessions, sm.opts.MaxSessions)}
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  sm.opts.ViewportWidth,
			Height: sm.opts.ViewportHeight,
		},
		AcceptDownloads:   playwright.Bool(true),
		IgnoreHttpsErrors: playwright.Bool(true),
	}
	if sm.opts.Locale != "" {
		contextOpts.Locale = playwright.String(sm.opts.Locale)
	}

	bc, err := sm.factory.NewContext(contextOpts)
	if err != nil {
		return nil, &scenario.EnvironmentError{Op: "creating browser context", Err: err}
	}
	bc.SetDefaultTimeout(float64(sm.opts.Timeout.Milliseconds()))

	page, err := bc.NewPage()
	if err != nil {
		_ = bc.Close()
		return nil, &scenario.EnvironmentError{Op: "creating page", Err: err}
	}

	id, err := uuid.NewV4()
	if err != nil {
		_ = bc.Close()
		return nil, &scenario.EnvironmentError{Op: "generating session id", Err: err}
	}

	s := &Session{
		id:            id,
		context:       bc,
		page:          page,
		screenshotDir: sm.opts.ScreenshotDir,
		release:       sm.release,
	}
	sm.sessions[id] = s

	sm.opts.Logger.DebugContext(ctx, "Opened browser session", slog.String("session", id.String()))

	return s, nil
}

// Get returns an open session, or nil if not found.
func (sm *SessionManager) Get(id uuid.UUID) *Session {
	sm.sessionsMu.RLock()
	defer sm.sessionsMu.RUnlock()

	return sm.sessions[id]
}

// Len returns the number of open sessions.
func (sm *SessionManager) Len() int {
	sm.sessionsMu.RLock()
	defer sm.sessionsMu.RUnlock()

	return len(sm.sessions)
}

// Close closes all remaining sessions and refuses new ones.
func (sm *SessionManager) Close() error {
	sm.sessionsMu.Lock()
	sm.closed = true
	remaining := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		remaining = append(remaining, s)
	}
	sm.sessionsMu.Unlock()

	var errs []error
	for _, s := range remaining {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing session %s: %w", s.ID(), err))
		}
	}
	return errors.Join(errs...)
}

func (sm *SessionManager) release(id uuid.UUID) {
	sm.sessionsMu.Lock()
	delete(sm.sessions, id)
	sm.sessionsMu.Unlock()

	sm.opts.Logger.Debug("Closed browser session", slog.String("session", id.String()))
}
