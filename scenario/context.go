package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Context is the handle a step receives. It carries the step deadline, the
// session's active page and the scenario state.
//
// Context implements require.TestingT, so steps can use testify:
//
//	require.Equal(sc, "Cart", title)
//
// A failed require aborts the step, a failed assert marks it failed when it returns.
type Context struct {
	context.Context

	session Session
	state   *State
	step    *Step
	tag     string
	logger  *slog.Logger

	failures []string
}

type failNow struct{}

type loggerKey struct{}

// LoggerFrom returns the logger of the step running with ctx, or the default logger.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// Page returns the active page of the session.
func (c *Context) Page() playwright.Page {
	return c.session.Page()
}

// SetPage makes page the active page for this and all following steps.
func (c *Context) SetPage(page playwright.Page) {
	c.session.SetPage(page)
}

// Session returns the scenario's session.
func (c *Context) Session() Session {
	return c.session
}

// State returns the scenario state.
func (c *Context) State() *State {
	return c.state
}

// Set writes a state value attributed to the current step.
func (c *Context) Set(key string, value any) {
	c.state.set(key, value, c.step.Name)
}

// Tag returns the context tag of the current step.
func (c *Context) Tag() string {
	return c.tag
}

// StepName returns the name of the current step.
func (c *Context) StepName() string {
	return c.step.Name
}

// Logger returns a logger carrying the scenario and step attributes.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// Errorf records an assertion failure.
func (c *Context) Errorf(format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))
	c.failures = append(c.failures, msg)
	c.logger.ErrorContext(c, "Assertion failed", slog.String("message", msg))
}

// FailNow stops the current step.
func (c *Context) FailNow() {
	panic(failNow{})
}

// Helper is a no-op to satisfy testify's helper interface.
func (c *Context) Helper() {}

// Failed reports whether an assertion of the current step has failed.
func (c *Context) Failed() bool {
	return len(c.failures) > 0
}

// run executes fn and converts FailNow and panics into a result.
func (c *Context) run(fn func(*Context) error) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if _, ok := rec.(failNow); ok {
			if len(c.failures) == 0 {
				c.failures = append(c.failures, "step stopped by FailNow")
			}
			return
		}
		err = fmt.Errorf("panic: %v", rec)
	}()

	if fn == nil {
		return nil
	}
	return fn(c)
}
