// Package scenario runs business flows as ordered chains of steps that share
// one browser session and one explicit state.
//
// A Scenario declares its steps in order. The Runner opens a session, executes
// the steps strictly one after another and closes the session on every exit
// path. A failing step skips the remaining steps of its scenario but never
// those of other scenarios. Setup and teardown scenarios wrap a main scenario
// as pre- and post-conditions; teardown always runs.
package scenario

import (
	"context"
	"errors"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/samber/lo"
)

// Step is one unit of a scenario: an action against the current page and/or
// assertions against page-derived state.
type Step struct {
	// Name describes the step ("should go to FO home page").
	Name string
	// ID is the test identifier used to build the context tag (e.g. "goToFo").
	// Steps without ID are not tagged.
	ID string
	// Reads lists the state keys the step reads.
	Reads []string
	// Writes lists the state keys the step writes.
	Writes []string
	// Timeout overrides the runner's step timeout.
	Timeout time.Duration
	// Do performs the step.
	Do func(sc *Context) error
}

// Scenario is a named sequence of steps sharing one session and one state.
type Scenario struct {
	Name string
	// BaseContext prefixes the context tag of every step.
	BaseContext string
	Steps       []Step

	setup    []*Scenario
	teardown []*Scenario
}

// New creates a scenario with the given steps.
func New(name, baseContext string, steps ...Step) *Scenario {
	return &Scenario{
		Name:        name,
		BaseContext: baseContext,
		Steps:       steps,
	}
}

// Add appends steps in declaration order.
func (s *Scenario) Add(steps ...Step) *Scenario {
	s.Steps = append(s.Steps, steps...)
	return s
}

// Before registers setup scenarios that run before the first step.
func (s *Scenario) Before(setup ...*Scenario) *Scenario {
	s.setup = append(s.setup, lo.Compact(setup)...)
	return s
}

// After registers teardown scenarios that run after the last step, also on failure.
func (s *Scenario) After(teardown ...*Scenario) *Scenario {
	s.teardown = append(s.teardown, lo.Compact(teardown)...)
	return s
}

// Setup returns the registered setup scenarios.
func (s *Scenario) Setup() []*Scenario {
	return s.setup
}

// Teardown returns the registered teardown scenarios.
func (s *Scenario) Teardown() []*Scenario {
	return s.teardown
}

// WithFixture wraps main with a setup and a teardown scenario. Either may be nil.
// Setup and teardown can be wrapped themselves.
func WithFixture(setup, teardown, main *Scenario) *Scenario {
	return main.Before(setup).After(teardown)
}

// Tag returns the context tag of a step: "<baseContext>_<id>".
func (s *Scenario) Tag(step Step) string {
	switch {
	case step.ID == "":
		return ""
	case s.BaseContext == "":
		return step.ID
	default:
		return s.BaseContext + "_" + step.ID
	}
}

// CheckOrder verifies that every key a step reads is written by an earlier
// step of the same scenario. Setup and teardown scenarios are checked as well.
func (s *Scenario) CheckOrder() error {
	var errs []error
	for _, setup := range s.setup {
		errs = append(errs, setup.CheckOrder())
	}

	written := make(map[string]struct{})
	for _, step := range s.Steps {
		for _, key := range step.Reads {
			if _, ok := written[key]; !ok {
				errs = append(errs, &OrderError{Scenario: s.Name, Step: step.Name, Key: key})
			}
		}
		for _, key := range step.Writes {
			written[key] = struct{}{}
		}
	}

	for _, teardown := range s.teardown {
		errs = append(errs, teardown.CheckOrder())
	}
	return errors.Join(errs...)
}

// DuplicateIDs returns step identifiers used more than once in the scenario.
func (s *Scenario) DuplicateIDs() []string {
	ids := lo.FilterMap(s.Steps, func(step Step, _ int) (string, bool) {
		return step.ID, step.ID != ""
	})
	return lo.FindDuplicates(ids)
}

// Session is an isolated browser environment bound to one scenario run.
type Session interface {
	// Page returns the active page.
	Page() playwright.Page
	// SetPage hands off the active page for subsequent steps.
	SetPage(page playwright.Page)
	// Close releases the session. It must be safe to call more than once.
	Close() error
}

// SessionOpener creates sessions.
type SessionOpener interface {
	Open(ctx context.Context) (Session, error)
}

// Snapshotter is implemented by sessions that can capture diagnostics on failure.
type Snapshotter interface {
	Screenshot(name string) (string, error)
	HTML() (string, error)
}
