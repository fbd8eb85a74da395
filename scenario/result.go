package scenario

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/samber/lo"
)

// Status is the outcome of a scenario or step.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	// StatusAborted marks a scenario that could not run at all (environment or definition error).
	StatusAborted Status = "aborted"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Name   string
	Tag    string
	Status Status
	Start  time.Time
	End    time.Time
	Err    error

	// Screenshot is the path of the screenshot taken on failure, if any.
	Screenshot string
	// Snapshot is the HTML of the active page taken on failure, if any.
	Snapshot string
}

// Duration returns how long the step ran.
func (r StepResult) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Result is the outcome of one scenario run including its setup and teardown.
type Result struct {
	RunID       uuid.UUID
	Scenario    string
	BaseContext string
	Status      Status
	Start       time.Time
	End         time.Time

	Steps    []StepResult
	Setup    []*Result
	Teardown []*Result

	// Failure is a scenario-level failure that is not attributed to a step.
	Failure error
}

// Duration returns how long the scenario ran, including setup and teardown.
func (r *Result) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Passed reports whether the scenario, its setup and its teardown passed.
func (r *Result) Passed() bool {
	return r.Err() == nil
}

// Err returns the first failure of the run or nil.
// Setup failures come first, then the main chain, then teardown.
func (r *Result) Err() error {
	for _, setup := range r.Setup {
		if err := setup.Err(); err != nil {
			return fmt.Errorf("setup %q: %w", setup.Scenario, err)
		}
	}
	if r.Failure != nil {
		return r.Failure
	}
	if failed, ok := lo.Find(r.Steps, func(s StepResult) bool { return s.Status == StatusFailed }); ok {
		return failed.Err
	}
	for _, teardown := range r.Teardown {
		if err := teardown.Err(); err != nil {
			return fmt.Errorf("teardown %q: %w", teardown.Scenario, err)
		}
	}
	return nil
}

// Errors returns every failure of the run, including teardown failures that
// follow an earlier failure.
func (r *Result) Errors() error {
	var errs []error
	for _, setup := range r.Setup {
		errs = append(errs, setup.Errors())
	}
	errs = append(errs, r.Failure)
	for _, step := range r.Steps {
		errs = append(errs, step.Err)
	}
	for _, teardown := range r.Teardown {
		errs = append(errs, teardown.Errors())
	}
	return errors.Join(errs...)
}

// StepsWithStatus returns the step results with the given status.
func (r *Result) StepsWithStatus(status Status) []StepResult {
	return lo.Filter(r.Steps, func(s StepResult, _ int) bool {
		return s.Status == status
	})
}

// Step returns the result of the step with the given name.
func (r *Result) Step(name string) (StepResult, bool) {
	return lo.Find(r.Steps, func(s StepResult) bool {
		return s.Name == name
	})
}
