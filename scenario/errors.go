package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

var (
	// ErrKeyNotSet is returned when a step reads a state key no earlier step has written.
	ErrKeyNotSet = errors.New("state key not set")
	// ErrKeyType is returned when a state value cannot be read as the requested type.
	ErrKeyType = errors.New("state value has unexpected type")
)

// EnvironmentError reports that the browser environment could not be provided
// (driver not startable, context or page allocation failed). It aborts the scenario.
type EnvironmentError struct {
	Op  string
	Err error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("environment: %s: %v", e.Op, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// AssertionFailure is an expected value mismatch recorded against a step.
// Message holds the assertion output including expected and actual values.
type AssertionFailure struct {
	Step    string
	Tag     string
	Message string
}

func (e *AssertionFailure) Error() string {
	return fmt.Sprintf("step %q: assertion failed: %s", e.Step, e.Message)
}

// ActionTimeout reports a remote action that did not resolve in time.
// It is reported like an assertion failure.
type ActionTimeout struct {
	Step string
	Tag  string
	Err  error
}

func (e *ActionTimeout) Error() string {
	return fmt.Sprintf("step %q: action timed out: %v", e.Step, e.Err)
}

func (e *ActionTimeout) Unwrap() error {
	return e.Err
}

// StepError wraps any other error returned (or panicked) by a step.
type StepError struct {
	Step string
	Tag  string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// OrderError reports a step that reads a state key before any earlier step writes it.
type OrderError struct {
	Scenario string
	Step     string
	Key      string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("scenario %q: step %q reads %q before any earlier step writes it", e.Scenario, e.Step, e.Key)
}

// IsTimeout reports whether err is a playwright timeout or an expired deadline.
func IsTimeout(err error) bool {
	var timeout *ActionTimeout
	return errors.As(err, &timeout) ||
		errors.Is(err, playwright.ErrTimeout) ||
		errors.Is(err, context.DeadlineExceeded)
}

// classify maps an error returned by a step to the error taxonomy.
func classify(step *Step, tag string, err error) error {
	var (
		assertion *AssertionFailure
		timeout   *ActionTimeout
		env       *EnvironmentError
	)
	switch {
	case errors.As(err, &assertion), errors.As(err, &timeout), errors.As(err, &env):
		return err
	case IsTimeout(err):
		return &ActionTimeout{Step: step.Name, Tag: tag, Err: err}
	default:
		return &StepError{Step: step.Name, Tag: tag, Err: err}
	}
}
