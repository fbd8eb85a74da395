package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultStepTimeout bounds a step when neither the step nor the runner sets a timeout.
const DefaultStepTimeout = 60 * time.Second

// Observer receives progress notifications from the runner.
type Observer interface {
	ScenarioStarted(result *Result)
	StepFinished(result *Result, step StepResult)
	ScenarioFinished(result *Result)
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	// Sessions opens one session per scenario run.
	Sessions SessionOpener
	// Logger receives progress logs. Default: slog.Default()
	Logger *slog.Logger
	// StepTimeout bounds every step without its own timeout. Default: DefaultStepTimeout
	StepTimeout time.Duration
	// CaptureOnFailure takes a screenshot and an HTML snapshot when a step fails.
	CaptureOnFailure bool
	// Observer is notified about scenario and step progress. Optional.
	Observer Observer
}

// Runner executes scenarios.
type Runner struct {
	sessions         SessionOpener
	logger           *slog.Logger
	stepTimeout      time.Duration
	captureOnFailure bool
	observer         Observer
}

// NewRunner creates a runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stepTimeout := opts.StepTimeout
	if stepTimeout == 0 {
		stepTimeout = DefaultStepTimeout
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Runner{
		sessions:         opts.Sessions,
		logger:           logger,
		stepTimeout:      stepTimeout,
		captureOnFailure: opts.CaptureOnFailure,
		observer:         observer,
	}
}

// Run executes setup scenarios, the main chain and teardown scenarios of s.
//
// Teardown runs even if setup or the main chain failed, and even if ctx is
// already canceled.
func (r *Runner) Run(ctx context.Context, s *Scenario) *Result {
	result := &Result{
		RunID:       uuid.Must(uuid.NewV4()),
		Scenario:    s.Name,
		BaseContext: s.BaseContext,
		Status:      StatusPassed,
		Start:       time.Now(),
	}
	logger := r.logger.With(
		slog.String("scenario", s.Name),
		slog.String("run_id", result.RunID.String()),
	)

	r.observer.ScenarioStarted(result)
	logger.InfoContext(ctx, "Scenario started")
	defer func() {
		result.End = time.Now()
		r.observer.ScenarioFinished(result)
		logger.InfoContext(ctx, "Scenario finished",
			slog.String("status", string(result.Status)),
			slog.Duration("duration", result.Duration()),
		)
	}()

	if err := s.CheckOrder(); err != nil {
		result.Status = StatusAborted
		result.Failure = err
		result.Steps = skipSteps(s, s.Steps)
		return result
	}
	for _, id := range s.DuplicateIDs() {
		logger.WarnContext(ctx, "Duplicate step identifier", slog.String("id", id))
	}

	setupOK := true
	for _, setup := range s.setup {
		setupResult := r.Run(ctx, setup)
		result.Setup = append(result.Setup, setupResult)
		if !setupResult.Passed() {
			setupOK = false
			break
		}
	}

	if setupOK {
		r.runChain(ctx, s, result, logger)
	} else {
		result.Status = StatusFailed
		result.Steps = skipSteps(s, s.Steps)
	}

	// Cleanup must not leak external state, so it ignores cancellation of the run.
	teardownCtx := context.WithoutCancel(ctx)
	for _, teardown := range s.teardown {
		teardownResult := r.Run(teardownCtx, teardown)
		result.Teardown = append(result.Teardown, teardownResult)
		if !teardownResult.Passed() {
			logger.ErrorContext(ctx, "Teardown failed",
				slog.String("teardown", teardown.Name),
				slog.Any("error", teardownResult.Err()),
			)
			if result.Status == StatusPassed {
				result.Status = StatusFailed
			}
		}
	}

	return result
}

// RunAll runs independent scenarios concurrently, each with its own session.
// A parallelism below 1 means no limit. Results keep the order of scenarios.
func (r *Runner) RunAll(ctx context.Context, scenarios []*Scenario, parallelism int) []*Result {
	results := make([]*Result, len(scenarios))

	var g errgroup.Group
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i, s := range scenarios {
		g.Go(func() error {
			results[i] = r.Run(ctx, s)
			// A failed scenario must not cancel the others
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r *Runner) runChain(ctx context.Context, s *Scenario, result *Result, logger *slog.Logger) {
	if r.sessions == nil {
		result.Status = StatusAborted
		result.Failure = &EnvironmentError{Op: "open session", Err: errors.New("no session opener configured")}
		result.Steps = skipSteps(s, s.Steps)
		return
	}

	session, err := r.sessions.Open(ctx)
	if err != nil {
		var envErr *EnvironmentError
		if !errors.As(err, &envErr) {
			err = &EnvironmentError{Op: "open session", Err: err}
		}
		logger.ErrorContext(ctx, "Could not open session", slog.Any("error", err))
		result.Status = StatusAborted
		result.Failure = err
		result.Steps = skipSteps(s, s.Steps)
		return
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.WarnContext(ctx, "Closing session failed", slog.Any("error", err))
		}
	}()

	state := NewState()
	for i := range s.Steps {
		step := &s.Steps[i]

		if result.Status != StatusPassed {
			result.Steps = append(result.Steps, skipStep(s, step))
			continue
		}
		if err := ctx.Err(); err != nil {
			result.Status = StatusFailed
			result.Failure = fmt.Errorf("scenario interrupted before step %q: %w", step.Name, err)
			result.Steps = append(result.Steps, skipStep(s, step))
			continue
		}

		stepResult := r.runStep(ctx, session, state, s, step, logger)
		if stepResult.Status == StatusFailed {
			result.Status = StatusFailed
			if r.captureOnFailure {
				r.capture(ctx, session, s, &stepResult, logger)
			}
		}
		result.Steps = append(result.Steps, stepResult)
		r.observer.StepFinished(result, stepResult)
	}
}

func (r *Runner) runStep(ctx context.Context, session Session, state *State, s *Scenario, step *Step, logger *slog.Logger) StepResult {
	tag := s.Tag(*step)
	timeout := step.Timeout
	if timeout == 0 {
		timeout = r.stepTimeout
	}
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stepLogger := logger.With(slog.String("step", step.Name))
	if tag != "" {
		stepLogger = stepLogger.With(slog.String("tag", tag))
	}

	stepCtx = context.WithValue(stepCtx, loggerKey{}, stepLogger)

	sc := &Context{
		Context: stepCtx,
		session: session,
		state:   state,
		step:    step,
		tag:     tag,
		logger:  stepLogger,
	}

	stepResult := StepResult{
		Name:   step.Name,
		Tag:    tag,
		Status: StatusPassed,
		Start:  time.Now(),
	}
	err := sc.run(step.Do)
	stepResult.End = time.Now()

	switch {
	case err != nil:
		stepResult.Err = classify(step, tag, err)
	case sc.Failed() && stepCtx.Err() != nil:
		stepResult.Err = &ActionTimeout{Step: step.Name, Tag: tag, Err: errors.New(strings.Join(sc.failures, "\n"))}
	case sc.Failed():
		stepResult.Err = &AssertionFailure{Step: step.Name, Tag: tag, Message: strings.Join(sc.failures, "\n")}
	}
	if stepResult.Err != nil {
		stepResult.Status = StatusFailed
		stepLogger.ErrorContext(ctx, "Step failed",
			slog.Duration("duration", stepResult.Duration()),
			slog.Any("error", stepResult.Err),
		)
		return stepResult
	}

	stepLogger.DebugContext(ctx, "Step passed", slog.Duration("duration", stepResult.Duration()))
	return stepResult
}

func (r *Runner) capture(ctx context.Context, session Session, s *Scenario, stepResult *StepResult, logger *slog.Logger) {
	snapshotter, ok := session.(Snapshotter)
	if !ok {
		return
	}

	name := stepResult.Tag
	if name == "" {
		name = s.Name + "_" + stepResult.Name
	}
	if path, err := snapshotter.Screenshot(name); err != nil {
		logger.WarnContext(ctx, "Taking screenshot failed", slog.Any("error", err))
	} else {
		stepResult.Screenshot = path
	}
	if html, err := snapshotter.HTML(); err != nil {
		logger.WarnContext(ctx, "Taking HTML snapshot failed", slog.Any("error", err))
	} else {
		stepResult.Snapshot = html
	}
}

func skipStep(s *Scenario, step *Step) StepResult {
	return StepResult{
		Name:   step.Name,
		Tag:    s.Tag(*step),
		Status: StatusSkipped,
	}
}

func skipSteps(s *Scenario, steps []Step) []StepResult {
	results := make([]StepResult, len(steps))
	for i := range steps {
		results[i] = skipStep(s, &steps[i])
	}
	return results
}

type nopObserver struct{}

func (nopObserver) ScenarioStarted(*Result)          {}
func (nopObserver) StepFinished(*Result, StepResult) {}
func (nopObserver) ScenarioFinished(*Result)         {}
