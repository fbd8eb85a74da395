package scenario_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/scenario"
)

type fakePage struct {
	playwright.Page
	name string
}

// recorder collects the order in which steps of several scenarios ran.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) step(name string) scenario.Step {
	return scenario.Step{
		Name: name,
		ID:   name,
		Do: func(sc *scenario.Context) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.calls = append(r.calls, name)
			return nil
		},
	}
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func newRunner(sessions scenario.SessionOpener) *scenario.Runner {
	return scenario.NewRunner(scenario.RunnerOptions{
		Sessions:    sessions,
		StepTimeout: 5 * time.Second,
	})
}

func TestRunner_Run_StepsInDeclarationOrder(t *testing.T) {
	sessions := &scenario.FakeSessions{}
	rec := &recorder{}

	s := scenario.New("order", "test_order", rec.step("a"), rec.step("b"), rec.step("c"))

	result := newRunner(sessions).Run(context.Background(), s)

	require.NoError(t, result.Err())
	assert.Equal(t, scenario.StatusPassed, result.Status)
	assert.Equal(t, []string{"a", "b", "c"}, rec.get())
	require.Len(t, result.Steps, 3)
	assert.Equal(t, "test_order_b", result.Steps[1].Tag)

	require.Len(t, sessions.Sessions(), 1)
	assert.Equal(t, 1, sessions.Sessions()[0].Closes())
}

func TestRunner_Run_RequireFailureSkipsRemainingSteps(t *testing.T) {
	sessions := &scenario.FakeSessions{}
	rec := &recorder{}

	s := scenario.New("failing", "test_failing",
		rec.step("first"),
		scenario.Step{
			Name: "check quantity",
			ID:   "checkQuantity",
			Do: func(sc *scenario.Context) error {
				require.Equal(sc, 1, 2, "cart quantity")
				rec.step("unreachable").Do(sc)
				return nil
			},
		},
		rec.step("last"),
	)

	result := newRunner(sessions).Run(context.Background(), s)

	assert.Equal(t, scenario.StatusFailed, result.Status)
	assert.Equal(t, []string{"first"}, rec.get())

	var failure *scenario.AssertionFailure
	require.ErrorAs(t, result.Err(), &failure)
	assert.Equal(t, "check quantity", failure.Step)
	assert.Equal(t, "test_failing_checkQuantity", failure.Tag)
	assert.Contains(t, failure.Message, "expected: 1")
	assert.Contains(t, failure.Message, "actual  : 2")

	assert.Equal(t, []scenario.Status{scenario.StatusPassed, scenario.StatusFailed, scenario.StatusSkipped},
		[]scenario.Status{result.Steps[0].Status, result.Steps[1].Status, result.Steps[2].Status})
	assert.Equal(t, 1, sessions.Sessions()[0].Closes())
}

func TestRunner_Run_AssertFailureFinishesStepThenFails(t *testing.T) {
	sessions := &scenario.FakeSessions{}
	reachedEnd := false

	s := scenario.New("soft", "",
		scenario.Step{
			Name: "soft assertions",
			Do: func(sc *scenario.Context) error {
				assert.Equal(sc, "Free", "7.00")
				reachedEnd = true
				return nil
			},
		},
	)

	result := newRunner(sessions).Run(context.Background(), s)

	assert.True(t, reachedEnd)
	assert.Equal(t, scenario.StatusFailed, result.Status)
	var failure *scenario.AssertionFailure
	assert.ErrorAs(t, result.Err(), &failure)
}

func TestRunner_Run_PlaywrightTimeoutIsActionTimeout(t *testing.T) {
	s := scenario.New("timeout", "test_timeout", scenario.Step{
		Name: "click add to cart",
		ID:   "addToCart",
		Do: func(sc *scenario.Context) error {
			return fmt.Errorf("clicking add to cart: %w", playwright.ErrTimeout)
		},
	})

	result := newRunner(&scenario.FakeSessions{}).Run(context.Background(), s)

	var timeout *scenario.ActionTimeout
	require.ErrorAs(t, result.Err(), &timeout)
	assert.Equal(t, "click add to cart", timeout.Step)
	assert.Equal(t, "test_timeout_addToCart", timeout.Tag)
	assert.True(t, scenario.IsTimeout(result.Err()))
}

func TestRunner_Run_StepDeadlineIsActionTimeout(t *testing.T) {
	s := scenario.New("deadline", "", scenario.Step{
		Name:    "wait for modal",
		Timeout: 20 * time.Millisecond,
		Do: func(sc *scenario.Context) error {
			<-sc.Done()
			return sc.Err()
		},
	})

	result := newRunner(&scenario.FakeSessions{}).Run(context.Background(), s)

	var timeout *scenario.ActionTimeout
	require.ErrorAs(t, result.Err(), &timeout)
	assert.ErrorIs(t, result.Err(), context.DeadlineExceeded)
}

func TestRunner_Run_PanicIsStepError(t *testing.T) {
	sessions := &scenario.FakeSessions{}
	s := scenario.New("panic", "", scenario.Step{
		Name: "explode",
		Do: func(sc *scenario.Context) error {
			panic("boom")
		},
	})

	result := newRunner(sessions).Run(context.Background(), s)

	var stepErr *scenario.StepError
	require.ErrorAs(t, result.Err(), &stepErr)
	assert.Contains(t, stepErr.Error(), "boom")
	assert.Equal(t, 1, sessions.Sessions()[0].Closes())
}

func TestRunner_Run_OpenFailureAbortsButRunsTeardown(t *testing.T) {
	teardownSessions := &scenario.FakeSessions{}
	rec := &recorder{}

	// The main scenario and the teardown share one opener; make only the first open fail.
	opener := &failFirstOpener{next: teardownSessions}

	main := scenario.New("main", "", rec.step("main step"))
	teardown := scenario.New("teardown", "", rec.step("cleanup"))
	scenario.WithFixture(nil, teardown, main)

	result := newRunner(opener).Run(context.Background(), main)

	assert.Equal(t, scenario.StatusAborted, result.Status)
	var envErr *scenario.EnvironmentError
	require.ErrorAs(t, result.Err(), &envErr)
	assert.Equal(t, []string{"cleanup"}, rec.get())
	assert.Equal(t, scenario.StatusSkipped, result.Steps[0].Status)
	require.Len(t, result.Teardown, 1)
	assert.True(t, result.Teardown[0].Passed())
}

type failFirstOpener struct {
	mu     sync.Mutex
	failed bool
	next   scenario.SessionOpener
}

func (o *failFirstOpener) Open(ctx context.Context) (scenario.Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.failed {
		o.failed = true
		return nil, errors.New("browser process unavailable")
	}
	return o.next.Open(ctx)
}

func TestRunner_Run_FixtureOrder(t *testing.T) {
	rec := &recorder{}

	setup := scenario.New("install module", "", rec.step("install"))
	teardown := scenario.New("uninstall module", "", rec.step("uninstall"))
	main := scenario.New("main", "", rec.step("use module"))

	result := newRunner(&scenario.FakeSessions{}).Run(context.Background(), scenario.WithFixture(setup, teardown, main))

	require.NoError(t, result.Err())
	assert.Equal(t, []string{"install", "use module", "uninstall"}, rec.get())
}

func TestRunner_Run_TeardownRunsWhenMainFails(t *testing.T) {
	rec := &recorder{}
	sessions := &scenario.FakeSessions{}

	main := scenario.New("main", "",
		scenario.Step{
			Name: "assert module state",
			Do: func(sc *scenario.Context) error {
				require.True(sc, false, "module should be visible")
				return nil
			},
		},
	)
	teardown := scenario.New("uninstall module", "", rec.step("uninstall"))
	scenario.WithFixture(scenario.New("install module", "", rec.step("install")), teardown, main)

	result := newRunner(sessions).Run(context.Background(), main)

	assert.Equal(t, scenario.StatusFailed, result.Status)
	assert.Equal(t, []string{"install", "uninstall"}, rec.get())

	// setup, main and teardown each used their own session, each closed exactly once
	require.Len(t, sessions.Sessions(), 3)
	for _, s := range sessions.Sessions() {
		assert.Equal(t, 1, s.Closes())
	}
}

func TestRunner_Run_SetupFailureSkipsMainRunsTeardown(t *testing.T) {
	rec := &recorder{}

	setup := scenario.New("create product", "", scenario.Step{
		Name: "save product",
		Do: func(sc *scenario.Context) error {
			return errors.New("form validation failed")
		},
	})
	main := scenario.New("main", "", rec.step("main step"))
	teardown := scenario.New("delete product", "", rec.step("delete"))

	result := newRunner(&scenario.FakeSessions{}).Run(context.Background(), scenario.WithFixture(setup, teardown, main))

	assert.Equal(t, scenario.StatusFailed, result.Status)
	assert.Equal(t, []string{"delete"}, rec.get())
	assert.Equal(t, scenario.StatusSkipped, result.Steps[0].Status)
	assert.ErrorContains(t, result.Err(), `setup "create product"`)
}

func TestRunner_Run_TeardownFailureFailsResult(t *testing.T) {
	main := scenario.New("main", "", scenario.Step{Name: "noop", Do: func(*scenario.Context) error { return nil }})
	teardown := scenario.New("delete file", "", scenario.Step{
		Name: "delete",
		Do: func(*scenario.Context) error {
			return errors.New("permission denied")
		},
	})

	result := newRunner(&scenario.FakeSessions{}).Run(context.Background(), scenario.WithFixture(nil, teardown, main))

	assert.Equal(t, scenario.StatusFailed, result.Status)
	assert.Equal(t, scenario.StatusPassed, result.Steps[0].Status)
	assert.ErrorContains(t, result.Err(), `teardown "delete file"`)
}

func TestRunner_Run_NestedFixtures(t *testing.T) {
	rec := &recorder{}

	installDependency := scenario.New("install dependency", "", rec.step("install dependency"))
	installModule := scenario.New("install module", "", rec.step("install module"))
	scenario.WithFixture(installDependency, nil, installModule)

	main := scenario.New("main", "", rec.step("main"))
	scenario.WithFixture(installModule, scenario.New("uninstall module", "", rec.step("uninstall module")), main)

	result := newRunner(&scenario.FakeSessions{}).Run(context.Background(), main)

	require.NoError(t, result.Err())
	assert.Equal(t, []string{"install dependency", "install module", "main", "uninstall module"}, rec.get())
}

func TestRunner_Run_CanceledContextStillRunsTeardown(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())

	main := scenario.New("main", "",
		scenario.Step{
			Name: "cancel run",
			Do: func(sc *scenario.Context) error {
				cancel()
				return nil
			},
		},
		rec.step("after cancel"),
	)
	scenario.WithFixture(nil, scenario.New("cleanup", "", rec.step("cleanup")), main)

	result := newRunner(&scenario.FakeSessions{}).Run(ctx, main)

	assert.Equal(t, scenario.StatusFailed, result.Status)
	assert.ErrorIs(t, result.Err(), context.Canceled)
	assert.Equal(t, []string{"cleanup"}, rec.get())
}

func TestRunner_Run_StatePassesBetweenSteps(t *testing.T) {
	s := scenario.New("state", "",
		scenario.Step{
			Name:   "fetch product id",
			Writes: []string{"idProduct"},
			Do: func(sc *scenario.Context) error {
				sc.Set("idProduct", 21)
				return nil
			},
		},
		scenario.Step{
			Name:   "use product id",
			Reads:  []string{"idProduct"},
			Writes: []string{"idProduct"},
			Do: func(sc *scenario.Context) error {
				id := scenario.MustValue[int](sc, "idProduct")
				writer, _ := sc.State().WrittenBy("idProduct")
				assert.Equal(sc, "fetch product id", writer)
				sc.Set("idProduct", id+1)
				return nil
			},
		},
		scenario.Step{
			Name:  "read shadowed value",
			Reads: []string{"idProduct"},
			Do: func(sc *scenario.Context) error {
				assert.Equal(sc, 22, scenario.MustValue[int](sc, "idProduct"))
				return nil
			},
		},
	)

	result := newRunner(&scenario.FakeSessions{}).Run(context.Background(), s)

	require.NoError(t, result.Err())
}

func TestRunner_Run_MustValueMissingKeyFailsStep(t *testing.T) {
	s := scenario.New("missing", "", scenario.Step{
		Name: "read undeclared key",
		Do: func(sc *scenario.Context) error {
			scenario.MustValue[int](sc, "nthProduct")
			return nil
		},
	})

	result := newRunner(&scenario.FakeSessions{}).Run(context.Background(), s)

	var failure *scenario.AssertionFailure
	require.ErrorAs(t, result.Err(), &failure)
	assert.Contains(t, failure.Message, "nthProduct")
}

func TestRunner_Run_OrderViolationAbortsWithoutSession(t *testing.T) {
	sessions := &scenario.FakeSessions{}
	s := scenario.New("bad order", "",
		scenario.Step{Name: "read", Reads: []string{"count"}},
		scenario.Step{Name: "write", Writes: []string{"count"}},
	)

	result := newRunner(sessions).Run(context.Background(), s)

	assert.Equal(t, scenario.StatusAborted, result.Status)
	var orderErr *scenario.OrderError
	require.ErrorAs(t, result.Err(), &orderErr)
	assert.Equal(t, "count", orderErr.Key)
	assert.Empty(t, sessions.Sessions())
}

func TestRunner_Run_PageHandOff(t *testing.T) {
	boPage := &fakePage{name: "bo"}
	foPage := &fakePage{name: "fo"}

	s := scenario.New("hand-off", "",
		scenario.Step{
			Name: "start in BO",
			Do: func(sc *scenario.Context) error {
				sc.SetPage(boPage)
				return nil
			},
		},
		scenario.Step{
			Name: "view my shop",
			Do: func(sc *scenario.Context) error {
				require.Same(sc, boPage, sc.Page())
				sc.SetPage(foPage)
				return nil
			},
		},
		scenario.Step{
			Name: "check FO",
			Do: func(sc *scenario.Context) error {
				require.Same(sc, foPage, sc.Page())
				return nil
			},
		},
	)

	result := newRunner(&scenario.FakeSessions{}).Run(context.Background(), s)

	require.NoError(t, result.Err())
}

func TestRunner_RunAll_FailureIsolatedPerScenario(t *testing.T) {
	sessions := &scenario.FakeSessions{}
	rec := &recorder{}

	failing := scenario.New("failing", "", scenario.Step{
		Name: "fail",
		Do: func(sc *scenario.Context) error {
			return errors.New("broken")
		},
	}, rec.step("failing second"))
	passing := scenario.New("passing", "", rec.step("passing first"), rec.step("passing second"))

	results := newRunner(sessions).RunAll(context.Background(), []*scenario.Scenario{failing, passing}, 2)

	require.Len(t, results, 2)
	assert.Equal(t, "failing", results[0].Scenario)
	assert.Equal(t, scenario.StatusFailed, results[0].Status)
	assert.Equal(t, scenario.StatusPassed, results[1].Status)
	assert.ElementsMatch(t, []string{"passing first", "passing second"}, rec.get())

	require.Len(t, sessions.Sessions(), 2)
	for _, s := range sessions.Sessions() {
		assert.Equal(t, 1, s.Closes())
	}
}

type observerSpy struct {
	mu       sync.Mutex
	events   []string
	finished *scenario.Result
}

func (o *observerSpy) ScenarioStarted(r *scenario.Result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, "start:"+r.Scenario)
}

func (o *observerSpy) StepFinished(r *scenario.Result, s scenario.StepResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, "step:"+s.Name+":"+string(s.Status))
}

func (o *observerSpy) ScenarioFinished(r *scenario.Result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, "finish:"+r.Scenario)
	o.finished = r
}

func TestRunner_Run_NotifiesObserver(t *testing.T) {
	spy := &observerSpy{}
	runner := scenario.NewRunner(scenario.RunnerOptions{
		Sessions: &scenario.FakeSessions{},
		Observer: spy,
	})
	rec := &recorder{}

	result := runner.Run(context.Background(), scenario.New("observed", "", rec.step("one")))

	assert.Equal(t, []string{"start:observed", "step:one:passed", "finish:observed"}, spy.events)
	assert.Same(t, result, spy.finished)
	assert.False(t, result.End.Before(result.Start))
}
