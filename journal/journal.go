// Package journal records scenario progress and log records of a test run.
package journal

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/networkteam/shopcheck/scenario"
)

// DefaultCapacity is the number of events kept by default.
const DefaultCapacity = 1000

// Journal keeps the most recent events and the finished scenario results.
// It implements scenario.Observer.
type Journal struct {
	log *eventLog
	hub *broadcaster

	mu      sync.RWMutex
	results []*scenario.Result
}

var _ scenario.Observer = (*Journal)(nil)

// Options configures a Journal.
type Options struct {
	// SubscriberBuffer is the channel buffer of each subscription.
	// Default is DefaultSubscriberBuffer.
	SubscriberBuffer int
}

// New creates a journal keeping up to capacity events.
func New(capacity uint64) *Journal {
	return NewWithOptions(capacity, Options{})
}

// NewWithOptions creates a journal with the given options.
func NewWithOptions(capacity uint64, options Options) *Journal {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	return &Journal{
		log: newEventLog(int(capacity)),
		hub: newBroadcaster(options.SubscriberBuffer),
	}
}

// Record adds an event and notifies subscribers.
func (j *Journal) Record(event Event) {
	j.log.append(event)
	j.hub.publish(event)
}

// Tail returns the most recent n events, oldest first.
func (j *Journal) Tail(n int) []Event {
	return j.log.last(n, nil)
}

// Events returns all kept events, oldest first.
func (j *Journal) Events() []Event {
	return j.log.last(len(j.log.events), nil)
}

// ByTag returns the kept events of a context tag.
func (j *Journal) ByTag(tag string) []Event {
	return j.log.last(len(j.log.events), func(e Event) bool {
		return e.Tag == tag
	})
}

// ByRun returns the kept events of a scenario run.
func (j *Journal) ByRun(runID string) []Event {
	return j.log.last(len(j.log.events), func(e Event) bool {
		return e.RunID == runID
	})
}

// Dropped returns how many events were overwritten by newer ones.
func (j *Journal) Dropped() uint64 {
	return j.log.droppedCount()
}

// Subscribe returns a channel that receives new events until ctx is done.
func (j *Journal) Subscribe(ctx context.Context) <-chan Event {
	return j.hub.subscribe(ctx)
}

// Results returns the finished top-level scenario results in finishing order.
// Setup and teardown runs are reachable through their parent result.
func (j *Journal) Results() []*scenario.Result {
	j.mu.RLock()
	defer j.mu.RUnlock()

	nested := make(map[string]bool)
	for _, r := range j.results {
		for _, child := range slices.Concat(r.Setup, r.Teardown) {
			nested[child.RunID.String()] = true
		}
	}
	return lo.Filter(j.results, func(r *scenario.Result, _ int) bool {
		return !nested[r.RunID.String()]
	})
}

// Failed returns the top-level results that did not pass.
func (j *Journal) Failed() []*scenario.Result {
	return lo.Reject(j.Results(), func(r *scenario.Result, _ int) bool {
		return r.Passed()
	})
}

// ScenarioStarted implements scenario.Observer.
func (j *Journal) ScenarioStarted(result *scenario.Result) {
	e := newEvent(KindScenarioStarted)
	e.RunID = result.RunID.String()
	e.Scenario = result.Scenario
	e.Tag = result.BaseContext
	j.Record(e)
}

// StepFinished implements scenario.Observer.
func (j *Journal) StepFinished(result *scenario.Result, step scenario.StepResult) {
	e := newEvent(KindStepFinished)
	e.RunID = result.RunID.String()
	e.Scenario = result.Scenario
	e.Step = step.Name
	e.Tag = step.Tag
	e.Status = step.Status
	e.Duration = step.Duration()
	e.Error = errString(step.Err)
	e.Screenshot = step.Screenshot
	e.Snapshot = step.Snapshot
	j.Record(e)
}

// ScenarioFinished implements scenario.Observer.
func (j *Journal) ScenarioFinished(result *scenario.Result) {
	j.mu.Lock()
	j.results = append(j.results, result)
	j.mu.Unlock()

	e := newEvent(KindScenarioFinished)
	e.RunID = result.RunID.String()
	e.Scenario = result.Scenario
	e.Tag = result.BaseContext
	e.Status = result.Status
	e.Duration = result.Duration()
	e.Error = errString(result.Err())
	j.Record(e)
}

// Close releases resources used by the journal.
func (j *Journal) Close() {
	j.hub.close()
}
