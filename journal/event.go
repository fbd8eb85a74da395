package journal

import (
	"log/slog"
	"time"

	"github.com/gofrs/uuid"

	"github.com/networkteam/shopcheck/scenario"
)

// Kind is the type of a journal event.
type Kind string

const (
	KindScenarioStarted  Kind = "scenario_started"
	KindStepFinished     Kind = "step_finished"
	KindScenarioFinished Kind = "scenario_finished"
	KindLog              Kind = "log"
)

// Event is one diagnostic entry, correlated by run ID and context tag.
type Event struct {
	ID    uuid.UUID
	Kind  Kind
	Time  time.Time
	RunID string

	Scenario string
	Step     string
	Tag      string
	Status   scenario.Status
	Duration time.Duration
	Error    string

	// Screenshot and Snapshot are set for failed steps when captured.
	Screenshot string
	Snapshot   string

	// Level, Message and Attrs are set for log events.
	Level   slog.Level
	Message string
	Attrs   []slog.Attr
}

func newEvent(kind Kind) Event {
	return Event{
		ID:   uuid.Must(uuid.NewV4()),
		Kind: kind,
		Time: time.Now(),
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
