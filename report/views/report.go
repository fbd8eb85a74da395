package views

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/networkteam/shopcheck/journal"
	"github.com/networkteam/shopcheck/scenario"
)

// Summary counts passed, failed and aborted results.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Aborted int
}

// Summarize counts results by status.
func Summarize(results []*scenario.Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Status == scenario.StatusAborted:
			s.Aborted++
		case r.Passed():
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

// displayStatus reports a passed chain with a failed fixture as failed.
func displayStatus(r *scenario.Result) scenario.Status {
	if r.Status == scenario.StatusPassed && !r.Passed() {
		return scenario.StatusFailed
	}
	return r.Status
}

func hasDetail(step scenario.StepResult) bool {
	return step.Err != nil || step.Screenshot != "" || step.Snapshot != ""
}

// screenshotHref links the handler route when mounted, the file otherwise.
func screenshotHref(ctx context.Context, r *scenario.Result, index int, step scenario.StepResult) string {
	opts := optionsFromContext(ctx)
	if opts.PathPrefix == "" {
		return step.Screenshot
	}
	return fmt.Sprintf("%s/screenshot/%s/%d", strings.TrimSuffix(opts.PathPrefix, "/"), r.RunID, index)
}

func logEvents(events []journal.Event) []journal.Event {
	return lo.Filter(events, func(e journal.Event, _ int) bool {
		return e.Kind == journal.KindLog
	})
}

func formatAttrs(attrs []slog.Attr) string {
	return strings.Join(lo.Map(attrs, func(a slog.Attr, _ int) string {
		return a.String()
	}), " ")
}

const pageCSS = `
body { font-family: system-ui, sans-serif; margin: 2rem; color: #171717; }
section.scenario { border: 1px solid #e5e5e5; border-radius: 0.5rem; padding: 1rem; margin-bottom: 1rem; }
.fixture { margin-left: 1.5rem; }
.fixture section.scenario { border-style: dashed; }
table { border-collapse: collapse; width: 100%; }
td, th { text-align: left; padding: 0.25rem 0.5rem; border-bottom: 1px solid #f5f5f5; vertical-align: top; }
.tag { font-family: monospace; color: #737373; }
pre.error { background: #fef2f2; color: #991b1b; padding: 0.5rem; white-space: pre-wrap; }
.level-error td { color: #b91c1c; }
.level-warn td { color: #c2410c; }
.truncated { color: #737373; font-style: italic; }
`
