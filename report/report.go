// Package report renders the results of a test run as HTML.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"

	"github.com/natefinch/atomic"

	"github.com/networkteam/shopcheck/journal"
	"github.com/networkteam/shopcheck/report/views"
)

// Write renders the report of j to w.
func Write(ctx context.Context, w io.Writer, j *journal.Journal, opts ...Option) error {
	o := newOptions(opts)
	ctx = views.WithOptions(ctx, views.Options{
		PathPrefix: o.PathPrefix,
		Title:      o.Title,
	})

	return views.Page(j.Results(), events(j, o)).Render(ctx, w)
}

// WriteFile renders the report of j and atomically replaces path with it.
func WriteFile(ctx context.Context, path string, j *journal.Journal, opts ...Option) error {
	var buf bytes.Buffer
	if err := Write(ctx, &buf, j, opts...); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func events(j *journal.Journal, o options) []journal.Event {
	if o.TruncateAfter > 0 && o.TruncateAfter < math.MaxInt {
		return j.Tail(int(o.TruncateAfter))
	}
	return j.Events()
}
