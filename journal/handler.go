package journal

import (
	"context"
	"log/slog"
	"slices"

	"github.com/samber/lo"
)

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// Level is the minimum level of logs to collect.
	Level slog.Level
}

// Handler is a slog.Handler recording log records as journal events.
// The attributes run_id, scenario, step and tag are used to correlate the event.
type Handler struct {
	journal *Journal
	options HandlerOptions

	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler creates a handler recording into j.
func NewHandler(j *Journal, options HandlerOptions) *Handler {
	return &Handler{
		journal: j,
		options: options,

		attrs:  []slog.Attr{},
		groups: []string{},
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.options.Level <= level
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	// Handler attributes come before record attributes, record attributes are nested in the open groups.
	attrs := []slog.Attr{}
	record.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)
		return true
	})
	for i := range h.groups {
		k := h.groups[len(h.groups)-1-i]
		attrs = []slog.Attr{
			slog.Group(k, lo.ToAnySlice(attrs)...),
		}
	}
	all := append(slices.Clone(h.attrs), attrs...)

	e := newEvent(KindLog)
	e.Time = record.Time
	e.Level = record.Level
	e.Message = record.Message
	e.Attrs = all
	for _, attr := range all {
		switch attr.Key {
		case "run_id":
			e.RunID = attr.Value.String()
		case "scenario":
			e.Scenario = attr.Value.String()
		case "step":
			e.Step = attr.Value.String()
		case "tag":
			e.Tag = attr.Value.String()
		}
	}

	h.journal.Record(e)

	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		journal: h.journal,
		options: h.options,

		attrs:  appendAttrsToGroup(h.groups, h.attrs, attrs...),
		groups: h.groups,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &Handler{
		journal: h.journal,
		options: h.options,

		attrs:  h.attrs,
		groups: append(slices.Clone(h.groups), name),
	}
}

// Copied from github.com/samber/slog-mock
func appendAttrsToGroup(groups []string, actualAttrs []slog.Attr, newAttrs ...slog.Attr) []slog.Attr {
	actualAttrs = slices.Clone(actualAttrs)

	if len(groups) == 0 {
		return append(actualAttrs, newAttrs...)
	}

	for i := range actualAttrs {
		attr := actualAttrs[i]
		if attr.Key == groups[0] && attr.Value.Kind() == slog.KindGroup {
			actualAttrs[i] = slog.Group(groups[0], lo.ToAnySlice(appendAttrsToGroup(groups[1:], attr.Value.Group(), newAttrs...))...)
			return actualAttrs
		}
	}

	return append(
		actualAttrs,
		slog.Group(
			groups[0],
			lo.ToAnySlice(appendAttrsToGroup(groups[1:], []slog.Attr{}, newAttrs...))...,
		),
	)
}
