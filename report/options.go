package report

// options holds configuration for the report.
// This is unexported; use Option functions to configure.
type options struct {
	// PathPrefix is where the handler is mounted (e.g. "/_report").
	PathPrefix string
	Title      string
	// TruncateAfter limits the number of log events shown.
	TruncateAfter uint64
}

// Option configures the report handler and writer.
type Option func(*options)

// WithPathPrefix sets the path prefix where the handler is mounted.
// This is used for generating correct screenshot URLs.
func WithPathPrefix(prefix string) Option {
	return func(o *options) {
		o.PathPrefix = prefix
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.Title = title
	}
}

// WithTruncateAfter limits the number of log events shown.
// Default shows all events kept by the journal.
func WithTruncateAfter(limit uint64) Option {
	return func(o *options) {
		o.TruncateAfter = limit
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
