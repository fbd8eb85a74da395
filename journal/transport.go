package journal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/networkteam/shopcheck/scenario"
)

// Transport returns an http.RoundTripper that logs outgoing requests with the
// logger of the running step, so they end up in the journal next to the step.
func Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next}
}

type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Duration("duration", time.Since(start)),
	}
	logger := scenario.LoggerFrom(req.Context())
	if err != nil {
		logger.LogAttrs(req.Context(), slog.LevelWarn, "HTTP request failed", append(attrs, slog.Any("error", err))...)
		return resp, err
	}

	attrs = append(attrs, slog.Int("status", resp.StatusCode))
	if resp.ContentLength >= 0 {
		attrs = append(attrs, slog.Int64("size", resp.ContentLength))
	}
	logger.LogAttrs(req.Context(), slog.LevelInfo, "HTTP request", attrs...)
	return resp, nil
}
