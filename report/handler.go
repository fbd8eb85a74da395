package report

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/gofrs/uuid"
	"github.com/samber/lo"

	"github.com/networkteam/shopcheck/journal"
	"github.com/networkteam/shopcheck/report/views"
	"github.com/networkteam/shopcheck/scenario"
)

// Handler serves the live report of a journal.
type Handler struct {
	journal *journal.Journal
	options options

	mux http.Handler
}

// NewHandler creates a handler serving the report of j.
func NewHandler(j *journal.Journal, opts ...Option) *Handler {
	mux := http.NewServeMux()
	handler := &Handler{
		journal: j,
		options: newOptions(opts),
	}
	handler.mux = handler.withViewOptions(mux)

	mux.HandleFunc("GET /{$}", handler.root)
	mux.HandleFunc("GET /run/{runId}", handler.getRun)
	mux.HandleFunc("GET /screenshot/{runId}/{step}", handler.getScreenshot)

	return handler
}

func (h *Handler) withViewOptions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := views.WithOptions(r.Context(), views.Options{
			PathPrefix: h.options.PathPrefix,
			Title:      h.options.Title,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Page(h.journal.Results(), events(h.journal, h.options)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) getRun(w http.ResponseWriter, r *http.Request) {
	result, ok := h.findRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.ResultSection(result).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) getScreenshot(w http.ResponseWriter, r *http.Request) {
	result, ok := h.findRun(w, r)
	if !ok {
		return
	}

	idx, err := strconv.Atoi(r.PathValue("step"))
	if err != nil || idx < 0 || idx >= len(result.Steps) || result.Steps[idx].Screenshot == "" {
		http.Error(w, "Screenshot not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, result.Steps[idx].Screenshot)
}

func (h *Handler) findRun(w http.ResponseWriter, r *http.Request) (*scenario.Result, bool) {
	runID, err := uuid.FromString(r.PathValue("runId"))
	if err != nil {
		http.Error(w, "Invalid run id", http.StatusBadRequest)
		return nil, false
	}

	result, ok := findResult(h.journal.Results(), runID)
	if !ok {
		http.Error(w, "Run not found", http.StatusNotFound)
		return nil, false
	}
	return result, true
}

// findResult searches results and their setup and teardown runs.
func findResult(results []*scenario.Result, runID uuid.UUID) (*scenario.Result, bool) {
	if r, ok := lo.Find(results, func(r *scenario.Result) bool { return r.RunID == runID }); ok {
		return r, true
	}
	for _, r := range results {
		if found, ok := findResult(slices.Concat(r.Setup, r.Teardown), runID); ok {
			return found, true
		}
	}
	return nil, false
}
