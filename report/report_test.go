package report_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/journal"
	"github.com/networkteam/shopcheck/report"
	"github.com/networkteam/shopcheck/scenario"
)

func failedResult(t *testing.T) *scenario.Result {
	t.Helper()

	screenshot := filepath.Join(t.TempDir(), "checkCartPage.png")
	require.NoError(t, os.WriteFile(screenshot, []byte("\x89PNG"), 0o644))

	start := time.Now()
	return &scenario.Result{
		RunID:       uuid.Must(uuid.NewV4()),
		Scenario:    "FO - Product page - Quick view : Add to cart",
		BaseContext: "functional_FO_classic_productPage_quickView_addToCart",
		Status:      scenario.StatusFailed,
		Start:       start,
		End:         start.Add(3 * time.Second),
		Steps: []scenario.StepResult{
			{Name: "should go to FO home page", Tag: "functional_FO_classic_productPage_quickView_addToCart_goToFo", Status: scenario.StatusPassed, Start: start, End: start.Add(time.Second)},
			{
				Name:       "should proceed to checkout",
				Tag:        "functional_FO_classic_productPage_quickView_addToCart_checkCartPage",
				Status:     scenario.StatusFailed,
				Start:      start,
				End:        start.Add(2 * time.Second),
				Err:        &scenario.AssertionFailure{Step: "should proceed to checkout", Message: "expected: \"Cart\" actual: \"<Order>\""},
				Screenshot: screenshot,
				Snapshot:   "<html><body><div id=\"main\">cart</div></body></html>",
			},
			{Name: "should check product details", Status: scenario.StatusSkipped},
		},
	}
}

func TestWrite(t *testing.T) {
	j := journal.New(100)
	defer j.Close()

	j.ScenarioFinished(failedResult(t))
	j.Record(journal.Event{Kind: journal.KindLog, Message: "Step failed", Tag: "functional_FO_classic_productPage_quickView_addToCart_checkCartPage"})

	var buf bytes.Buffer
	err := report.Write(context.Background(), &buf, j, report.WithTitle("Nightly run"))
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>Nightly run</title>")
	assert.Contains(t, html, "1 scenarios: 0 passed, 1 failed, 0 aborted")
	assert.Contains(t, html, "functional_FO_classic_productPage_quickView_addToCart_checkCartPage")
	assert.Contains(t, html, "badge-error")
	assert.Contains(t, html, "badge-outline")
	assert.Contains(t, html, "&lt;Order&gt;")
	assert.NotContains(t, html, "<Order>")
	assert.Contains(t, html, `class="chroma"`)
	assert.Contains(t, html, "Step failed")
}

func TestWrite_TruncateAfter(t *testing.T) {
	j := journal.New(100)
	defer j.Close()

	j.Record(journal.Event{Kind: journal.KindLog, Message: "HTTP request"})
	j.Record(journal.Event{Kind: journal.KindLog, Message: "Step passed"})

	var buf bytes.Buffer
	require.NoError(t, report.Write(context.Background(), &buf, j, report.WithTruncateAfter(1)))
	assert.NotContains(t, buf.String(), "HTTP request")
	assert.Contains(t, buf.String(), "Step passed")

	buf.Reset()
	require.NoError(t, report.Write(context.Background(), &buf, j, report.WithTruncateAfter(math.MaxUint64)))
	assert.Contains(t, buf.String(), "HTTP request")
	assert.Contains(t, buf.String(), "Step passed")
}

func TestWriteFile(t *testing.T) {
	j := journal.New(100)
	defer j.Close()

	runner := scenario.NewRunner(scenario.RunnerOptions{Sessions: &scenario.FakeSessions{}, Observer: j})
	runner.Run(context.Background(), scenario.New("passing", "", scenario.Step{Name: "noop", Do: func(sc *scenario.Context) error { return nil }}))
	runner.Run(context.Background(), scenario.New("failing", "", scenario.Step{Name: "boom", Do: func(sc *scenario.Context) error { return errors.New("boom") }}))

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, report.WriteFile(context.Background(), path, j))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "2 scenarios: 1 passed, 1 failed, 0 aborted")
}

func TestHandler(t *testing.T) {
	j := journal.New(100)
	defer j.Close()
	result := failedResult(t)
	j.ScenarioFinished(result)

	srv := httptest.NewServer(report.NewHandler(j, report.WithPathPrefix("")))
	defer srv.Close()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"root", "/", http.StatusOK, "should proceed to checkout"},
		{"run", "/run/" + result.RunID.String(), http.StatusOK, "functional_FO_classic_productPage_quickView_addToCart"},
		{"invalid run id", "/run/not-a-uuid", http.StatusBadRequest, "Invalid run id"},
		{"unknown run", "/run/" + uuid.Must(uuid.NewV4()).String(), http.StatusNotFound, "Run not found"},
		{"screenshot", "/screenshot/" + result.RunID.String() + "/1", http.StatusOK, "PNG"},
		{"step without screenshot", "/screenshot/" + result.RunID.String() + "/0", http.StatusNotFound, "Screenshot not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body bytes.Buffer
			_, err = body.ReadFrom(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, body.String(), tt.wantBody)
		})
	}
}

func TestHandler_ScreenshotLinks(t *testing.T) {
	j := journal.New(100)
	defer j.Close()
	result := failedResult(t)
	j.ScenarioFinished(result)

	rec := httptest.NewRecorder()
	report.NewHandler(j, report.WithPathPrefix("/_report")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/_report/screenshot/"+result.RunID.String()+"/1")
}
