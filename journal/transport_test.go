package journal_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/fileutil"
	"github.com/networkteam/shopcheck/journal"
	"github.com/networkteam/shopcheck/scenario"
)

func TestTransport_LogsWithStepLogger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("zip"))
	}))
	defer server.Close()

	j := journal.New(100)
	defer j.Close()

	runner := scenario.NewRunner(scenario.RunnerOptions{
		Sessions: &scenario.FakeSessions{},
		Logger:   slog.New(journal.NewHandler(j, journal.HandlerOptions{})),
	})
	downloader := fileutil.NewDownloader(journal.Transport(nil))
	dest := filepath.Join(t.TempDir(), "module.zip")

	result := runner.Run(context.Background(), scenario.New("download", "test_download",
		scenario.Step{
			Name: "should download the module",
			ID:   "downloadModule",
			Do: func(sc *scenario.Context) error {
				return downloader.Download(sc, server.URL+"/module.zip", dest)
			},
		},
	))
	require.NoError(t, result.Err())

	requests := lo.Filter(j.ByTag("test_download_downloadModule"), func(e journal.Event, _ int) bool {
		return e.Message == "HTTP request"
	})
	require.Len(t, requests, 1)
	assert.Equal(t, result.RunID.String(), requests[0].RunID)

	attrs := lo.SliceToMap(requests[0].Attrs, func(a slog.Attr) (string, string) {
		return a.Key, a.Value.String()
	})
	assert.Equal(t, "GET", attrs["method"])
	assert.Equal(t, "200", attrs["status"])
	assert.Equal(t, server.URL+"/module.zip", attrs["url"])
}

func TestTransport_WithoutStep(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := &http.Client{Transport: journal.Transport(nil)}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
