package shopcheck_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck"
	"github.com/networkteam/shopcheck/journal"
	"github.com/networkteam/shopcheck/scenario"
)

func newSuite(t *testing.T, sessions *scenario.FakeSessions) *shopcheck.Suite {
	t.Helper()

	suite, err := shopcheck.New(shopcheck.Options{
		ConfigPath: t.TempDir(),
		LogHandler: slog.NewTextHandler(io.Discard, nil),
		Sessions:   sessions,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, suite.Close())
	})
	return suite
}

func TestSuite_Run(t *testing.T) {
	sessions := &scenario.FakeSessions{}
	suite := newSuite(t, sessions)

	s := scenario.New("checkout", "test_checkout",
		scenario.Step{
			Name: "should log",
			ID:   "log",
			Do: func(sc *scenario.Context) error {
				sc.Logger().Info("Checking cart")
				return nil
			},
		},
		scenario.Step{
			Name: "should fail",
			ID:   "fail",
			Do: func(sc *scenario.Context) error {
				assert.Equal(sc, 1, 2)
				return nil
			},
		},
	).After(scenario.New("cleanup", "test_checkout_postTest_0", scenario.Step{
		Name: "should clean up",
		Do:   func(sc *scenario.Context) error { return nil },
	}))

	result := suite.Run(context.Background(), s)

	var failure *scenario.AssertionFailure
	require.ErrorAs(t, result.Err(), &failure)
	assert.Len(t, sessions.Sessions(), 2)

	results := suite.Journal().Results()
	require.Len(t, results, 1)
	assert.Same(t, result, results[0])

	logs := suite.Journal().ByTag("test_checkout_log")
	assert.True(t, containsMessage(logs, "Checking cart"))
}

func TestSuite_RunAll(t *testing.T) {
	suite := newSuite(t, &scenario.FakeSessions{})

	ok := scenario.New("ok", "test_ok", scenario.Step{Name: "pass", Do: func(*scenario.Context) error { return nil }})
	failing := scenario.New("failing", "test_failing", scenario.Step{Name: "boom", Do: func(*scenario.Context) error {
		return errors.New("boom")
	}})

	results := suite.RunAll(context.Background(), []*scenario.Scenario{ok, failing})

	require.Len(t, results, 2)
	assert.True(t, results[0].Passed())
	assert.False(t, results[1].Passed())
	assert.Len(t, suite.Journal().Failed(), 1)
}

func TestSuite_Report(t *testing.T) {
	suite := newSuite(t, &scenario.FakeSessions{})
	suite.Run(context.Background(), scenario.New("ok", "test_ok", scenario.Step{Name: "pass", Do: func(*scenario.Context) error { return nil }}))

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, suite.WriteReport(context.Background(), path))
	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "test_ok")

	rec := httptest.NewRecorder()
	http.StripPrefix("/_report", suite.ReportHandler("/_report")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_report/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSuite_Env(t *testing.T) {
	t.Setenv("SHOPCHECK_FO_URL", "http://shop.test/")
	suite := newSuite(t, &scenario.FakeSessions{})

	assert.Equal(t, "http://shop.test/", suite.Env().Home.URL)
	assert.Equal(t, suite.Config().BO.Email, suite.Env().Employee.Email)
}

func containsMessage(events []journal.Event, message string) bool {
	for _, e := range events {
		if e.Message == message {
			return true
		}
	}
	return false
}
