//go:build acceptance
// +build acceptance

package acceptance

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck"
	"github.com/networkteam/shopcheck/internal/config"
)

// NewSuite creates a suite running a real browser against store.
// Set HEADLESS=false environment variable to run with visible browser for debugging.
func NewSuite(t *testing.T, store *Storefront) *shopcheck.Suite {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.FO.URL = store.FOURL
	cfg.BO.URL = store.BOURL
	cfg.Browser.Headless = os.Getenv("HEADLESS") != "false"
	cfg.Artifacts.Screenshots = t.TempDir()
	cfg.Artifacts.Downloads = t.TempDir()

	var logHandler slog.Handler = slog.NewTextHandler(io.Discard, nil)
	if testing.Verbose() {
		logHandler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	suite, err := shopcheck.New(shopcheck.Options{
		Config:     cfg,
		LogHandler: logHandler,
	})
	require.NoError(t, err, "failed to start suite")
	t.Cleanup(func() {
		assert.NoError(t, suite.Close())
	})
	return suite
}
