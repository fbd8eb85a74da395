package journal_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/journal"
)

func TestHandler_CorrelatesAttributes(t *testing.T) {
	j := journal.New(10)
	defer j.Close()

	logger := slog.New(journal.NewHandler(j, journal.HandlerOptions{}))
	logger.With(slog.String("run_id", "run-1"), slog.String("tag", "base_goToFo")).
		Info("Step failed", slog.String("step", "should go to FO"))

	events := j.Events()
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, journal.KindLog, e.Kind)
	assert.Equal(t, "Step failed", e.Message)
	assert.Equal(t, "run-1", e.RunID)
	assert.Equal(t, "base_goToFo", e.Tag)
	assert.Equal(t, "should go to FO", e.Step)
}

func TestHandler_Level(t *testing.T) {
	j := journal.New(10)
	defer j.Close()

	logger := slog.New(journal.NewHandler(j, journal.HandlerOptions{Level: slog.LevelWarn}))
	logger.Info("ignored")
	logger.Warn("kept")

	events := j.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "kept", events[0].Message)
	assert.Equal(t, slog.LevelWarn, events[0].Level)
}

func TestHandler_Groups(t *testing.T) {
	j := journal.New(10)
	defer j.Close()

	logger := slog.New(journal.NewHandler(j, journal.HandlerOptions{}))
	logger.WithGroup("browser").With(slog.String("name", "chromium")).Info("Launched", slog.Bool("headless", true))

	events := j.Events()
	require.Len(t, events, 1)

	attrs := events[0].Attrs
	require.NotEmpty(t, attrs)
	for _, attr := range attrs {
		assert.Equal(t, "browser", attr.Key)
		assert.Equal(t, slog.KindGroup, attr.Value.Kind())
	}
}
