package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("table loaded", slog.Int("rows", 12))
		logger.Error("append failed", slog.String("operation", "append"))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("table loaded"))
		assert.True(t, handler.ContainsAttr("operation", "append"))
		assert.True(t, handler.ContainsAttr("rows", int64(12)))
	})

	t.Run("keeps attributes from With", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "loader")).Warn("row skipped")

		AssertLogContains(t, handler, slog.LevelWarn, "row skipped")
		assert.True(t, handler.ContainsAttr("component", "loader"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Info("one")

		handler.Clear()

		assert.Zero(t, handler.Count())
		AssertNoErrors(t, handler)
	})
}

func TestSampleRecords(t *testing.T) {
	records := SampleRecords()

	assert.Len(t, records, 8)
	for _, r := range records {
		assert.Equal(t, int(r.Date.Month()), int(r.Month))
		assert.NotZero(t, r.Quarter)
	}
}
