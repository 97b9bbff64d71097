package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerRecordsEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.Info("first")
	mock.Warn("second", Field{Key: "k", Value: "v"})

	entries := mock.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "first", entries[0].Message)
	assert.True(t, mock.HasMessage("second"))
	assert.False(t, mock.HasMessage("third"))
}

func TestMockLoggerDerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.WithField("k", "v").Info("via field")
	mock.WithError(errors.New("boom")).Error("via error")
	mock.WithFields(Field{Key: "a", Value: 1}).Debug("via fields")

	assert.Len(t, mock.Entries(), 3)
	assert.True(t, mock.HasMessage("via error"))
}

func TestLogrusAdapterLevels(t *testing.T) {
	logger := NewLogrusAdapter("debug", "json")
	require.NotNil(t, logger)

	// Derived loggers keep working without panicking.
	logger.WithField("k", "v").Debug("hello")
	logger.WithError(errors.New("boom")).Warn("careful")
}
