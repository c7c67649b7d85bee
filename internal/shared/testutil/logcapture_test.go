package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogCapture(t *testing.T) {
	logger, capture := NewTestLogger(t)

	logger.Info("workbook ingested", "file", "penalties.xlsx", "rows", 12)
	logger.Error("blob store unreachable")

	entries := capture.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "workbook ingested", entries[0].Message)
	assert.Equal(t, "penalties.xlsx", entries[0].Attrs["file"])

	assert.True(t, capture.HasMessage("blob store"))
	assert.False(t, capture.HasMessage("never logged"))
	assert.True(t, capture.HasAttr("file", "penalties.xlsx"))
	assert.False(t, capture.HasAttr("file", "other.xlsx"))
}

func TestLogCaptureCopiesEntries(t *testing.T) {
	logger, capture := NewTestLogger(t)
	logger.Info("first")

	entries := capture.Entries()
	logger.Info("second")

	require.Len(t, entries, 1)
	require.Len(t, capture.Entries(), 2)
}
