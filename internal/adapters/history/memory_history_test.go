package history_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/phish-dashboard/internal/adapters/history"
	"github.com/mikey/phish-dashboard/internal/core"
)

func record(minutesAgo int, label core.Label) core.LogRecord {
	return core.LogRecord{
		Timestamp: time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC).Add(-time.Duration(minutesAgo) * time.Minute),
		Label:     label,
	}
}

func TestMemoryHistory_Empty(t *testing.T) {
	h := history.NewMemoryHistory(10, zap.NewNop())

	assert.Empty(t, h.Recent(0))
	assert.Equal(t, core.StatsSummary{}, h.Stats())
}

func TestMemoryHistory_NewestFirst(t *testing.T) {
	h := history.NewMemoryHistory(10, zap.NewNop())

	h.Append(record(2, core.LabelSafe))
	h.Append(record(1, core.LabelSuspicious))
	h.Append(record(0, core.LabelPhishing))

	recent := h.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, core.LabelPhishing, recent[0].Label)
	assert.Equal(t, core.LabelSuspicious, recent[1].Label)
	assert.Equal(t, core.LabelSafe, recent[2].Label)

	limited := h.Recent(2)
	require.Len(t, limited, 2)
	assert.Equal(t, core.LabelPhishing, limited[0].Label)
}

func TestMemoryHistory_Stats(t *testing.T) {
	h := history.NewMemoryHistory(10, zap.NewNop())

	h.Append(record(3, core.LabelPhishing))
	h.Append(record(2, core.LabelPhishing))
	h.Append(record(1, core.LabelSuspicious))
	h.Append(record(0, core.LabelSafe))

	stats := h.Stats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Phishing)
	assert.Equal(t, 1, stats.Suspicious)
	assert.Equal(t, 1, stats.Safe)
}

func TestMemoryHistory_BoundedRecords(t *testing.T) {
	h := history.NewMemoryHistory(2, zap.NewNop())

	h.Append(record(2, core.LabelSafe))
	h.Append(record(1, core.LabelSafe))
	h.Append(record(0, core.LabelPhishing))

	recent := h.Recent(0)
	require.Len(t, recent, 2)
	assert.Equal(t, core.LabelPhishing, recent[0].Label)

	// Counts keep accumulating past the record bound.
	assert.Equal(t, 3, h.Stats().Total)
}
