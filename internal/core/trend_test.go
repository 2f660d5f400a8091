package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/phish-dashboard/internal/core"
)

// newestFirst builds n records one minute apart, newest first. Positions
// listed in phishing are labelled Phishing, the rest Safe.
func newestFirst(n int, phishing ...int) []core.LogRecord {
	isPhishing := make(map[int]bool, len(phishing))
	for _, p := range phishing {
		isPhishing[p] = true
	}

	base := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	records := make([]core.LogRecord, n)
	for i := 0; i < n; i++ {
		label := core.LabelSafe
		if isPhishing[i] {
			label = core.LabelPhishing
		}
		records[i] = core.LogRecord{
			Timestamp: base.Add(-time.Duration(i) * time.Minute),
			Label:     label,
		}
	}
	return records
}

func TestDistribution_FixedCategoryOrder(t *testing.T) {
	agg := core.NewTrendAggregator(12)

	stats := core.StatsSummary{Total: 99, Phishing: 3, Suspicious: 2, Safe: 5}
	assert.Equal(t, core.DistributionSeries{3, 2, 5}, agg.Distribution(stats))
}

func TestDistribution_ZeroStats(t *testing.T) {
	agg := core.NewTrendAggregator(12)

	assert.Equal(t, core.DistributionSeries{0, 0, 0}, agg.Distribution(core.StatsSummary{}))
}

func TestCumulativeTrend_EmptyLogs(t *testing.T) {
	agg := core.NewTrendAggregator(12)

	assert.Empty(t, agg.CumulativeTrend(nil))
	assert.Empty(t, agg.CumulativeTrend([]core.LogRecord{}))
}

func TestCumulativeTrend_WindowAndPrefixSum(t *testing.T) {
	agg := core.NewTrendAggregator(12)

	// 15 records, newest first; phishing at positions 0, 2, 4 — all
	// inside the most recent 12.
	series := agg.CumulativeTrend(newestFirst(15, 0, 2, 4))

	require.Len(t, series, 12)
	assert.Equal(t, 0, series[0].Value)
	assert.Equal(t, 3, series[len(series)-1].Value)
	for i := 1; i < len(series); i++ {
		assert.GreaterOrEqual(t, series[i].Value, series[i-1].Value,
			"cumulative value must be non-decreasing at position %d", i)
	}
}

func TestCumulativeTrend_ChronologicalLabels(t *testing.T) {
	agg := core.NewTrendAggregator(12)

	series := agg.CumulativeTrend(newestFirst(3))

	require.Len(t, series, 3)
	// Input is newest-first starting at 15:00; chronological output
	// runs 14:58, 14:59, 15:00.
	assert.Equal(t, "14:58", series[0].Label)
	assert.Equal(t, "14:59", series[1].Label)
	assert.Equal(t, "15:00", series[2].Label)
}

func TestCumulativeTrend_FewerRecordsThanWindow(t *testing.T) {
	agg := core.NewTrendAggregator(12)

	series := agg.CumulativeTrend(newestFirst(5, 1))

	require.Len(t, series, 5)
	assert.Equal(t, 1, series[len(series)-1].Value)
}

func TestCumulativeTrend_OldestPhishingInsideWindow(t *testing.T) {
	agg := core.NewTrendAggregator(4)

	// Phishing at position 3 is the oldest record of the window, so the
	// series starts at 1 and stays there.
	series := agg.CumulativeTrend(newestFirst(6, 3))

	require.Len(t, series, 4)
	assert.Equal(t, 1, series[0].Value)
	assert.Equal(t, 1, series[len(series)-1].Value)
}

func TestCumulativeTrend_PhishingOutsideWindowIgnored(t *testing.T) {
	agg := core.NewTrendAggregator(4)

	// Phishing at position 5 falls outside the 4-record window.
	series := agg.CumulativeTrend(newestFirst(6, 5))

	require.Len(t, series, 4)
	assert.Equal(t, 0, series[len(series)-1].Value)
}

func TestNewTrendAggregator_DefaultWindow(t *testing.T) {
	agg := core.NewTrendAggregator(0)

	series := agg.CumulativeTrend(newestFirst(20))
	assert.Len(t, series, core.DefaultTrendWindow)
}
