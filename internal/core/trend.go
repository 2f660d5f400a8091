package core

// DefaultTrendWindow is the number of most recent scans covered by the
// cumulative trend chart.
const DefaultTrendWindow = 12

// timeLabelFormat renders hour:minute with two-digit fields for chart labels.
const timeLabelFormat = "15:04"

// TrendAggregator converts scan statistics and history into chart-ready
// series. Both transforms are pure and deterministic.
type TrendAggregator struct {
	windowSize int
}

// NewTrendAggregator creates an aggregator with the given trend window.
// Non-positive window sizes fall back to DefaultTrendWindow.
func NewTrendAggregator(windowSize int) *TrendAggregator {
	if windowSize <= 0 {
		windowSize = DefaultTrendWindow
	}
	return &TrendAggregator{windowSize: windowSize}
}

// Distribution returns per-category counts in fixed chart order:
// Phishing, Suspicious, Safe. Total is deliberately ignored.
func (a *TrendAggregator) Distribution(stats StatsSummary) DistributionSeries {
	return DistributionSeries{stats.Phishing, stats.Suspicious, stats.Safe}
}

// CumulativeTrend builds the running phishing count over the most recent
// scans. Input records are newest-first; the result is chronological
// (oldest-first) and non-decreasing. An empty input yields an empty series.
func (a *TrendAggregator) CumulativeTrend(logs []LogRecord) CumulativeSeries {
	if len(logs) == 0 {
		return CumulativeSeries{}
	}

	n := a.windowSize
	if len(logs) < n {
		n = len(logs)
	}

	series := make(CumulativeSeries, 0, n)
	sum := 0
	// Walk the window back to front to restore chronological order.
	for i := n - 1; i >= 0; i-- {
		rec := logs[i]
		if rec.Label == LabelPhishing {
			sum++
		}
		series = append(series, TrendPoint{
			Label: rec.Timestamp.Format(timeLabelFormat),
			Value: sum,
		})
	}
	return series
}
