package core

import (
	"fmt"
	"time"
)

// Label is the classification category assigned to a scanned email.
type Label string

const (
	LabelPhishing   Label = "Phishing"
	LabelSuspicious Label = "Suspicious"
	LabelSafe       Label = "Safe"
)

// ParseLabel validates a label string received from the classification service.
func ParseLabel(s string) (Label, error) {
	switch Label(s) {
	case LabelPhishing, LabelSuspicious, LabelSafe:
		return Label(s), nil
	default:
		return "", fmt.Errorf("unknown classification label %q", s)
	}
}

// MaxEmailSize is the largest accepted email body, in characters, after
// trimming.
const MaxEmailSize = 100000

// ScanRequest is the payload sent to the classification service.
// EmailText is trimmed and between 1 and MaxEmailSize characters; the
// controller never sends a request that violates this.
type ScanRequest struct {
	EmailText string
}

// ScanVerdict is the classification outcome for one submitted email.
// Only the remote service produces verdicts; validation and transport
// failures are rendered as error views, never as synthesized verdicts.
type ScanVerdict struct {
	Label       Label
	Confidence  *float64 // in [0,1], nil when the service omits it
	Reason      string   // empty when the service omits it
	Quarantined bool
}

// LogRecord is one historical scan entry. Sequences of records are
// always ordered newest-first.
type LogRecord struct {
	Timestamp time.Time
	Label     Label
}

// StatsSummary holds per-category counts of historical scans. Total may
// exceed the sum of the three counts; unmapped labels are ignored, not
// an error.
type StatsSummary struct {
	Total      int
	Phishing   int
	Suspicious int
	Safe       int
}

// DistributionSeries is the per-category count triple handed to the chart
// renderer. Order is fixed: Phishing, Suspicious, Safe.
type DistributionSeries [3]int

// TrendPoint is one point of the cumulative trend: a time label and the
// running count of phishing verdicts up to that point.
type TrendPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// CumulativeSeries is a chronological, monotonically non-decreasing
// sequence of trend points.
type CumulativeSeries []TrendPoint

// ResultView is the rendered representation of a verdict or error,
// ready for the display region.
type ResultView struct {
	Markup     string
	StyleClass string
	Final      bool // false only for the transient "Scanning..." view
}
