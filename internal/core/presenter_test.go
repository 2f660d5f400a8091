package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikey/phish-dashboard/internal/core"
)

func floatPtr(f float64) *float64 { return &f }

func TestFormatConfidence(t *testing.T) {
	var p core.ResultPresenter

	tests := []struct {
		name       string
		confidence *float64
		want       string
	}{
		{"absent", nil, "N/A"},
		{"one decimal", floatPtr(0.873), "87.3%"},
		{"full", floatPtr(1.0), "100.0%"},
		{"zero", floatPtr(0.0), "0.0%"},
		{"rounded", floatPtr(0.876), "87.6%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.FormatConfidence(tt.confidence))
		})
	}
}

func TestVerdict_StyleClasses(t *testing.T) {
	var p core.ResultPresenter

	tests := []struct {
		label core.Label
		style string
	}{
		{core.LabelPhishing, "phishing"},
		{core.LabelSuspicious, "warning"},
		{core.LabelSafe, "safe"},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			view := p.Verdict(&core.ScanVerdict{Label: tt.label})
			assert.Equal(t, tt.style, view.StyleClass)
			assert.True(t, view.Final)
		})
	}
}

func TestVerdict_MarkupOrder(t *testing.T) {
	var p core.ResultPresenter

	view := p.Verdict(&core.ScanVerdict{
		Label:      core.LabelPhishing,
		Confidence: floatPtr(0.97),
		Reason:     "Spoofed sender domain",
	})

	labelPos := strings.Index(view.Markup, "Phishing")
	confidencePos := strings.Index(view.Markup, "97.0%")
	reasonPos := strings.Index(view.Markup, "Spoofed sender domain")

	assert.GreaterOrEqual(t, labelPos, 0)
	assert.Greater(t, confidencePos, labelPos)
	assert.Greater(t, reasonPos, confidencePos)
}

func TestVerdict_ReasonFallback(t *testing.T) {
	var p core.ResultPresenter

	view := p.Verdict(&core.ScanVerdict{Label: core.LabelSafe})
	assert.Contains(t, view.Markup, "No specific reason")
}

func TestVerdict_QuarantineNotice(t *testing.T) {
	var p core.ResultPresenter

	quarantined := p.Verdict(&core.ScanVerdict{Label: core.LabelPhishing, Quarantined: true})
	assert.Contains(t, quarantined.Markup, "quarantined")

	clean := p.Verdict(&core.ScanVerdict{Label: core.LabelPhishing, Quarantined: false})
	assert.NotContains(t, clean.Markup, "quarantined")
}

func TestVerdict_EscapesServiceText(t *testing.T) {
	var p core.ResultPresenter

	view := p.Verdict(&core.ScanVerdict{
		Label:  core.LabelSafe,
		Reason: "<script>alert(1)</script>",
	})
	assert.NotContains(t, view.Markup, "<script>")
}

func TestError_AlwaysWarning(t *testing.T) {
	var p core.ResultPresenter

	view := p.Error("Scan failed")
	assert.Equal(t, "warning", view.StyleClass)
	assert.Contains(t, view.Markup, "Scan failed")
	assert.True(t, view.Final)
}

func TestScanning_Transient(t *testing.T) {
	var p core.ResultPresenter

	view := p.Scanning()
	assert.Contains(t, view.Markup, "Scanning...")
	assert.False(t, view.Final)
}
