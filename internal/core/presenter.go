package core

import (
	"fmt"
	"html"
	"strings"
)

// Style classes understood by the dashboard stylesheet.
const (
	StylePhishing   = "phishing"
	StyleSuspicious = "warning"
	StyleSafe       = "safe"
	StyleWarning    = "warning"
)

const (
	// ConfidenceUnknown is rendered when the service omits a confidence value.
	ConfidenceUnknown = "N/A"

	noReasonFallback = "No specific reason"
	quarantineNotice = "This email has been quarantined."
	scanningMessage  = "Scanning..."
)

// ResultPresenter maps verdicts and error messages to display views.
// It is pure: no state, no I/O, deterministic for a given input.
type ResultPresenter struct{}

// FormatConfidence renders a confidence value as a percentage with one
// decimal place, or ConfidenceUnknown when the value is absent.
func (ResultPresenter) FormatConfidence(confidence *float64) string {
	if confidence == nil {
		return ConfidenceUnknown
	}
	return fmt.Sprintf("%.1f%%", *confidence*100)
}

// Verdict renders a classification verdict: label, confidence, reason,
// and a quarantine notice when the service isolated the email.
func (p ResultPresenter) Verdict(v *ScanVerdict) ResultView {
	reason := v.Reason
	if reason == "" {
		reason = noReasonFallback
	}

	style := styleForLabel(v.Label)

	var b strings.Builder
	fmt.Fprintf(&b, "<h3 class=%q>%s</h3>", style, html.EscapeString(string(v.Label)))
	fmt.Fprintf(&b, "<p>Confidence: %s</p>", p.FormatConfidence(v.Confidence))
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(reason))
	if v.Quarantined {
		fmt.Fprintf(&b, "<p class=\"quarantine\">%s</p>", quarantineNotice)
	}

	return ResultView{Markup: b.String(), StyleClass: style, Final: true}
}

// Error renders a validation, service, or transport error message.
// Errors always use the warning style.
func (ResultPresenter) Error(message string) ResultView {
	return ResultView{
		Markup:     fmt.Sprintf("<p>%s</p>", html.EscapeString(message)),
		StyleClass: StyleWarning,
		Final:      true,
	}
}

// Scanning renders the transient in-progress view shown while a request
// is outstanding. It is never a final state.
func (ResultPresenter) Scanning() ResultView {
	return ResultView{
		Markup:     fmt.Sprintf("<p>%s</p>", scanningMessage),
		StyleClass: StyleWarning,
		Final:      false,
	}
}

func styleForLabel(label Label) string {
	switch label {
	case LabelPhishing:
		return StylePhishing
	case LabelSuspicious:
		return StyleSuspicious
	case LabelSafe:
		return StyleSafe
	default:
		return StyleWarning
	}
}
