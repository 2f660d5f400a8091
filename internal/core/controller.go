package core

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// User-facing messages for the three terminal error kinds.
const (
	MsgEmptyInput     = "Please paste an email first!"
	MsgOversizedInput = "Email too large. Max 100,000 characters."
	MsgNetworkError   = "Network error. Please try again."
	MsgScanFailed     = "Scan failed"
)

// ControllerState is the scan workflow state.
type ControllerState int

const (
	StateIdle ControllerState = iota
	StateSubmitting
	StateDisplaying
	StateDisplayingError
)

// OutcomeKind distinguishes how a submission attempt terminated.
type OutcomeKind int

const (
	OutcomeVerdict OutcomeKind = iota
	OutcomeValidation
	OutcomeService
	OutcomeTransport
)

// ScanOutcome is the terminal result of one accepted submission.
type ScanOutcome struct {
	Kind    OutcomeKind
	View    ResultView
	Verdict *ScanVerdict // nil unless Kind is OutcomeVerdict
	Message string       // error message, empty on OutcomeVerdict
}

// ScanController owns the submit-scan workflow: it validates input,
// issues the remote classification request, drives the display region,
// and on the dashboard schedules a one-shot statistics refresh after a
// successful scan. Only Submitting blocks a new submission; the two
// display states are left by the next submit.
type ScanController struct {
	classifier Classifier
	history    ScanHistory
	presenter  ResultPresenter
	sink       DisplaySink
	logger     *zap.Logger

	// dashboardHosted gates the refresh policy: only the controller on
	// the dashboard landing route schedules reloads, and only on success.
	dashboardHosted bool
	refreshDelay    time.Duration
	refresh         func()

	mu    sync.Mutex
	state ControllerState
}

// NewScanController creates a new scan controller
func NewScanController(
	classifier Classifier,
	history ScanHistory,
	sink DisplaySink,
	logger *zap.Logger,
	dashboardHosted bool,
	refreshDelay time.Duration,
	refresh func(),
) *ScanController {
	return &ScanController{
		classifier:      classifier,
		history:         history,
		sink:            sink,
		logger:          logger,
		dashboardHosted: dashboardHosted,
		refreshDelay:    refreshDelay,
		refresh:         refresh,
		state:           StateIdle,
	}
}

// State returns the current workflow state.
func (c *ScanController) State() ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs one scan attempt for the given raw input text. It returns
// the terminal outcome and true when the submission was accepted, or
// (nil, false) when a scan is already in flight and the submission is
// ignored without issuing a request.
func (c *ScanController) Submit(ctx context.Context, raw string) (*ScanOutcome, bool) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		c.logger.Debug("Submission ignored, scan already in flight")
		return nil, false
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		c.state = StateDisplayingError
		c.mu.Unlock()
		return c.fail(OutcomeValidation, MsgEmptyInput), true
	}
	if utf8.RuneCountInString(trimmed) > MaxEmailSize {
		c.state = StateDisplayingError
		c.mu.Unlock()
		return c.fail(OutcomeValidation, MsgOversizedInput), true
	}

	c.state = StateSubmitting
	c.mu.Unlock()

	requestID := uuid.NewString()
	c.sink.Render(c.presenter.Scanning())
	c.logger.Info("Submitting email for classification",
		zap.String("request_id", requestID),
		zap.Int("body_size", len(trimmed)))

	verdict, err := c.classifier.Classify(ctx, ScanRequest{EmailText: trimmed})
	if err != nil {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			msg := svcErr.Message
			if msg == "" {
				msg = MsgScanFailed
			}
			c.logger.Warn("Scan rejected by classification service",
				zap.String("request_id", requestID),
				zap.Int("status", svcErr.StatusCode))
			return c.conclude(OutcomeService, msg), true
		}
		c.logger.Error("Classification request failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		return c.conclude(OutcomeTransport, MsgNetworkError), true
	}

	if c.history != nil {
		c.history.Append(LogRecord{Timestamp: time.Now(), Label: verdict.Label})
	}

	view := c.presenter.Verdict(verdict)
	c.mu.Lock()
	c.state = StateDisplaying
	c.mu.Unlock()
	c.sink.Render(view)

	c.logger.Info("Scan complete",
		zap.String("request_id", requestID),
		zap.String("label", string(verdict.Label)),
		zap.Bool("quarantined", verdict.Quarantined))

	if c.dashboardHosted {
		c.scheduleRefresh(requestID)
	}

	return &ScanOutcome{Kind: OutcomeVerdict, View: view, Verdict: verdict}, true
}

// RefreshDelay reports the reload hint for this controller: the delay
// after which the hosting page refreshes its aggregates, and whether the
// policy applies at all on this route.
func (c *ScanController) RefreshDelay() (time.Duration, bool) {
	return c.refreshDelay, c.dashboardHosted
}

func (c *ScanController) fail(kind OutcomeKind, msg string) *ScanOutcome {
	view := c.presenter.Error(msg)
	c.sink.Render(view)
	return &ScanOutcome{Kind: kind, View: view, Message: msg}
}

func (c *ScanController) conclude(kind OutcomeKind, msg string) *ScanOutcome {
	c.mu.Lock()
	c.state = StateDisplayingError
	c.mu.Unlock()
	return c.fail(kind, msg)
}

// scheduleRefresh arms the one-shot refresh timer. The timer handle is
// dropped on purpose: once scheduled it cannot be cancelled by any later
// event.
func (c *ScanController) scheduleRefresh(requestID string) {
	if c.refresh == nil {
		return
	}
	time.AfterFunc(c.refreshDelay, c.refresh)
	c.logger.Debug("Scheduled dashboard refresh",
		zap.String("request_id", requestID),
		zap.Duration("delay", c.refreshDelay))
}
