package core

import (
	"context"
	"fmt"
)

// Classifier defines the interface for the remote classification service
type Classifier interface {
	// Classify submits an email body and returns the service's verdict
	Classify(ctx context.Context, req ScanRequest) (*ScanVerdict, error)
}

// DisplaySink receives rendered views for a single display region.
// The owning ScanController is the only writer.
type DisplaySink interface {
	Render(view ResultView)
}

// ScanHistory records classified scans and serves page-load data
type ScanHistory interface {
	// Append stores a new record as the most recent entry
	Append(rec LogRecord)

	// Recent returns up to n records, newest first
	Recent(n int) []LogRecord

	// Stats returns per-category counts over all recorded scans
	Stats() StatsSummary
}

// ServiceError is a non-success response from the classification service.
// Message carries the service-provided error text and may be empty; the
// controller substitutes a generic fallback when it is.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("classification service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("classification service returned status %d: %s", e.StatusCode, e.Message)
}
