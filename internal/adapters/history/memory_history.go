package history

import (
	"sync"

	"github.com/mikey/phish-dashboard/internal/core"
	"go.uber.org/zap"
)

// MemoryHistory is a bounded in-memory implementation of the ScanHistory
// interface. Records live for the lifetime of the process only; there is
// no persistence.
type MemoryHistory struct {
	mu         sync.RWMutex
	records    []core.LogRecord // newest first
	stats      core.StatsSummary
	maxEntries int
	logger     *zap.Logger
}

// NewMemoryHistory creates a new in-memory scan history. maxEntries
// bounds the retained record list; counts in Stats keep accumulating
// past the bound.
func NewMemoryHistory(maxEntries int, logger *zap.Logger) *MemoryHistory {
	return &MemoryHistory{
		records:    make([]core.LogRecord, 0, maxEntries),
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// Append stores a new record as the most recent entry
func (h *MemoryHistory) Append(rec core.LogRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append([]core.LogRecord{rec}, h.records...)
	if h.maxEntries > 0 && len(h.records) > h.maxEntries {
		h.records = h.records[:h.maxEntries]
	}

	h.stats.Total++
	switch rec.Label {
	case core.LabelPhishing:
		h.stats.Phishing++
	case core.LabelSuspicious:
		h.stats.Suspicious++
	case core.LabelSafe:
		h.stats.Safe++
	}

	h.logger.Debug("Recorded scan",
		zap.String("label", string(rec.Label)),
		zap.Int("total", h.stats.Total))
}

// Recent returns up to n records, newest first. n <= 0 returns all
// retained records.
func (h *MemoryHistory) Recent(n int) []core.LogRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n <= 0 || n > len(h.records) {
		n = len(h.records)
	}
	out := make([]core.LogRecord, n)
	copy(out, h.records[:n])
	return out
}

// Stats returns per-category counts over all recorded scans
func (h *MemoryHistory) Stats() core.StatsSummary {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.stats
}
