package web

import (
	"sync"

	"github.com/mikey/phish-dashboard/internal/core"
)

// displayRegion is the single mutable view slot for one hosting route.
// It implements core.DisplaySink; the owning ScanController is the only
// writer, page handlers only read the latest view.
type displayRegion struct {
	mu   sync.RWMutex
	view core.ResultView
}

func (r *displayRegion) Render(view core.ResultView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view = view
}

func (r *displayRegion) View() core.ResultView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view
}

// scanRoute pairs a controller with the display region it owns.
type scanRoute struct {
	controller *core.ScanController
	region     *displayRegion
}
