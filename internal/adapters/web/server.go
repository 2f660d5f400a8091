package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mikey/phish-dashboard/internal/config"
	"github.com/mikey/phish-dashboard/internal/core"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Display colors for the distribution chart, in series order
// Phishing, Suspicious, Safe.
var distributionColors = []string{"#e74c3c", "#f39c12", "#2ecc71"}

// Server is the dashboard HTTP surface: the landing page, the standalone
// scan page, the log page, the scan API, and the chart data endpoint.
type Server struct {
	serverCfg  config.ServerConfig
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
	templates  *template.Template

	history        core.ScanHistory
	trends         *core.TrendAggregator
	recentPageSize int

	dashboard  *scanRoute
	standalone *scanRoute

	// chartsMu guards the chart snapshot refreshed by the controller's
	// one-shot timer and by dashboard page loads.
	chartsMu sync.RWMutex
	charts   chartPayload
}

// chartPayload is the prepared series pair handed to the chart renderer.
type chartPayload struct {
	Distribution distributionPayload   `json:"distribution"`
	Trend        core.CumulativeSeries `json:"trend"`
}

type distributionPayload struct {
	Labels []string                `json:"labels"`
	Values core.DistributionSeries `json:"values"`
	Colors []string                `json:"colors"`
}

// NewServer creates the dashboard server and its two scan controllers:
// one hosted on the landing route (refresh policy on) and one on the
// standalone scan route (refresh policy off).
func NewServer(
	cfg *config.Config,
	classifier core.Classifier,
	hist core.ScanHistory,
	trends *core.TrendAggregator,
	logger *zap.Logger,
) (*Server, error) {
	serverCfg, err := cfg.GetServer()
	if err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}
	scanCfg, err := cfg.GetScan()
	if err != nil {
		return nil, fmt.Errorf("invalid scan config: %w", err)
	}
	historyCfg := cfg.GetHistory()

	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		serverCfg:      serverCfg,
		logger:         logger,
		router:         chi.NewRouter(),
		templates:      templates,
		history:        hist,
		trends:         trends,
		recentPageSize: historyCfg.RecentPageSize,
	}

	dashboardRegion := &displayRegion{}
	s.dashboard = &scanRoute{
		region: dashboardRegion,
		controller: core.NewScanController(
			classifier, hist, dashboardRegion, logger,
			true, scanCfg.RefreshDelay, s.refreshCharts,
		),
	}

	standaloneRegion := &displayRegion{}
	s.standalone = &scanRoute{
		region: standaloneRegion,
		controller: core.NewScanController(
			classifier, hist, standaloneRegion, logger,
			false, scanCfg.RefreshDelay, nil,
		),
	}

	s.refreshCharts()
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDashboard)
	r.Get("/scan", s.handleScanPage)
	r.Get("/logs", s.handleLogs)
	r.Post("/scan_api", s.handleScanAPI)
	r.Get("/api/trends", s.handleTrends)
}

// ServeHTTP makes the server usable directly as an http.Handler in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start starts serving the dashboard
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.serverCfg.ListenAddress,
		Handler:      s.router,
		ReadTimeout:  s.serverCfg.ReadTimeout,
		WriteTimeout: s.serverCfg.WriteTimeout,
	}

	s.logger.Info("Dashboard server starting",
		zap.String("address", s.serverCfg.ListenAddress))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// refreshCharts rebuilds the chart snapshot from the history store. It
// runs at startup, on dashboard page loads, and as the one-shot refresh
// the dashboard controller schedules after a successful scan.
func (s *Server) refreshCharts() {
	payload := chartPayload{
		Distribution: distributionPayload{
			Labels: []string{
				string(core.LabelPhishing),
				string(core.LabelSuspicious),
				string(core.LabelSafe),
			},
			Values: s.trends.Distribution(s.history.Stats()),
			Colors: distributionColors,
		},
		Trend: s.trends.CumulativeTrend(s.history.Recent(0)),
	}

	s.chartsMu.Lock()
	s.charts = payload
	s.chartsMu.Unlock()
}

func (s *Server) chartSnapshot() chartPayload {
	s.chartsMu.RLock()
	defer s.chartsMu.RUnlock()
	return s.charts
}

// pageData is the template payload shared by all pages. ResultMarkup is
// presenter output, already escaped where it embeds service text.
type pageData struct {
	Stats        core.StatsSummary
	Logs         []logRow
	ResultMarkup template.HTML
	ResultStyle  string
	HasResult    bool
	ChartJSON    template.JS
}

type logRow struct {
	Timestamp string
	Label     core.Label
	Style     string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.refreshCharts()
	view := s.dashboard.region.View()

	data := pageData{
		Stats:        s.history.Stats(),
		Logs:         toLogRows(s.history.Recent(s.recentPageSize)),
		ResultMarkup: template.HTML(view.Markup),
		ResultStyle:  view.StyleClass,
		HasResult:    view.Markup != "",
		ChartJSON:    s.chartJSON(),
	}
	s.renderPage(w, "dashboard.html", data)
}

func (s *Server) handleScanPage(w http.ResponseWriter, r *http.Request) {
	view := s.standalone.region.View()
	data := pageData{
		ResultMarkup: template.HTML(view.Markup),
		ResultStyle:  view.StyleClass,
		HasResult:    view.Markup != "",
	}
	s.renderPage(w, "scan.html", data)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Stats: s.history.Stats(),
		Logs:  toLogRows(s.history.Recent(0)),
	}
	s.renderPage(w, "logs.html", data)
}

// scanAPIRequest is the scan API wire format. Context selects the hosting
// route; the dashboard landing context is the default.
type scanAPIRequest struct {
	EmailText string `json:"email_text"`
	Context   string `json:"context"`
}

type scanAPIResponse struct {
	Label             core.Label `json:"label"`
	Confidence        *float64   `json:"confidence,omitempty"`
	ConfidenceDisplay string     `json:"confidence_display"`
	Reason            string     `json:"reason,omitempty"`
	Quarantined       bool       `json:"quarantined"`
	StyleClass        string     `json:"style_class"`
	Markup            string     `json:"markup"`
	RefreshAfterMs    int64      `json:"refresh_after_ms,omitempty"`
}

func (s *Server) handleScanAPI(w http.ResponseWriter, r *http.Request) {
	var req scanAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	route := s.dashboard
	if req.Context == "standalone" {
		route = s.standalone
	}

	outcome, accepted := route.controller.Submit(r.Context(), req.EmailText)
	if !accepted {
		s.writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Scan already in progress"})
		return
	}

	switch outcome.Kind {
	case core.OutcomeValidation:
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": outcome.Message})
	case core.OutcomeService, core.OutcomeTransport:
		s.writeJSON(w, http.StatusBadGateway, map[string]string{"error": outcome.Message})
	default:
		var presenter core.ResultPresenter
		resp := scanAPIResponse{
			Label:             outcome.Verdict.Label,
			Confidence:        outcome.Verdict.Confidence,
			ConfidenceDisplay: presenter.FormatConfidence(outcome.Verdict.Confidence),
			Reason:            outcome.Verdict.Reason,
			Quarantined:       outcome.Verdict.Quarantined,
			StyleClass:        outcome.View.StyleClass,
			Markup:            outcome.View.Markup,
		}
		if delay, hosted := route.controller.RefreshDelay(); hosted {
			resp.RefreshAfterMs = delay.Milliseconds()
		}
		s.writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.chartSnapshot())
}

func (s *Server) chartJSON() template.JS {
	payload, err := json.Marshal(s.chartSnapshot())
	if err != nil {
		s.logger.Error("Failed to encode chart payload", zap.Error(err))
		return "null"
	}
	return template.JS(payload)
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Failed to render page",
			zap.String("template", name),
			zap.Error(err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func toLogRows(records []core.LogRecord) []logRow {
	rows := make([]logRow, 0, len(records))
	for _, rec := range records {
		style := core.StyleSafe
		switch rec.Label {
		case core.LabelPhishing:
			style = core.StylePhishing
		case core.LabelSuspicious:
			style = core.StyleSuspicious
		}
		rows = append(rows, logRow{
			Timestamp: rec.Timestamp.Format("2006-01-02 15:04:05"),
			Label:     rec.Label,
			Style:     style,
		})
	}
	return rows
}
