package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"practice-kpi/internal/kpi"
)

// Server exposes the KPI bundle as a small JSON API for dashboards.
//
// Endpoints:
//
//	GET /api/locations                    -> routed location keys
//	GET /api/kpis/:location?lookback=90   -> full per-KPI bundle
//	GET /api/kpis/:location/latest        -> latest operational-day values only
type Server struct {
	orch            *kpi.Orchestrator
	defaultLookback int
	now             func() time.Time
}

// NewServer creates the HTTP API around an orchestrator.
func NewServer(orch *kpi.Orchestrator, defaultLookback int) *Server {
	return &Server{orch: orch, defaultLookback: defaultLookback, now: time.Now}
}

// Start runs the echo server on addr until it fails or is shut down.
func (s *Server) Start(addr string) error {
	e := echo.New()
	e.HideBanner = true

	e.GET("/api/locations", s.handleLocations)
	e.GET("/api/kpis/:location", s.handleKPIs)
	e.GET("/api/kpis/:location/latest", s.handleLatest)

	return e.Start(addr)
}

func (s *Server) handleLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"locations": s.orch.Locations(),
	})
}

func (s *Server) handleKPIs(c echo.Context) error {
	location := c.Param("location")
	if !lo.Contains(s.orch.Locations(), location) {
		return c.JSON(http.StatusNotFound, map[string]any{
			"error":    "unknown location",
			"location": location,
		})
	}

	lookback := s.defaultLookback
	if raw := c.QueryParam("lookback"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			lookback = v
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"location":      location,
		"lookback_days": lookback,
		"kpis":          s.orch.Compute(location, lookback),
	})
}

func (s *Server) handleLatest(c echo.Context) error {
	location := c.Param("location")
	if !lo.Contains(s.orch.Locations(), location) {
		return c.JSON(http.StatusNotFound, map[string]any{
			"error":    "unknown location",
			"location": location,
		})
	}

	// Same strict semantics as the MCP latest_snapshot tool: the resolved
	// operational day's exact point or null, never a stale carry-forward.
	cal := kpi.OperationalCalendar{}
	day := cal.LatestOpenOnOrBefore(s.now())

	bundle := s.orch.Compute(location, s.defaultLookback)
	latest := lo.MapValues(bundle, func(r kpi.KPIResult, _ string) *kpi.DailyPoint {
		return kpi.CurrentFor(r.Daily, cal, day)
	})

	return c.JSON(http.StatusOK, map[string]any{
		"location": location,
		"as_of":    day.Format("2006-01-02"),
		"latest":   latest,
	})
}
