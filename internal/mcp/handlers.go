package mcp

import (
	"fmt"

	"practice-kpi/internal/kpi"
)

func (s *Server) handleListLocations() interface{} {
	return map[string]interface{}{
		"locations": s.orch.Locations(),
	}
}

func (s *Server) handleComputeKPIs(args map[string]interface{}) (interface{}, error) {
	location, ok := args["location"].(string)
	if !ok || location == "" {
		return nil, fmt.Errorf("location is required")
	}

	lookback := s.defaultLookback
	if v, ok := args["lookback_days"].(float64); ok && v > 0 {
		lookback = int(v)
	}

	if !s.knownLocation(location) {
		return nil, fmt.Errorf("unknown location %q; call list_locations first", location)
	}

	return s.orch.Compute(location, lookback), nil
}

func (s *Server) handleLatestSnapshot(args map[string]interface{}) (interface{}, error) {
	location, ok := args["location"].(string)
	if !ok || location == "" {
		return nil, fmt.Errorf("location is required")
	}
	if !s.knownLocation(location) {
		return nil, fmt.Errorf("unknown location %q; call list_locations first", location)
	}

	bundle := s.orch.Compute(location, s.defaultLookback)

	// "Today's number" is the strict lookup: resolve today to the most
	// recent operational day and report null when that exact day has no
	// data, never an older point.
	cal := kpi.OperationalCalendar{}
	day := cal.LatestOpenOnOrBefore(s.now())

	snapshot := make(map[string]*kpi.DailyPoint, len(bundle))
	for name, result := range bundle {
		snapshot[name] = kpi.CurrentFor(result.Daily, cal, day)
	}
	return map[string]interface{}{
		"location": location,
		"as_of":    day.Format("2006-01-02"),
		"latest":   snapshot,
	}, nil
}

func (s *Server) knownLocation(location string) bool {
	for _, l := range s.orch.Locations() {
		if l == location {
			return true
		}
	}
	return false
}
