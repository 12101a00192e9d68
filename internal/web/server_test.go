package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"practice-kpi/internal/kpi"
	"practice-kpi/internal/sheets"
)

type stubFetcher struct {
	tables map[string]*sheets.Table
}

func (f *stubFetcher) Fetch(spreadsheetID, readRange string) (*sheets.Table, error) {
	if table, ok := f.tables[spreadsheetID]; ok {
		return table, nil
	}
	return nil, fmt.Errorf("no sheet %s", spreadsheetID)
}

func newTestWebServer() *Server {
	routes := kpi.Routes{
		Sources: map[string]kpi.SourceRef{
			"baytown_eod":   {SpreadsheetID: "sheet-eod", Range: "EOD!A:F"},
			"baytown_front": {SpreadsheetID: "sheet-front", Range: "KPI!A:F"},
		},
		Locations: map[string]map[string]string{
			"baytown": {
				kpi.DatasetEOD:   "baytown_eod",
				kpi.DatasetFront: "baytown_front",
			},
		},
	}
	fetcher := &stubFetcher{tables: map[string]*sheets.Table{
		"sheet-eod": sheets.NewTable([][]any{
			{"Submission Date", "Total Production Today"},
			{"2025-09-15", 5000.0},
		}),
	}}
	s := NewServer(kpi.NewOrchestrator(kpi.NewRouter(routes), fetcher), 90)
	s.now = func() time.Time {
		return time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func doRequest(t *testing.T, handler echo.HandlerFunc, path string, params map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for name, value := range params {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}

	if err := handler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response is not JSON: %v", err)
	}
	return rec, body
}

func TestHandleLocations(t *testing.T) {
	s := newTestWebServer()

	rec, body := doRequest(t, s.handleLocations, "/api/locations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	locations := body["locations"].([]any)
	if len(locations) != 1 || locations[0] != "baytown" {
		t.Errorf("Expected [baytown], got %v", locations)
	}
}

func TestHandleKPIs(t *testing.T) {
	s := newTestWebServer()

	rec, body := doRequest(t, s.handleKPIs, "/api/kpis/baytown?lookback=30", map[string]string{"location": "baytown"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if body["lookback_days"].(float64) != 30 {
		t.Errorf("Expected lookback 30, got %v", body["lookback_days"])
	}
	kpis := body["kpis"].(map[string]any)
	if len(kpis) != 5 {
		t.Errorf("Expected 5 KPIs, got %d", len(kpis))
	}
}

func TestHandleKPIs_UnknownLocation(t *testing.T) {
	s := newTestWebServer()

	rec, _ := doRequest(t, s.handleKPIs, "/api/kpis/nowhere", map[string]string{"location": "nowhere"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestHandleLatest(t *testing.T) {
	s := newTestWebServer() // now = Monday 2025-09-15, matching the data

	rec, body := doRequest(t, s.handleLatest, "/api/kpis/baytown/latest", map[string]string{"location": "baytown"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if body["as_of"] != "2025-09-15" {
		t.Errorf("Expected as_of 2025-09-15, got %v", body["as_of"])
	}
	latest := body["latest"].(map[string]any)
	if latest["production"] == nil {
		t.Errorf("Expected a latest production point")
	}
	// KPIs whose sheet is unavailable appear with a null latest, not missing.
	if _, ok := latest["case_acceptance"]; !ok {
		t.Errorf("Degraded KPI must still appear in the snapshot")
	}
}

func TestHandleLatest_StaleDataIsNull(t *testing.T) {
	s := newTestWebServer()
	s.now = func() time.Time {
		return time.Date(2025, time.October, 1, 9, 0, 0, 0, time.UTC)
	}

	rec, body := doRequest(t, s.handleLatest, "/api/kpis/baytown/latest", map[string]string{"location": "baytown"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	latest := body["latest"].(map[string]any)
	if latest["production"] != nil {
		t.Errorf("Sheet data ends 2025-09-15; today's number must be null, got %v", latest["production"])
	}
}
