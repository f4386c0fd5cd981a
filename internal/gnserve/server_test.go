// Public domain.

package gnserve

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func newTestServer() *Server {
	return New(zap.NewNop(), prometheus.NewRegistry())
}

func post(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/estimate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

const solstice = `{"stick_height": 1, "shadow_length": 1, "shadow_azimuth": 0,
	"date": "2023-06-21", "time": "12:00", "magnetic_declination": 0}`

func TestEstimate(t *testing.T) {
	s := newTestServer()
	rec := post(t, s, solstice)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var r EstimateResponse
	if err := json.NewDecoder(rec.Body).Decode(&r); err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.Latitude - -30.4423) > 1e-9 || math.Abs(r.Longitude - -37.1144) > 1e-9 {
		t.Errorf("position %v %v", r.Latitude, r.Longitude)
	}
	if r.Position != "-30.4423, -37.1144" {
		t.Errorf("position %q", r.Position)
	}
	if r.DayOfYear != 172 || r.Elevation != 45 {
		t.Errorf("day %d elevation %v", r.DayOfYear, r.Elevation)
	}
	if got := testutil.ToFloat64(s.metrics.estimates.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok estimates = %v", got)
	}
}

func TestEstimateWrap(t *testing.T) {
	s := newTestServer()
	// raw longitude is -92.14, already in range
	body := `{"stick_height": 1, "shadow_length": 1.5, "shadow_azimuth": 315,
		"date": "2023-07-19", "time": "14:30", "magnetic_declination": 2.5, "wrap": true}`
	rec := post(t, s, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var r EstimateResponse
	if err := json.NewDecoder(rec.Body).Decode(&r); err != nil {
		t.Fatal(err)
	}
	if r.Longitude != -92.1405 {
		t.Errorf("longitude %v", r.Longitude)
	}
}

func TestEstimateErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
		code int
		kind string
	}{
		{"malformed", `{"stick_height": `, http.StatusBadRequest, "invalid_input"},
		{"unknown field", `{"height": 1}`, http.StatusBadRequest, "invalid_input"},
		{"bad date", `{"stick_height": 1, "shadow_length": 1, "date": "June 21", "time": "12:00"}`,
			http.StatusBadRequest, "invalid_input"},
		{"bad time", `{"stick_height": 1, "shadow_length": 1, "date": "2023-06-21", "time": "noon"}`,
			http.StatusBadRequest, "invalid_input"},
		{"zero shadow", `{"stick_height": 1, "shadow_length": 0, "date": "2023-06-21", "time": "12:00"}`,
			http.StatusBadRequest, "invalid_input"},
		{"azimuth", `{"stick_height": 1, "shadow_length": 1, "shadow_azimuth": 360,
			"date": "2023-06-21", "time": "12:00"}`, http.StatusBadRequest, "invalid_input"},
		{"equinox", `{"stick_height": 1, "shadow_length": 1, "date": "2023-03-22", "time": "12:00"}`,
			http.StatusUnprocessableEntity, "undefined"},
	} {
		s := newTestServer()
		rec := post(t, s, tc.body)
		if rec.Code != tc.code {
			t.Errorf("%s: status %d, want %d", tc.name, rec.Code, tc.code)
			continue
		}
		var e ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if e.Kind != tc.kind || e.Error == "" {
			t.Errorf("%s: %+v", tc.name, e)
		}
		if got := testutil.ToFloat64(s.metrics.estimates.WithLabelValues(tc.kind)); got != 1 {
			t.Errorf("%s: %s estimates = %v", tc.name, tc.kind, got)
		}
	}
}

func TestMethod(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/estimate", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status %d", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer()
	post(t, s, solstice)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("healthz %d %s", rec.Code, rec.Body)
	}

	srv := httptest.NewServer(s)
	defer srv.Close()
	res, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`gnserve_estimates_total{outcome="ok"} 1`,
		`gnserve_http_requests_total{code="200",method="POST",path="/v1/estimate"} 1`,
		"gnserve_http_duration_seconds",
	} {
		if !strings.Contains(string(b), want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}
