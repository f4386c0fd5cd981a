// Public domain.

// Package gnserve serves gnomon position estimates over HTTP.
//
// Routes:
//
//	POST /v1/estimate   JSON measurement in, JSON estimate out
//	GET  /healthz       liveness
//	GET  /metrics       Prometheus metrics
//
// Measurements are validated before they are solved.  Invalid measurements,
// a zero shadow length for example, get 400 with kind "invalid_input".
// Measurements with no defined solution get 422 with kind "undefined".
package gnserve

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/soniakeys/unit"
	"go.uber.org/zap"

	"github.com/soniakeys/gnomon/internal/gnformat"
	"github.com/soniakeys/gnomon/internal/gnsolver"
)

// Server is an http.Handler for the gnserve routes.
type Server struct {
	log     *zap.Logger
	metrics *metrics
	handler http.Handler
}

// New creates a Server.  Metrics are registered with reg and served from it.
func New(log *zap.Logger, reg *prometheus.Registry) *Server {
	s := &Server{log: log, metrics: newMetrics(reg)}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/estimate", s.handleEstimate)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.handler = s.instrument(mux)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// EstimateRequest is the body of POST /v1/estimate.
type EstimateRequest struct {
	StickHeight         float64 `json:"stick_height"`  // meters
	ShadowLength        float64 `json:"shadow_length"` // meters
	ShadowAzimuth       float64 `json:"shadow_azimuth"`
	Time                string  `json:"time"` // HH:MM UTC
	Date                string  `json:"date"` // YYYY-MM-DD
	MagneticDeclination float64 `json:"magnetic_declination"`

	// wrap longitude to (-180, 180]
	Wrap bool `json:"wrap,omitempty"`
}

// EstimateResponse is the success response of POST /v1/estimate.
// Angles are degrees rounded to four places.
type EstimateResponse struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Elevation   float64 `json:"elevation"`
	Declination float64 `json:"declination"`
	SunAzimuth  float64 `json:"sun_azimuth"`
	DayOfYear   int     `json:"day_of_year"`
	Residual    float64 `json:"residual"`
	Position    string  `json:"position"` // "lat, lon"
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

const maxBody = 1 << 16

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.metrics.estimates.WithLabelValues("invalid_input").Inc()
		writeJSON(w, http.StatusBadRequest, ErrorResponse{"invalid request body: " + err.Error(), "invalid_input"})
		return
	}
	m, err := req.measurement()
	if err == nil {
		err = m.Validate()
	}
	if err != nil {
		s.metrics.estimates.WithLabelValues("invalid_input").Inc()
		writeJSON(w, http.StatusBadRequest, ErrorResponse{err.Error(), "invalid_input"})
		return
	}
	e, err := gnsolver.Solve(m)
	switch {
	case errors.Is(err, gnsolver.ErrUndefined):
		s.metrics.estimates.WithLabelValues("undefined").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{err.Error(), "undefined"})
		return
	case err != nil:
		s.metrics.estimates.WithLabelValues("error").Inc()
		s.log.Error("solve", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{"calculation error", "internal"})
		return
	}
	s.metrics.estimates.WithLabelValues("ok").Inc()
	lon := e.Lon
	if req.Wrap {
		lon = gnsolver.WrapLon(lon)
	}
	writeJSON(w, http.StatusOK, EstimateResponse{
		Latitude:    round4(e.Lat),
		Longitude:   round4(lon),
		Elevation:   round4(e.Elevation),
		Declination: round4(e.Declination),
		SunAzimuth:  round4(e.SunAzimuth),
		DayOfYear:   e.DayOfYear,
		Residual:    round4(e.Residual),
		Position:    gnformat.Position(e.Lat, lon),
	})
}

func (req *EstimateRequest) measurement() (gnsolver.Measurement, error) {
	var m gnsolver.Measurement
	d, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return m, fmt.Errorf("%w: date %q", gnsolver.ErrInvalidInput, req.Date)
	}
	tod, err := time.Parse("15:04", req.Time)
	if err != nil {
		return m, fmt.Errorf("%w: time %q", gnsolver.ErrInvalidInput, req.Time)
	}
	m.Time = d.Add(time.Duration(tod.Hour())*time.Hour +
		time.Duration(tod.Minute())*time.Minute)
	m.StickHeight = req.StickHeight
	m.ShadowLength = req.ShadowLength
	m.ShadowAzimuth = unit.AngleFromDeg(req.ShadowAzimuth)
	m.MagneticDeclination = unit.AngleFromDeg(req.MagneticDeclination)
	return m, nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func round4(a unit.Angle) float64 {
	return math.Round(a.Deg()*1e4) / 1e4
}
