// Package http exposes the prediction API plus health, readiness, and
// metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ARUNKUMAR069/RescueX/internal/domain"
	"github.com/ARUNKUMAR069/RescueX/internal/engine"
	"github.com/ARUNKUMAR069/RescueX/internal/observability"
	"github.com/ARUNKUMAR069/RescueX/internal/prevention"
	"github.com/ARUNKUMAR069/RescueX/internal/storage"
)

// Predictor evaluates a raw observation map into hazard findings.
type Predictor interface {
	Predict(raw map[string]any) engine.Result
}

// WeatherProvider fetches current conditions for a location.
type WeatherProvider interface {
	CurrentObservation(ctx context.Context, location string) (map[string]any, error)
}

// PredictionStore persists predictions and feedback.
type PredictionStore interface {
	SavePrediction(ctx context.Context, location string, obs domain.Observation, findings []domain.HazardFinding) (int64, error)
	History(ctx context.Context, limit int) ([]storage.StoredPrediction, error)
	SaveFeedback(ctx context.Context, fb storage.Feedback) error
	Ping(ctx context.Context) error
}

// AlertPublisher pushes severe findings to downstream consumers. Optional;
// a nil publisher disables alerting.
type AlertPublisher interface {
	PublishAlerts(ctx context.Context, location string, findings []domain.HazardFinding, issuedAt time.Time) error
}

// coordinatePattern matches "lat,lon" queries, which bypass name resolution.
var coordinatePattern = regexp.MustCompile(`^-?\d+(\.\d+)?,\s*-?\d+(\.\d+)?$`)

// Server exposes the prediction HTTP API.
type Server struct {
	httpServer *http.Server
	predictor  Predictor
	weather    WeatherProvider
	store      PredictionStore
	alerts     AlertPublisher
	logger     *slog.Logger
	metrics    *observability.Metrics

	historyLimit int
}

// NewServer wires the API routes. alerts may be nil when Kafka is disabled.
func NewServer(addr string, predictor Predictor, weather WeatherProvider, store PredictionStore, alerts AlertPublisher, historyLimit int, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		predictor:    predictor,
		weather:      weather,
		store:        store,
		alerts:       alerts,
		logger:       logger,
		metrics:      metrics,
		historyLimit: historyLimit,
	}

	mux.HandleFunc("GET /api/predict", s.handlePredict)
	mux.HandleFunc("GET /api/weather", s.handleWeather)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/forecast", s.handleForecast)
	mux.HandleFunc("POST /api/feedback", s.handleFeedback)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type locationInfo struct {
	Input    string `json:"input"`
	Resolved string `json:"resolved"`
	Method   string `json:"method"`
}

type predictResponse struct {
	PredictionID int64                           `json:"prediction_id,omitempty"`
	Location     locationInfo                    `json:"location"`
	WeatherData  domain.Observation              `json:"weather_data"`
	Predictions  []domain.HazardFinding          `json:"predictions"`
	Corrections  []domain.RangeCorrection        `json:"corrections,omitempty"`
	Prevention   map[string][]prevention.Measure `json:"prevention_measures"`
	GeneratedAt  time.Time                       `json:"generated_at"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "location query parameter is required")
		return
	}

	resolved, method := s.resolveLocation(location)

	raw, ok := s.fetchWeather(r.Context(), w, resolved)
	if !ok {
		return
	}

	result := s.predictor.Predict(raw)
	measures := prevention.MeasuresFor(result.Findings)

	var predictionID int64
	id, err := s.store.SavePrediction(r.Context(), resolved, result.Observation, result.Findings)
	if err != nil {
		// Persistence failure degrades feedback, not the prediction itself.
		s.logger.Error("saving prediction failed", "location", resolved, "error", err)
	} else {
		predictionID = id
	}

	if s.alerts != nil {
		if err := s.alerts.PublishAlerts(r.Context(), resolved, result.Findings, result.GeneratedAt); err != nil {
			s.logger.Error("publishing alerts failed", "location", resolved, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, predictResponse{
		PredictionID: predictionID,
		Location:     locationInfo{Input: location, Resolved: resolved, Method: method},
		WeatherData:  result.Observation,
		Predictions:  result.Findings,
		Corrections:  result.Corrections,
		Prevention:   measures,
		GeneratedAt:  result.GeneratedAt,
	})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "location query parameter is required")
		return
	}

	resolved, method := s.resolveLocation(location)

	raw, ok := s.fetchWeather(r.Context(), w, resolved)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"location":     locationInfo{Input: location, Resolved: resolved, Method: method},
		"weather_data": raw,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := s.historyLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > s.historyLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(s.historyLimit))
			return
		}
		limit = n
	}

	history, err := s.store.History(r.Context(), limit)
	if err != nil {
		s.logger.Error("loading history failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not load prediction history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"predictions": history})
}

func (s *Server) handleForecast(w http.ResponseWriter, _ *http.Request) {
	// TODO: wire the provider's forecast.json endpoint and run the engine per
	// forecast day.
	writeError(w, http.StatusNotImplemented, "multi-day forecasts are not available yet")
}

type feedbackRequest struct {
	PredictionID int64    `json:"prediction_id"`
	FeedbackType string   `json:"feedback_type"`
	Comments     string   `json:"comments"`
	Accuracy     *float64 `json:"accuracy"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.PredictionID <= 0 {
		writeError(w, http.StatusBadRequest, "prediction_id is required")
		return
	}
	if req.FeedbackType == "" {
		writeError(w, http.StatusBadRequest, "feedback_type is required")
		return
	}
	if req.Accuracy != nil && (*req.Accuracy < 0 || *req.Accuracy > 1) {
		writeError(w, http.StatusBadRequest, "accuracy must be between 0 and 1")
		return
	}

	err := s.store.SaveFeedback(r.Context(), storage.Feedback{
		PredictionID: req.PredictionID,
		Type:         req.FeedbackType,
		Comments:     req.Comments,
		Accuracy:     req.Accuracy,
	})
	if errors.Is(err, storage.ErrPredictionNotFound) {
		writeError(w, http.StatusNotFound, "prediction not found")
		return
	}
	if err != nil {
		s.logger.Error("saving feedback failed", "prediction_id", req.PredictionID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not save feedback")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "feedback recorded"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// resolveLocation repairs place-name spelling. Coordinate queries pass
// through untouched so "28.6,77.2" is never fuzzy-matched against city names.
func (s *Server) resolveLocation(location string) (string, string) {
	if coordinatePattern.MatchString(location) {
		return location, "coordinates"
	}
	resolved, method := domain.ResolveLocation(location)
	s.metrics.LocationResolutions.WithLabelValues(string(method)).Inc()
	if method == domain.ResolvedFuzzy {
		s.logger.Warn("location fuzzy-corrected", "input", location, "resolved", resolved)
	}
	return resolved, string(method)
}

// fetchWeather fetches conditions and writes the error response itself when
// the fetch fails, reporting whether the caller may proceed.
func (s *Server) fetchWeather(ctx context.Context, w http.ResponseWriter, location string) (map[string]any, bool) {
	start := time.Now()
	raw, err := s.weather.CurrentObservation(ctx, location)
	s.metrics.WeatherFetchDuration.Observe(time.Since(start).Seconds())

	if errors.Is(err, domain.ErrLocationNotFound) {
		writeError(w, http.StatusNotFound, "location not found: "+location)
		return nil, false
	}
	if err != nil {
		s.logger.Error("weather fetch failed", "location", location, "error", err)
		writeError(w, http.StatusBadGateway, "weather provider unavailable")
		return nil, false
	}
	return raw, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
