package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/medipoint-hq/medipoint-gateway/internal/fixtures"
	"github.com/medipoint-hq/medipoint-gateway/internal/logger"
	"github.com/medipoint-hq/medipoint-gateway/pkg/medipoint"
)

// Server answers the dashboard endpoint catalog from the fixture set so the
// gateway can be exercised without the remote analytics service.
type Server struct {
	set   *fixtures.Set
	token string
	log   logger.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithRequiredToken rejects requests that do not carry "Authorization: Bearer <token>".
func WithRequiredToken(token string) Option {
	return func(s *Server) { s.token = strings.TrimSpace(token) }
}

// WithLogger sets the request logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer builds a mock server over set.
func NewServer(set *fixtures.Set, opts ...Option) *Server {
	s := &Server{set: set, log: logger.NopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests, s.requireToken)

	get := func(path string, h http.HandlerFunc) {
		r.HandleFunc(path, h).Methods(http.MethodGet)
	}
	get(medipoint.PathKPISummary, s.kpiSummary)
	get(medipoint.PathTopics, s.listTopics)
	get(medipoint.PathTopics+"/{id}", s.getTopic)
	get(medipoint.PathSuggestions, s.listSuggestions)
	get(medipoint.PathSuggestions+"/{id}", s.getSuggestion)
	get(medipoint.PathSamples, s.listSamples)
	get(medipoint.PathSamples+"/{id}", s.getSample)
	get(medipoint.PathChartTopicScores, s.chartTopicScores)
	get(medipoint.PathChartSampleSources, s.chartSampleSources)
	get(medipoint.PathChartLabelFrequency, s.chartLabelFrequency)
	get(medipoint.PathSalesTrends, s.salesTrends)
	get(medipoint.PathStock, s.stock)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.DebugObj("mock request", "mock_request", map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
			"query":  r.URL.RawQuery,
		})
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// errorBody mirrors the backend's error envelope.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	var body errorBody
	body.Error.Message = msg
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
