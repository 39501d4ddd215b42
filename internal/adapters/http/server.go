// Package http exposes the webhook ingress and the sideband state endpoint.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakenomibu/nomibot/internal/logging"
	"github.com/sakenomibu/nomibot/internal/metrics"
	"github.com/sakenomibu/nomibot/pkg/domain"
	"github.com/sakenomibu/nomibot/pkg/ports"
)

// EventParser verifies and decodes an inbound webhook request. Signature
// verification happens here, before anything reaches the dispatcher.
type EventParser interface {
	ParseRequest(r *http.Request) ([]domain.InboundEvent, error)
}

// BatchDispatcher processes one decoded event batch.
type BatchDispatcher interface {
	Dispatch(ctx context.Context, events []domain.InboundEvent)
}

// Server wires the webhook and sideband routes.
type Server struct {
	parser     EventParser
	dispatcher BatchDispatcher
	store      ports.SessionStore
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts the /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewHandler builds the HTTP handler.
func NewHandler(parser EventParser, dispatcher BatchDispatcher, store ports.SessionStore, opts ...Option) http.Handler {
	s := &Server{
		parser:     parser,
		dispatcher: dispatcher,
		store:      store,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/", s.root)
	r.Get("/healthz", s.healthz)
	r.Post("/webhook", s.webhook)
	r.Post("/changeState", s.changeState)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Hello, World!"))
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", "err", err)
		http.Error(w, "store unreachable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// webhook receives the platform event batch. The batch is dispatched before
// responding so the reply tokens are consumed while still valid.
func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	events, err := s.parser.ParseRequest(r)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		s.logger.Error("webhook parse failed", "err", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	s.dispatcher.Dispatch(r.Context(), events)
	w.Write([]byte("OK"))
}

// changeStateRequest is the sideband state-set payload, used by the
// external game surface to hand off state directly.
type changeStateRequest struct {
	UserID         string `json:"userId"`
	Status         string `json:"status"`
	CurrentPhaseID string `json:"currentPhaseId"`
}

// changeState performs a direct merge-write bypassing the engine.
func (s *Server) changeState(w http.ResponseWriter, r *http.Request) {
	var req changeStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Status == "" || req.CurrentPhaseID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	status := domain.Status(req.Status)
	switch status {
	case domain.StatusInactive, domain.StatusInProgress, domain.StatusCompleted:
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	update := domain.SessionUpdate{
		Status:         &status,
		CurrentPhaseID: &req.CurrentPhaseID,
	}
	if err := s.store.Merge(r.Context(), req.UserID, update); err != nil {
		s.logger.Error("state merge failed", "user_id", req.UserID, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Write([]byte("OK"))
}
