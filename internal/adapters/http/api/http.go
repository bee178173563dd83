// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/phonebook/internal/domain/model"
	"github.com/okian/phonebook/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// AddContact stores a contact, replacing any number stored under its name.
	AddContact(ctx context.Context, c model.Contact) error
	// ListContacts returns the whole phonebook.
	ListContacts(ctx context.Context) (map[string]string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	phonebookHandler *PhonebookHandler
	logger           logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*serverOptions)

type serverOptions struct {
	maxBodyBytes int64
	logger       logger.Logger
}

// WithMaxBodyBytes caps the size of POST bodies.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used by handlers and the access log.
func WithLogger(l logger.Logger) ServerOption {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	o := serverOptions{maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named("http")
	}
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		phonebookHandler: NewPhonebookHandler(deps, o.maxBodyBytes, o.logger),
		logger:           o.logger,
	}
}

// Register attaches all HTTP routes to mux. Requests for a known path with
// another method get 405 from the mux; unknown paths get 404.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /phonebook", MetricsMiddleware(s.phonebookHandler.HandleList, "phonebook"))
	mux.HandleFunc("POST /phonebook", MetricsMiddleware(s.phonebookHandler.HandleAdd, "phonebook"))
}

// Handler wraps next with the access log and CORS layers.
func (s *Server) Handler(next http.Handler, allowedOrigins []string) http.Handler {
	return CORS(allowedOrigins)(RequestLogMiddleware(s.logger)(next))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
