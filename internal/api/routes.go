// Package api exposes the imgkit operations over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gogpu/imgkit"
	"github.com/gorilla/mux"
)

// Server serves image manipulation requests. The image is the request
// body; options are query parameters.
type Server struct {
	manipulator  *imgkit.Manipulator
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewServer creates a Server. A nil logger discards output.
func NewServer(m *imgkit.Manipulator, maxBodyBytes int64, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{manipulator: m, maxBodyBytes: maxBodyBytes, logger: logger}
}

// RegisterRoutes sets up the routes on r.
func (s *Server) RegisterRoutes(r *mux.Router) {
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/convert", s.handle(convertOp)).Methods(http.MethodPost)
	v1.HandleFunc("/resize", s.handle(resizeOp)).Methods(http.MethodPost)
	v1.HandleFunc("/flip", s.handle(flipOp)).Methods(http.MethodPost)
	v1.HandleFunc("/rotate", s.handle(rotateOp)).Methods(http.MethodPost)
	v1.HandleFunc("/manipulate", s.handle(manipulateOp)).Methods(http.MethodPost)

	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
}

// Handler returns a router with all routes registered.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	s.RegisterRoutes(r)
	return r
}
