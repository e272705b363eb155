// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"context"
	"net/http"

	"fatrobin/internal/app"
	"fatrobin/internal/log"

	"github.com/klauspost/compress/gzhttp"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	dosing   *app.DosingService
	sessions *app.SessionService

	compressMinSize int
}

// New creates a Server wired to the given application services.
func New(ds *app.DosingService, ss *app.SessionService) *Server {
	return &Server{dosing: ds, sessions: ss, compressMinSize: -1}
}

// WithCompression gzips responses of at least minSize bytes for clients that
// accept it. A negative minSize turns compression off.
func (s *Server) WithCompression(minSize int) *Server {
	s.compressMinSize = minSize
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/calculate", s.handleCalculate)
	api.HandleFunc("/calculate/strict", s.handleCalculateStrict)

	api.HandleFunc("/sessions", s.handleSessions)
	api.HandleFunc("/sessions/{id}", s.handleSession)
	api.HandleFunc("/sessions/{id}/fields", s.handleSessionFields)
	api.HandleFunc("/sessions/{id}/fields/{field}", s.handleSessionField)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(s.withCompression(withNoCache(root)))
}

func (s *Server) withCompression(h http.Handler) http.Handler {
	if s.compressMinSize < 0 {
		return h
	}
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(s.compressMinSize))
	if err != nil {
		log.Warn(context.Background(), "compression disabled", "err", err)
		return h
	}
	return wrap(h)
}
