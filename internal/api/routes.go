package api

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /strings", s.handleCreate)
	mux.HandleFunc("GET /strings", s.handleList)
	// The literal segment takes precedence over {value}, so a stored value
	// of "filter-by-natural-language" cannot be fetched by path.
	mux.HandleFunc("GET /strings/filter-by-natural-language", s.handleNaturalLanguage)
	mux.HandleFunc("GET /strings/{value}", s.handleGet)
	mux.HandleFunc("DELETE /strings/{value}", s.handleDelete)
	mux.HandleFunc("GET /healthz", s.handleHealth)
}

// applyMiddleware wraps handler; the last wrapper runs first.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	handler = gzhttp.GzipHandler(handler)
	handler = recoveryMiddleware(s.logger)(handler)
	handler = loggingMiddleware(s.logger)(handler)
	handler = requestIDMiddleware(s.ids)(handler)
	return handler
}
