// Package api is the HTTP surface of the video service.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mzahan/vidshare/provider"
	"github.com/mzahan/vidshare/pubsub"
	"github.com/mzahan/vidshare/store"
)

// Server holds the upload pipeline's collaborators and serves the routes.
type Server struct {
	store     *store.Gateway
	provider  provider.Provider
	publisher *pubsub.Publisher
	tempDir   string
	log       zerolog.Logger
}

func NewServer(gw *store.Gateway, prov provider.Provider, pub *pubsub.Publisher, tempDir string, log zerolog.Logger) *Server {
	return &Server{
		store:     gw,
		provider:  prov,
		publisher: pub,
		tempDir:   tempDir,
		log:       log,
	}
}

// Router builds the chi router with CORS and request logging applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.cors)
	r.Use(s.requestLogger)

	r.Get("/", s.handleRoot)
	r.Route("/api/videos", func(r chi.Router) {
		r.Get("/", s.handleListVideos)
		r.Post("/upload", s.handleUpload)
		r.Get("/{id}", s.handleGetVideo)
		r.Get("/{id}/status", s.handleGetStatus)
	})
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Video Streaming API"})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request handled")
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
