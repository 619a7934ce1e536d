package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bastiangx/anagramserve/internal/logger"
	"github.com/bastiangx/anagramserve/pkg/anagram"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HTTPServer serves the anagram API
type HTTPServer struct {
	service         *Service
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          *log.Logger
}

// NewHandler builds the router. It is separate from the server so tests can
// drive it through httptest.
func NewHandler(service *Service) http.Handler {
	h := &handler{service: service, logger: logger.New("http")}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.observe)

	r.Get("/anagram", h.anagram)
	r.Get("/words/{word}", h.word)
	r.Get("/health", h.health)
	r.Handle("/metrics", service.Metrics().Handler())
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusNotFound, "404 Not Found")
	})
	return r
}

// NewHTTPServer creates a server listening on addr
func NewHTTPServer(service *Service, addr string, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		service: service,
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(service),
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
		logger:          logger.New("http"),
	}
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, ln net.Listener) error {
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Infof("Listening on %s", ln.Addr())
		serverErrors <- s.srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warnf("Graceful shutdown did not complete in %v: %v", s.shutdownTimeout, err)
			return s.srv.Close()
		}
		return nil
	}
}

type handler struct {
	service *Service
	logger  *log.Logger
}

// observe logs and counts every request by route pattern and status
func (h *handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.service.Metrics().ObserveRequest("http", route, strconv.Itoa(status))
		h.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", status, "took", time.Since(start))
	})
}

func (h *handler) anagram(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	result, err := h.service.Anagrams(r.Context(), query, 0)
	if err != nil {
		h.logger.Debugf("Rejected query %q: %v", query, err)
		writeText(w, http.StatusBadRequest, "400 Bad Request")
		return
	}
	w.Header().Set("X-Anagram-Count", strconv.Itoa(len(result.Phrases)))
	if result.Cached {
		w.Header().Set("X-Anagram-Cache", "hit")
	}
	writeJSON(w, http.StatusOK, result.Phrases)
}

func (h *handler) word(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	writeJSON(w, http.StatusOK, WordResponse{
		Word:  anagram.Normalize(word),
		Known: h.service.Known(word),
	})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Words: h.service.dict.Size()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
