// Package status serves a live JSON view of a running crack over HTTP.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/unclesp1d3r/threadhash/lib/cracker"
	"github.com/unclesp1d3r/threadhash/lib/progress"
	"github.com/unclesp1d3r/threadhash/runstate"
)

const readHeaderTimeout = 5 * time.Second

// Source provides the live state served by the status endpoint.
type Source interface {
	Snapshot() cracker.Status
}

// Response is the body of GET /api/status.
type Response struct {
	RunID          string           `json:"run_id"`
	Running        bool             `json:"running"`
	Threads        int              `json:"threads"`
	Rows           int              `json:"rows"`
	Claimed        int              `json:"claimed"`
	Processed      int64            `json:"processed"`
	Cracked        int64            `json:"cracked"`
	Failed         int64            `json:"failed"`
	HashErrors     int64            `json:"hash_errors"`
	Progress       string           `json:"progress"`
	ElapsedSeconds float64          `json:"elapsed_seconds"`
	Algorithms     map[string]int64 `json:"algorithms"`
}

// NewResponse converts an engine status into a Response.
func NewResponse(s cracker.Status) Response {
	return Response{
		RunID:          s.RunID,
		Running:        s.Running,
		Threads:        s.Threads,
		Rows:           s.Rows,
		Claimed:        s.Claimed,
		Processed:      s.Global.Processed,
		Cracked:        s.Global.Cracked(),
		Failed:         s.Global.Failed,
		HashErrors:     s.Global.HashErrors,
		Progress:       progress.Percentage(s.Global.Processed, int64(s.Rows)),
		ElapsedSeconds: s.Elapsed.Seconds(),
		Algorithms:     s.Global.ByAlgorithm(),
	}
}

// Server is the status HTTP server.
type Server struct {
	addr   string
	source Source
	srv    *http.Server
	ln     net.Listener
	done   chan struct{}
}

// NewServer creates a Server for source listening on addr. It does not start listening.
func NewServer(addr string, source Source) *Server {
	return &Server{addr: addr, source: source}
}

// Handler returns the router serving the status endpoints.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)

	return r
}

// Start binds the listener and serves in the background. Binding errors are returned
// directly; later serve errors are logged.
func (s *Server) Start(ctx context.Context) error {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("status server listen on %s: %w", s.addr, err)
	}

	s.ln = ln
	s.done = make(chan struct{})
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	runstate.Logger.Info("Status server listening", "addr", ln.Addr().String())

	go func() {
		defer close(s.done)

		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			runstate.ErrorLogger.Error("Status server failed", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}

	return s.addr
}

// Shutdown stops the server and waits for the serve loop to exit.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("status server shutdown: %w", err)
	}

	<-s.done
	runstate.Logger.Debug("Status server stopped")

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("OK")); err != nil {
		runstate.Logger.Warn("Failed to write health response", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(NewResponse(s.source.Snapshot())); err != nil {
		runstate.Logger.Warn("Failed to write status response", "error", err)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runstate.Logger.Debug("Incoming request", "method", r.Method, "url", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
