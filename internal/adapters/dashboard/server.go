package dashboard

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server wires the Hub's routes behind gorilla/mux and OTel HTTP
// instrumentation, matching the teacher's server.go shape.
type Server struct {
	Addr string
	Hub  *Hub
	srv  *http.Server
}

// NewServer returns a dashboard server listening on addr. An empty
// addr disables the dashboard entirely; Run becomes a no-op.
func NewServer(addr string, hub *Hub) *Server {
	return &Server{Addr: addr, Hub: hub}
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.Hub.HandleWebSocket)
	r.HandleFunc("/api/status", s.Hub.HandleStatus)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Run starts the dashboard HTTP server and blocks until ctx is
// cancelled or the server fails. If Addr is empty it returns
// immediately with a nil error.
func (s *Server) Run(ctx context.Context) error {
	if s.Addr == "" {
		return nil
	}

	instrumented := otelhttp.NewHandler(s.routes(), "wpacrack-dashboard")
	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumented,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("dashboard: shutdown error: %v", err)
		}
	}()

	log.Printf("dashboard listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
