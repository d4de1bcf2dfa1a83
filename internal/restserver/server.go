// Package restserver exposes the buoyancy model and its analyses over
// HTTP for the visualization front end. All endpoints are GET-only and
// stateless: every request re-evaluates the model against the configured
// dive profile, with query parameters overriding individual values.
package restserver

import (
	"context"
	"net/http"
	"time"

	"github.com/chrissnell/ballast/internal/log"
	"github.com/chrissnell/ballast/pkg/config"
	"github.com/chrissnell/ballast/pkg/responseformat"
	"github.com/gorilla/mux"
)

// Server serves the buoyancy analysis API
type Server struct {
	cfg       *config.Config
	formatter *responseformat.Formatter
	httpSrv   *http.Server
}

// New creates a Server for the given configuration
func New(cfg *config.Config) *Server {
	s := &Server{
		cfg:       cfg,
		formatter: responseformat.NewFormatter(),
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/curve", s.handleCurve)
	router.HandleFunc("/api/freefall", s.handleFreefall)
	router.HandleFunc("/api/weight", s.handleWeight)
	router.HandleFunc("/api/energy", s.handleEnergy)
	router.HandleFunc("/api/optimal-weight", s.handleOptimalWeight)
	router.HandleFunc("/health", s.handleHealth)
	router.Use(requestLogger)

	s.httpSrv = &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Start runs the server until the context is canceled, then shuts it
// down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("REST server listening on %s", s.httpSrv.Addr)
		if err := s.httpSrv.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debugf("%s %s %v", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.formatter.Write(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
