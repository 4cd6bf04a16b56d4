// Package httpapi exposes the converter and conversion history over HTTP
// for `baseconv serve`.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/doeshing/baseconv/internal/application/convert"
	"github.com/doeshing/baseconv/internal/domain"
	"github.com/doeshing/baseconv/internal/ports"
)

// Server holds the handlers' dependencies.
type Server struct {
	Convert *convert.Service
	Logger  ports.Logger
}

// NewRouter registers every route.
func NewRouter(s *Server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/convert", s.handleConvertQuery).Methods("GET")
	api.HandleFunc("/convert", s.handleConvertBody).Methods("POST")
	api.HandleFunc("/validate", s.handleValidate).Methods("GET")
	api.HandleFunc("/history/{user}", s.handleHistory).Methods("GET")
	api.HandleFunc("/history/{user}", s.handleClearHistory).Methods("DELETE")

	r.Use(s.logRequests)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if s.Logger != nil {
			s.Logger.Debug("http request", map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start).String(),
			})
		}
	})
}

// errorLogSource is a logger that can take over http.Server's own error log.
type errorLogSource interface {
	Writer() *io.PipeWriter
}

// newHTTPServer builds the server. The returned func releases the error log
// pipe once the server is done.
func newHTTPServer(addr string, handler http.Handler, logger ports.Logger) (*http.Server, func()) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	src, ok := logger.(errorLogSource)
	if !ok {
		return srv, func() {}
	}
	w := src.Writer()
	srv.ErrorLog = log.New(w, "", 0)
	return srv, func() { _ = w.Close() }
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger ports.Logger) error {
	srv, release := newHTTPServer(addr, handler, logger)
	defer release()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("listening", map[string]interface{}{"addr": addr})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), domain.DefaultShutdownTimeout)
		defer cancel()
		logger.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	}
}
