// Package web serves the JSON API consumed by the browser UI, plus a
// printable study-sheet page rendered server-side.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gogohany109-lgtm/NihonGo-Master/internal/config"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/history"
	"github.com/gogohany109-lgtm/NihonGo-Master/internal/session"
)

// NewServer creates and configures the HTTP server for the NihonGo API.
func NewServer(backend Backend, store *history.Store, sess *session.Session, cfg *config.Config, log *slog.Logger, bind string, port int) *http.Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	h := &Handlers{
		backend: backend,
		store:   store,
		sess:    sess,
		cfg:     cfg,
		log:     log,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("POST /api/translate", h.HandleTranslate)
	mux.HandleFunc("POST /api/dictionary", h.HandleDictionary)
	mux.HandleFunc("POST /api/transcribe", h.HandleTranscribe)
	mux.HandleFunc("POST /api/pronounce", h.HandlePronounce)
	mux.HandleFunc("POST /api/speak", h.HandleSpeak)

	mux.HandleFunc("GET /api/history", h.HandleHistoryList)
	mux.HandleFunc("DELETE /api/history", h.HandleHistoryClear)
	mux.HandleFunc("DELETE /api/history/{id}", h.HandleHistoryDelete)

	mux.HandleFunc("GET /api/saved", h.HandleSavedList)
	mux.HandleFunc("POST /api/saved/toggle", h.HandleSavedToggle)
	mux.HandleFunc("DELETE /api/saved/{id}", h.HandleSavedDelete)

	mux.HandleFunc("GET /api/export", h.HandleExport)
	mux.HandleFunc("POST /api/import", h.HandleImport)

	mux.HandleFunc("GET /api/theme", h.HandleThemeGet)
	mux.HandleFunc("PUT /api/theme", h.HandleThemeSet)

	mux.HandleFunc("GET /study/{id}", h.HandleStudySheet)

	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("NihonGo API running", "addr", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
