package webhook

import (
	"context"
	"crypto/subtle"
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/service"
	"sotorbot/internal/metrics"
)

const (
	secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

	maxUpdateBytes  = 1 << 20
	shutdownTimeout = 10 * time.Second
)

//go:embed radio.html
var radioPage []byte

// Dispatcher routes parsed updates to their handlers.
type Dispatcher interface {
	Dispatch(ctx context.Context, update *domain.Update) service.Outcome
}

// Server receives webhook updates and exposes the status, radio and
// metrics pages. Updates are acknowledged as soon as they are parsed,
// handlers run detached from the request.
type Server struct {
	addr       string
	secret     string
	dispatcher Dispatcher
	metrics    *metrics.Metrics
	startedAt  time.Time
	httpServer *http.Server
}

type ServerConfig struct {
	Addr       string
	Secret     string
	Dispatcher Dispatcher
	Metrics    *metrics.Metrics
}

func NewServer(cfg ServerConfig) *Server {
	return &Server{
		addr:       cfg.Addr,
		secret:     cfg.Secret,
		dispatcher: cfg.Dispatcher,
		metrics:    cfg.Metrics,
		startedAt:  time.Now(),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /telegram", s.handleWebhook)
	mux.HandleFunc("GET /radio", s.handleRadio)
	mux.HandleFunc("GET /ping", s.handlePing)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /{$}", s.handleStatus)

	return mux
}

// Run serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("webhook server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down webhook server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	s.metrics.UpdatesReceivedTotal.Inc()

	if subtle.ConstantTimeCompare([]byte(r.Header.Get(secretTokenHeader)), []byte(s.secret)) != 1 {
		s.metrics.UpdatesRejectedTotal.WithLabelValues("unauthorized").Inc()
		log.Warn().Str("remote", r.RemoteAddr).Msg("rejecting webhook request with bad secret token")
		s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpdateBytes))
	if err != nil {
		s.metrics.UpdatesRejectedTotal.WithLabelValues("unreadable").Inc()
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	update, err := ParseUpdate(body)
	if err != nil {
		s.metrics.UpdatesRejectedTotal.WithLabelValues("malformed").Inc()
		log.Warn().Err(err).Msg("rejecting malformed update")
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed update"})
		return
	}

	// handlers must not delay the ack, Telegram redelivers anything
	// not answered quickly
	dispatchCtx := log.Logger.WithContext(context.WithoutCancel(r.Context()))
	go s.dispatcher.Dispatch(dispatchCtx, update)

	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleRadio(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(radioPage)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":   "running",
		"bot_name": domain.BotName,
		"uptime":   time.Since(s.startedAt).Round(time.Second).String(),
	})
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"uptime": time.Since(s.startedAt).Round(time.Second).String(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
