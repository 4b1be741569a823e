// Package http exposes the bot over HTTP: the webhook endpoint the
// messaging platform calls for every incoming update, plus health and
// metrics endpoints for the operator.
package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kompisbot/kompis/pkg/adapters/telegram"
	"github.com/kompisbot/kompis/pkg/domain"
)

// Advancer is the slice of the engine the webhook needs.
type Advancer interface {
	Advance(ctx context.Context, msg domain.Message) error
}

// Server routes platform updates into the engine.
type Server struct {
	engine Advancer
	logger *slog.Logger
}

// NewHandler builds the HTTP handler tree for the bot.
func NewHandler(engine Advancer, logger *slog.Logger, gatherer prometheus.Gatherer) http.Handler {
	s := &Server{engine: engine, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/webhook", s.handleWebhook)
	r.Get("/health", s.handleHealth)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// handleWebhook receives one platform update per request. Parse failures
// are answered 200 so the platform does not redeliver junk forever;
// engine failures are answered 500 so it retries the update.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	msg, err := telegram.ParseUpdate(raw)
	if err != nil {
		s.logger.Warn("webhook: dropping undecodable update", "err", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := s.engine.Advance(r.Context(), msg); err != nil {
		s.logger.Error("webhook: advance failed", "chat_id", msg.ChatID, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
