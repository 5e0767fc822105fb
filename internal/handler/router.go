package handler

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/netventas/visitbot/internal/dedup"
	"github.com/netventas/visitbot/internal/handler/webhook"
	middlewarePkg "github.com/netventas/visitbot/internal/middleware"
	"github.com/netventas/visitbot/internal/service/session"
	"github.com/netventas/visitbot/pkg/utils"
)

// NewRouter wires HTTP routes to the form engine and session store.
// twilioAuthToken and publicBaseURL configure webhook signature validation;
// an empty token disables it.
func NewRouter(processor webhook.Processor, store session.Store, deduper dedup.Deduper, twilioAuthToken, publicBaseURL string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	webhookHandler := webhook.New(processor, deduper, logger)
	r.Group(func(g chi.Router) {
		g.Use(middlewarePkg.TwilioSignature(twilioAuthToken, publicBaseURL))
		webhookHandler.RegisterRoutes(g)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "Sales Visit Chatbot",
		})
	})

	// Read-only view over the session store. Collected answers stay out of
	// the payload: they hold customer PII.
	r.Get("/sessions", func(w http.ResponseWriter, r *http.Request) {
		sessions := store.Snapshot()
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].Phone < sessions[j].Phone
		})
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"active_sessions": len(sessions),
			"sessions":        sessions,
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
