// Package webhook receives Twilio WhatsApp callbacks and answers with TwiML.
package webhook

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/twilio/twilio-go/twiml"

	"github.com/netventas/visitbot/internal/dedup"
	"github.com/netventas/visitbot/internal/metrics"
)

// ReplyError is sent when the request carries no usable sender or body.
const ReplyError = "Error procesando tu mensaje. Por favor intenta de nuevo."

// Processor advances a conversation by one inbound message and returns the
// reply text.
type Processor interface {
	ProcessMessage(ctx context.Context, phone, text string) string
}

type Handler struct {
	processor Processor
	deduper   dedup.Deduper
	log       *slog.Logger
}

func New(processor Processor, deduper dedup.Deduper, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		processor: processor,
		deduper:   deduper,
		log:       log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook", h.handleInbound)
}

func (h *Handler) handleInbound(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.log.Error("webhook: parse form", "error", err)
		h.respondMessage(w, ReplyError)
		return
	}

	body := strings.TrimSpace(r.PostFormValue("Body"))
	from := strings.TrimPrefix(r.PostFormValue("From"), "whatsapp:")
	if from == "" {
		h.log.Warn("webhook: request without sender")
		h.respondMessage(w, ReplyError)
		return
	}

	// Twilio retries deliveries it considers failed; drop replays of a
	// MessageSid we already handled. A deduper error fails open so a redis
	// outage never blocks the conversation.
	if sid := r.PostFormValue("MessageSid"); sid != "" {
		seen, err := h.deduper.Seen(r.Context(), sid)
		if err != nil {
			h.log.Warn("webhook: dedup check failed", "sid", sid, "error", err)
		} else if seen {
			metrics.DuplicatesTotal.Inc()
			h.log.Info("webhook: duplicate delivery dropped", "sid", sid)
			h.respondTwiML(w, nil)
			return
		}
	}

	reply := h.processor.ProcessMessage(r.Context(), from, body)
	h.respondMessage(w, reply)
}

func (h *Handler) respondMessage(w http.ResponseWriter, body string) {
	h.respondTwiML(w, []twiml.Element{&twiml.MessagingMessage{Body: body}})
}

func (h *Handler) respondTwiML(w http.ResponseWriter, verbs []twiml.Element) {
	doc, err := twiml.Messages(verbs)
	if err != nil {
		h.log.Error("webhook: render twiml", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		h.log.Error("webhook: write response", "error", err)
	}
}
