// Package form drives the sales-visit intake conversation: a fixed chain of
// questions advanced one validated answer at a time, ending in a persisted
// visit record.
package form

import (
	"context"
	"log/slog"
	"strings"

	"github.com/netventas/visitbot/internal/geo"
	"github.com/netventas/visitbot/internal/metrics"
	"github.com/netventas/visitbot/internal/model/visit"
	"github.com/netventas/visitbot/internal/service/session"
)

// Saver is the persistence collaborator that receives completed records.
type Saver interface {
	SaveVisit(ctx context.Context, rec visit.Record) (string, error)
}

// action tells ProcessMessage what to do with the session after a turn.
type action int

const (
	actionNone    action = iota
	actionDelete         // completed: drop the session
	actionRestart        // reset: drop the session and seed a fresh one at the name step
)

// Service is the conversation state machine.
type Service struct {
	store    session.Store
	saver    Saver
	catalogs visit.Catalogs
	prompts  *visit.Prompts
	vendorID string
	log      *slog.Logger
}

// NewService wires the form engine to its session store and persistence
// collaborator. vendorID is stamped on every record.
func NewService(store session.Store, saver Saver, catalogs visit.Catalogs, vendorID string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		saver:    saver,
		catalogs: catalogs,
		prompts:  visit.NewPrompts(catalogs),
		vendorID: vendorID,
		log:      logger,
	}
}

// ProcessMessage handles one inbound message for phone and returns the
// reply text. Messages for the same phone are serialized by the store.
func (s *Service) ProcessMessage(ctx context.Context, phone, text string) string {
	metrics.MessagesTotal.Inc()

	sess, release := s.store.Acquire(phone)
	reply, act := s.advance(ctx, sess, text)
	if act == actionDelete || act == actionRestart {
		s.store.Delete(phone)
	}
	release()

	// A reset skips the start transition: the user was just shown the name
	// prompt, so the next message must be read as the name.
	if act == actionRestart {
		fresh, releaseFresh := s.store.Acquire(phone)
		fresh.State = visit.StateNombre
		releaseFresh()
	}

	return reply
}

func (s *Service) advance(ctx context.Context, sess *visit.Session, text string) (string, action) {
	trimmed := strings.TrimSpace(text)

	switch sess.State {
	case visit.StateStart:
		sess.State = visit.StateNombre
		return s.prompts.Question(visit.StateNombre), actionNone

	case visit.StateNombre:
		if !validNombre(text) {
			return s.reject(sess)
		}
		return s.accept(sess, visit.FieldNombre, trimmed)

	case visit.StateCedula:
		if !validCedula(text) {
			return s.reject(sess)
		}
		return s.accept(sess, visit.FieldCedula, trimmed)

	case visit.StateCorreo:
		if !validCorreo(text) {
			return s.reject(sess)
		}
		return s.accept(sess, visit.FieldCorreo, strings.ToLower(trimmed))

	case visit.StateTelefono:
		if !validTelefono(text) {
			return s.reject(sess)
		}
		return s.accept(sess, visit.FieldTelefono, normalizePhone(text))

	case visit.StateTelefono2:
		if isNoAnswer(text) {
			return s.accept(sess, visit.FieldTelefono2, "")
		}
		if !validTelefono(text) {
			return s.reject(sess)
		}
		return s.accept(sess, visit.FieldTelefono2, normalizePhone(text))

	case visit.StateDireccion:
		if !validDireccion(text) {
			return s.reject(sess)
		}
		return s.accept(sess, visit.FieldDireccion, trimmed)

	case visit.StateBarrio:
		return s.accept(sess, visit.FieldBarrio, trimmed)

	case visit.StateProvincia:
		opt, ok := s.catalogs.Provincias.Lookup(trimmed)
		if !ok {
			return s.reject(sess)
		}
		sess.Data[visit.FieldProvincia] = opt.Name
		return s.accept(sess, visit.FieldProvinciaID, opt.ID)

	case visit.StateServicio:
		opt, ok := s.catalogs.Servicios.Lookup(trimmed)
		if !ok {
			return s.reject(sess)
		}
		return s.accept(sess, visit.FieldServicio, opt.Name)

	case visit.StateTipoVenta:
		opt, ok := s.catalogs.TiposVenta.Lookup(trimmed)
		if !ok {
			return s.reject(sess)
		}
		sess.Data[visit.FieldTipoVenta] = opt.Name
		return s.accept(sess, visit.FieldTipoVentaID, opt.ID)

	case visit.StateTipoPago:
		opt, ok := s.catalogs.TiposPago.Lookup(trimmed)
		if !ok {
			return s.reject(sess)
		}
		return s.accept(sess, visit.FieldTipoPago, opt.Name)

	case visit.StateNumCuenta:
		if isNoAnswer(text) {
			return s.accept(sess, visit.FieldNumCuenta, "")
		}
		return s.accept(sess, visit.FieldNumCuenta, trimmed)

	case visit.StateCoordenadas:
		if _, ok := geo.Parse(text); !ok {
			return s.reject(sess)
		}
		return s.accept(sess, visit.FieldCoordenadas, trimmed)

	case visit.StateObservaciones:
		if isRestartKeyword(trimmed) {
			return visit.ReplyRestarting + s.prompts.Question(visit.StateNombre), actionRestart
		}
		sess.Data[visit.FieldObservaciones] = trimmed
		return s.complete(ctx, sess)

	case visit.StateCompleted:
		if isRestartKeyword(trimmed) {
			return visit.ReplyRestarting + s.prompts.Question(visit.StateNombre), actionRestart
		}
		return visit.ReplyCompletedNag, actionNone
	}

	// Unrecognized state: answer something useful, touch nothing.
	return visit.ReplyFallback, actionNone
}

// accept stores a validated value and moves to the next step.
func (s *Service) accept(sess *visit.Session, field, value string) (string, action) {
	sess.Data[field] = value
	next, ok := sess.State.Next()
	if !ok {
		return visit.ReplyFallback, actionNone
	}
	sess.State = next
	return s.prompts.Question(next), actionNone
}

// reject leaves the session in place and re-describes the current step.
func (s *Service) reject(sess *visit.Session) (string, action) {
	metrics.RejectionsTotal.WithLabelValues(string(sess.State)).Inc()
	return s.prompts.Retry(sess.State), actionNone
}

// complete assembles the record and hands it to the persistence
// collaborator. Failure keeps the session at the notes step so the user can
// retry by resending the message.
func (s *Service) complete(ctx context.Context, sess *visit.Session) (string, action) {
	rec := assembleRecord(sess.Data, s.vendorID)

	id, err := s.saver.SaveVisit(ctx, rec)
	if err != nil {
		metrics.SaveFailuresTotal.Inc()
		s.log.Error("persist visit", "phone", sess.Phone, "err", err)
		return visit.ReplySaveFailed, actionNone
	}

	metrics.VisitsSavedTotal.Inc()
	s.log.Info("visit saved", "phone", sess.Phone, "record", id)
	return summaryReply(sess.Data, id), actionDelete
}

var restartKeywords = map[string]struct{}{
	"nuevo":     {},
	"reiniciar": {},
	"start":     {},
}

func isRestartKeyword(text string) bool {
	_, ok := restartKeywords[strings.ToLower(text)]
	return ok
}
