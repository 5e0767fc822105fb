package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netventas/visitbot/internal/dedup"
)

type fakeProcessor struct {
	calls int
	phone string
	text  string
	reply string
}

func (f *fakeProcessor) ProcessMessage(_ context.Context, phone, text string) string {
	f.calls++
	f.phone = phone
	f.text = text
	return f.reply
}

func setupRouter(processor *fakeProcessor, deduper dedup.Deduper) *chi.Mux {
	if deduper == nil {
		deduper = dedup.Noop{}
	}
	r := chi.NewRouter()
	New(processor, deduper, nil).RegisterRoutes(r)
	return r
}

func postWebhook(r http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestInboundMessageAnswersTwiML(t *testing.T) {
	processor := &fakeProcessor{reply: "¿Cuál es el nombre completo del cliente?"}
	r := setupRouter(processor, nil)

	resp := postWebhook(r, url.Values{
		"Body": {"hola"},
		"From": {"whatsapp:+593991234567"},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/xml", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Body.String(), "<Message>")
	assert.Contains(t, resp.Body.String(), "nombre completo")

	assert.Equal(t, 1, processor.calls)
	assert.Equal(t, "+593991234567", processor.phone)
	assert.Equal(t, "hola", processor.text)
}

func TestInboundWithoutSenderAnswersFallback(t *testing.T) {
	processor := &fakeProcessor{reply: "unused"}
	r := setupRouter(processor, nil)

	resp := postWebhook(r, url.Values{"Body": {"hola"}})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Error procesando tu mensaje")
	assert.Equal(t, 0, processor.calls)
}

func TestDuplicateDeliveryIsDropped(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	processor := &fakeProcessor{reply: "siguiente paso"}
	r := setupRouter(processor, dedup.NewRedis(client))

	form := url.Values{
		"Body":       {"Juan Perez Gomez"},
		"From":       {"whatsapp:+593991234567"},
		"MessageSid": {"SM0001"},
	}

	resp := postWebhook(r, form)
	assert.Contains(t, resp.Body.String(), "<Message>")
	assert.Equal(t, 1, processor.calls)

	// Twilio retry with the same SID: empty TwiML, engine untouched.
	resp = postWebhook(r, form)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotContains(t, resp.Body.String(), "<Message>")
	assert.Contains(t, resp.Body.String(), "<Response")
	assert.Equal(t, 1, processor.calls)
}

func TestDedupFailureFailsOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	processor := &fakeProcessor{reply: "respuesta"}
	r := setupRouter(processor, dedup.NewRedis(client))

	resp := postWebhook(r, url.Values{
		"Body":       {"hola"},
		"From":       {"whatsapp:+593991234567"},
		"MessageSid": {"SM0002"},
	})

	assert.Contains(t, resp.Body.String(), "<Message>")
	assert.Equal(t, 1, processor.calls)
}

func TestPlainSMSSenderAccepted(t *testing.T) {
	processor := &fakeProcessor{reply: "respuesta"}
	r := setupRouter(processor, nil)

	resp := postWebhook(r, url.Values{
		"Body": {"hola"},
		"From": {"+593991234567"},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "+593991234567", processor.phone)
}
