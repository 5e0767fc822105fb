// Package middleware holds HTTP middleware specific to this service.
package middleware

import (
	"net/http"

	"github.com/twilio/twilio-go/client"

	"github.com/netventas/visitbot/pkg/utils"
)

// TwilioSignature rejects webhook calls whose X-Twilio-Signature does not
// match the request. baseURL is the public scheme+host Twilio signed, since
// the service usually runs behind a proxy that rewrites Host. An empty
// authToken disables validation (local development).
func TwilioSignature(authToken, baseURL string) func(http.Handler) http.Handler {
	validator := client.NewRequestValidator(authToken)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			if err := r.ParseForm(); err != nil {
				utils.RespondError(w, http.StatusBadRequest, "invalid form body")
				return
			}

			params := make(map[string]string, len(r.PostForm))
			for key, values := range r.PostForm {
				if len(values) > 0 {
					params[key] = values[0]
				}
			}

			url := baseURL + r.URL.RequestURI()
			if !validator.Validate(url, params, r.Header.Get("X-Twilio-Signature")) {
				utils.RespondError(w, http.StatusForbidden, "invalid twilio signature")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
