package proxy

import (
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"context"
	"encoding/json"
	"net/http"
)

// Upstream is the one outbound call the proxy delegates to. The concrete
// implementation lives in the upstream package; tests substitute a fake.
type Upstream interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type Route struct {
	Methods []string
	Pattern string
}

type Proxy struct {
	Router   *httprouter.Router
	Upstream Upstream
}

// CharacterHandler answers with the upstream payload verbatim, or a 500 with
// an error field when the upstream call fails. The error text reaching the
// caller is already credential-free; the upstream client guarantees that.
func (proxy *Proxy) CharacterHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := proxy.Upstream.Fetch(r.Context())
		if err != nil {
			log.Warnf("Upstream call failed: %v", err)
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			log.Warnf("Failed to write response: %v", err)
		}
	}
}

func (proxy *Proxy) HealthHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func (proxy *Proxy) RegisterRoute(route Route, handler func(http.ResponseWriter, *http.Request)) {
	for _, method := range route.Methods {
		proxy.Router.HandlerFunc(method, route.Pattern, handler)
	}
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	if encodeErr := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); encodeErr != nil {
		log.Warnf("Failed to write error response: %v", encodeErr)
	}
}
