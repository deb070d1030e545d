// A stand-in for the real character API, for running the proxy locally.
// Serves a handful of characters and rejects requests that do not carry the
// expected apiKey query parameter, like the upstream the proxy hides.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var characters = map[string]map[string]interface{}{
	"583": {"name": "Jon Snow", "culture": "Northmen", "born": "In 283 AC"},
	"238": {"name": "Daenerys Targaryen", "culture": "Valyrian", "born": "In 284 AC"},
	"148": {"name": "Arya Stark", "culture": "Northmen", "born": "In 289 AC"},
}

func main() {
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		apiKey = "dev-key"
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/characters/{id}", getCharacter).Methods("GET")
	r.Use(makeKeyMiddleware(apiKey))

	log.Fatal(http.ListenAndServe(":8080", r))
}

func makeKeyMiddleware(apiKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("apiKey") == apiKey {
				log.Printf("Authenticated request %s\n", uuid.NewString())
				next.ServeHTTP(w, r)
			} else {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
			}
		})
	}
}

func getCharacter(writer http.ResponseWriter, request *http.Request) {
	id := mux.Vars(request)["id"]

	character, ok := characters[id]
	if !ok {
		writer.WriteHeader(http.StatusNotFound)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(writer).Encode(character); err != nil {
		log.Printf("JSON encoding failed: %v", err)
	}
}
