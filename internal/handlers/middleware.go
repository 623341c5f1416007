package handlers

import (
	"net/http"
	"strings"

	"github.com/swaglabs-qa/storefront-e2e/internal/api"
)

var corsMethods = strings.Join([]string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
}, ", ")

// cors allows every origin and answers preflight requests with 204
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", corsMethods)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+api.APIKeyHeader)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAPIKey rejects requests without the expected x-api-key header
func requireAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get(api.APIKeyHeader); got == "" || got != key {
				writeJSON(w, http.StatusUnauthorized, api.ErrorBody{
					Error:       MsgMissingAPIKey,
					HowToGetOne: MissingAPIKeySignup,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
