package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"firstmessage/core/log"
)

// SetupHealthEndpoint registers GET /health on router
func SetupHealthEndpoint(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Error("❌ Failed to write health check response", "error", err)
		}
	}).Methods(http.MethodGet)
}
