// Package httpapi exposes the document library and chat services over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/inkwell-ai/inkwell/internal/logger"
)

// loggingMiddleware logs request details and latency.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("%s %s - %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// corsMiddleware adds CORS headers for development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter creates and configures the HTTP router.
func NewRouter(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/documents", handler.HandleUpload).Methods("POST", "OPTIONS")
	api.HandleFunc("/documents", handler.HandleListDocuments).Methods("GET")
	api.HandleFunc("/documents/{id}", handler.HandleGetDocument).Methods("GET")
	api.HandleFunc("/documents/{id}", handler.HandleDeleteDocument).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/search", handler.HandleSearch).Methods("POST", "OPTIONS")
	api.HandleFunc("/chat", handler.HandleChat).Methods("POST", "OPTIONS")
	api.HandleFunc("/health", handler.HandleHealth).Methods("GET")

	return r
}
