// Package server exposes the folder and card engines as a JSON HTTP API.
package server

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/lernapp-2025/studycards-v3/internal/card"
	"github.com/lernapp-2025/studycards-v3/internal/folder"
)

// UserHeader carries the id of the authenticated user, set by the identity
// proxy in front of the service.
const UserHeader = "X-User-ID"

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	folders       *folder.Service
	cards         *card.Service
	atomicReorder bool
	logger        *slog.Logger
}

// Options configures optional Handler behavior.
type Options struct {
	// AtomicReorder applies folder reorders in one transaction.
	AtomicReorder bool
}

// NewHandler creates a Handler.
func NewHandler(folders *folder.Service, cards *card.Service, logger *slog.Logger, opts Options) *Handler {
	return &Handler{
		folders:       folders,
		cards:         cards,
		atomicReorder: opts.AtomicReorder,
		logger:        logger,
	}
}

// Routes returns the API routes. Every route except /health requires UserHeader.
func (h *Handler) Routes() http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("GET /api/folders", h.getTree)
	api.HandleFunc("POST /api/folders", h.createFolder)
	api.HandleFunc("GET /api/folders/search", h.searchFolders)
	api.HandleFunc("GET /api/folders/export", h.exportFolders)
	api.HandleFunc("PUT /api/folders/order", h.reorderFolders)
	api.HandleFunc("GET /api/folders/{id}", h.getFolder)
	api.HandleFunc("PATCH /api/folders/{id}", h.updateFolder)
	api.HandleFunc("DELETE /api/folders/{id}", h.deleteFolder)
	api.HandleFunc("PUT /api/folders/{id}/parent", h.moveFolder)
	api.HandleFunc("GET /api/folders/{id}/path", h.getFolderPath)
	api.HandleFunc("GET /api/folders/{id}/stats", h.getFolderStats)

	api.HandleFunc("GET /api/flashcards/{id}", h.getFlashcard)
	api.HandleFunc("GET /api/flashcards/{id}/faces/{side}", h.renderFace)
	api.HandleFunc("GET /api/flashcards/{id}/faces/{side}/layout", h.layoutFace)
	api.HandleFunc("PUT /api/flashcards/{id}/faces/{side}", h.replaceFace)
	api.HandleFunc("POST /api/flashcards/{id}/faces/{side}/elements", h.addElement)
	api.HandleFunc("PATCH /api/flashcards/{id}/faces/{side}/elements/{elementID}", h.updateElement)
	api.HandleFunc("DELETE /api/flashcards/{id}/faces/{side}/elements/{elementID}", h.deleteElement)
	api.HandleFunc("POST /api/flashcards/{id}/faces/{side}/elements/{elementID}/move", h.moveElement)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/api/", requireUser(api))
	return mux
}

type userKey struct{}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserHeader))
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "missing "+UserHeader+" header")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), userID)))
	})
}

// CORS allows browser clients from the given origins. A "*" entry allows any origin.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := slices.Contains(allowedOrigins, "*")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowAll || slices.Contains(allowedOrigins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+UserHeader)
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
