// Package chat exposes the question-answering HTTP API.
package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ragchat/ragchat/internal/answer"
	"github.com/ragchat/ragchat/internal/session"
)

// RegisterRoutes mounts the chat API.
func RegisterRoutes(r chi.Router, svc *answer.Service) {
	r.Get("/api/chat", handleChat(svc))
}

func handleChat(svc *answer.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		sessionID := q.Get("session_id")
		if sessionID == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session_id is required"})
			return
		}
		query := q.Get("query")
		if query == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
			return
		}

		k := 0
		if v := q.Get("k"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "k must be a positive integer"})
				return
			}
			k = n
		}

		// Parse caller-supplied history before touching any session state,
		// so a malformed payload cannot leave a partial replay behind.
		var prior []session.Turn
		if raw := q.Get("chat_history"); raw != "" {
			turns, err := session.ParseHistory(raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			prior = turns
		}

		var (
			result *answer.Result
			err    error
		)
		switch mode := strings.ToLower(q.Get("mode")); mode {
		case "deep":
			// Deep research ignores session memory entirely.
			result, err = svc.Deep(r.Context(), query, q.Get("store_dir"), k)
		case "", "standard":
			result, err = svc.Standard(r.Context(), sessionID, query, q.Get("store_dir"), k, prior)
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "mode must be 'standard' or 'deep'"})
			return
		}

		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, session.ErrInvalidHistory) {
				status = http.StatusBadRequest
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
