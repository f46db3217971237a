package ingest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const maxUploadMemory = 64 << 20 // bytes buffered in memory per request

// RegisterRoutes mounts the document upload API.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/upload", handleUpload(svc))
}

func handleUpload(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form: " + err.Error()})
			return
		}

		headers := r.MultipartForm.File["files"]
		if len(headers) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no files were uploaded"})
			return
		}

		var uploads []Upload
		var open []interface{ Close() error }
		for _, h := range headers {
			f, err := h.Open()
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("reading %s: %v", h.Filename, err)})
				return
			}
			open = append(open, f)
			uploads = append(uploads, Upload{Filename: h.Filename, Data: f})
		}
		defer func() {
			for _, f := range open {
				f.Close()
			}
		}()

		result, err := svc.IngestBatch(r.Context(), r.FormValue("store_dir"), uploads)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		// Partial success is still success; the batch only fails outright
		// when nothing was indexed.
		status := http.StatusOK
		if result.UnitsIndexed == 0 {
			status = http.StatusInternalServerError
		}

		writeJSON(w, status, map[string]any{
			"message":           "Ingestion completed",
			"files_saved":       result.FilesSaved,
			"documents_indexed": result.UnitsIndexed,
			"failed":            result.Failed,
			"store_dir_used":    result.StorePath,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
