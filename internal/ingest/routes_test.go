package ingest

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("writing field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	svc, _, _ := newTestService(t)
	r := chi.NewRouter()
	RegisterRoutes(r, svc)
	return r
}

func TestHandleUpload(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartBody(t, map[string]string{
		"sky.txt": "The sky is blue.",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message          string   `json:"message"`
		FilesSaved       []string `json:"files_saved"`
		DocumentsIndexed int      `json:"documents_indexed"`
		Failed           []string `json:"failed"`
		StoreDirUsed     string   `json:"store_dir_used"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.DocumentsIndexed != 1 {
		t.Errorf("expected 1 indexed document, got %d", resp.DocumentsIndexed)
	}
	if len(resp.FilesSaved) != 1 || resp.FilesSaved[0] != "sky.txt" {
		t.Errorf("unexpected files_saved: %v", resp.FilesSaved)
	}
	if len(resp.Failed) != 0 {
		t.Errorf("expected no failures, got %v", resp.Failed)
	}
	if resp.StoreDirUsed == "" {
		t.Error("response should echo the resolved store directory")
	}
}

func TestHandleUpload_NoFiles(t *testing.T) {
	router := newTestRouter(t)

	body, contentType := multipartBody(t, nil, map[string]string{"store_dir": "x"})

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleUpload_NothingIndexed(t *testing.T) {
	router := newTestRouter(t)

	// A batch where every file fails reports 500 with the failure list.
	body, contentType := multipartBody(t, map[string]string{
		"old.doc": "legacy binary",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Failed []string `json:"failed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Failed) != 1 {
		t.Errorf("expected 1 failure, got %v", resp.Failed)
	}
}

func TestHandleUpload_NotMultipart(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewBufferString("plain"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
