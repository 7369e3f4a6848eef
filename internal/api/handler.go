// Package api exposes the plagiarism checker over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Robinak47/plagiarism-checker-api/internal/comparison"
	"github.com/Robinak47/plagiarism-checker-api/internal/extract"
	"github.com/Robinak47/plagiarism-checker-api/internal/store"
	"github.com/Robinak47/plagiarism-checker-api/internal/textproc"
)

// maxUploadBytes caps multipart uploads at 32 MiB.
const maxUploadBytes = 32 << 20

// DocumentStore is the persistence surface the handlers need.
type DocumentStore interface {
	SaveDocument(ctx context.Context, d *store.Document) error
	GetDocument(ctx context.Context, id string) (*store.Document, error)
	ListDocuments(ctx context.Context) ([]*store.Document, error)
	DeleteDocument(ctx context.Context, id string) error
}

// Comparer runs comparisons across the stored corpus.
type Comparer interface {
	CompareAll(ctx context.Context) (*comparison.Result, error)
	CompareOne(ctx context.Context, id string) (*comparison.Result, error)
}

// Invalidator drops cached scores for a document. Optional.
type Invalidator interface {
	Invalidate(ctx context.Context, docID string) error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	docs     DocumentStore
	comparer Comparer
	invalid  Invalidator
	logger   *zap.Logger
}

// NewHandler creates a new API handler. invalid may be nil when no score
// cache is configured.
func NewHandler(docs DocumentStore, comparer Comparer, invalid Invalidator, logger *zap.Logger) *Handler {
	return &Handler{docs: docs, comparer: comparer, invalid: invalid, logger: logger}
}

// Router builds the chi router with all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)
		r.Get("/documents", h.listDocuments)
		r.Post("/documents", h.uploadDocument)
		r.Delete("/documents", h.deleteDocuments)
		r.Post("/compare", h.compareAll)
		r.Post("/documents/{id}/compare", h.compareOne)
	})

	return r
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "plagiarism-checker"})
}

// documentEntry is the list representation: 1-based serials over the
// name-sorted corpus, with a human-readable size.
type documentEntry struct {
	ID            string `json:"id"`
	Serial        int    `json:"serial"`
	FileName      string `json:"file_name"`
	FileExtension string `json:"file_extension"`
	FileSize      string `json:"file_size"`
	UploadedAt    string `json:"uploaded_at"`
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docs.ListDocuments(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(docs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no documents stored"})
		return
	}

	entries := make([]documentEntry, len(docs))
	for i, d := range docs {
		entries[i] = documentEntry{
			ID:            d.ID,
			Serial:        i + 1,
			FileName:      d.Name,
			FileExtension: strings.ToUpper(d.Extension),
			FileSize:      humanReadableSize(d.SizeBytes),
			UploadedAt:    d.UploadedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no file part"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no file part"})
		return
	}
	defer file.Close()

	if !extract.Supported(header.Filename) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported file type"})
		return
	}

	content, err := extract.FromReader(file, header.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	doc := &store.Document{
		ID:         uuid.New().String(),
		Name:       header.Filename,
		Extension:  strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), "."),
		SizeBytes:  header.Size,
		Content:    content,
		Tokens:     textproc.Tokenize(content),
		UploadedAt: time.Now(),
	}
	if err := h.docs.SaveDocument(r.Context(), doc); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	// Re-uploading a name keeps the existing row id, so any cached scores
	// for it now describe the replaced content.
	if h.invalid != nil {
		if err := h.invalid.Invalidate(r.Context(), doc.ID); err != nil {
			h.logger.Warn("cache invalidation failed", zap.String("id", doc.ID), zap.Error(err))
		}
	}
	h.logger.Info("Document stored",
		zap.String("id", doc.ID),
		zap.String("name", doc.Name),
		zap.Int64("size", doc.SizeBytes))

	resp := map[string]interface{}{
		"message": fmt.Sprintf("File '%s' successfully stored.", doc.Name),
		"id":      doc.ID,
	}

	// Compare the new document against the corpus right away, matching the
	// upload-then-calculate flow. A corpus of one is not an upload error.
	result, err := h.comparer.CompareOne(r.Context(), doc.ID)
	switch {
	case errors.Is(err, comparison.ErrTooFewDocuments):
		// Nothing to compare against yet.
	case err != nil:
		h.logger.Warn("comparison after upload failed", zap.Error(err))
	default:
		resp["comparison"] = result
	}

	writeJSON(w, http.StatusOK, resp)
}

type deleteRequest struct {
	SerialNumbers []int `json:"serial_numbers"`
}

func (h *Handler) deleteDocuments(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.SerialNumbers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no serial numbers provided"})
		return
	}

	docs, err := h.docs.ListDocuments(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	deleted, notFound := 0, 0
	for _, serial := range req.SerialNumbers {
		idx := serial - 1
		if idx < 0 || idx >= len(docs) {
			notFound++
			continue
		}
		doc := docs[idx]
		if err := h.docs.DeleteDocument(r.Context(), doc.ID); err != nil {
			notFound++
			continue
		}
		if h.invalid != nil {
			if err := h.invalid.Invalidate(r.Context(), doc.ID); err != nil {
				h.logger.Warn("cache invalidation failed", zap.String("id", doc.ID), zap.Error(err))
			}
		}
		deleted++
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": deleteMessage(deleted, notFound),
	})
}

func (h *Handler) compareAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.comparer.CompareAll(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, comparison.ErrTooFewDocuments) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) compareOne(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := h.comparer.CompareOne(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, store.ErrDocumentNotFound):
			status = http.StatusNotFound
		case errors.Is(err, comparison.ErrTooFewDocuments):
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// deleteMessage mirrors the original service's wording, e.g.
// "2 files successfully deleted, 1 file not found".
func deleteMessage(deleted, notFound int) string {
	var parts []string
	if deleted > 0 {
		parts = append(parts, fmt.Sprintf("%d %s successfully deleted", deleted, plural(deleted)))
	}
	if notFound > 0 {
		parts = append(parts, fmt.Sprintf("%d %s not found", notFound, plural(notFound)))
	}
	if len(parts) == 0 {
		return "no files deleted"
	}
	return strings.Join(parts, ", ")
}

func plural(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}

// humanReadableSize formats a byte count with binary units.
func humanReadableSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
