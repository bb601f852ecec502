package httpx

import (
	"context"
	"errors"
	"github.com/ariefcatur/go-catalog-client/internal/audit"
	"github.com/go-chi/chi/v5"
	"net/http"
	"strconv"
	"time"
)

type AuditReader interface {
	Get(ctx context.Context, eventID string) (audit.Record, error)
	Recent(ctx context.Context, limit int) ([]audit.Record, error)
}

type AuditHandler struct {
	Repo AuditReader
}

func (h *AuditHandler) Register(r *chi.Mux) {
	r.Get("/submissions", h.listSubmissions)
	r.Get("/submissions/{id}", h.getSubmission)
}

func (h *AuditHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	recs, err := h.Repo.Recent(ctx, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *AuditHandler) getSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	rec, err := h.Repo.Get(ctx, id)
	if errors.Is(err, audit.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
