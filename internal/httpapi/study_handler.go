package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nanowatch/internal/httpx"
	"nanowatch/internal/store"
	"nanowatch/internal/summary"
)

// SummaryRepository is what the handler needs from storage.
type SummaryRepository interface {
	List(ctx context.Context, params store.ListParams) ([]summary.StudyRow, int, error)
	GetByAccession(ctx context.Context, accession string) (summary.StudyRow, error)
}

type StudyHandler struct {
	repo SummaryRepository
}

func NewStudyHandler(repo SummaryRepository) *StudyHandler {
	return &StudyHandler{repo: repo}
}

// List serves GET /studies with platform / released_after filters and
// page/page_size pagination.
func (h *StudyHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	params := store.ListParams{
		Platform:      r.URL.Query().Get("platform"),
		ReleasedAfter: r.URL.Query().Get("released_after"),
		Limit:         pageSize,
		Offset:        (page - 1) * pageSize,
	}

	rows, total, err := h.repo.List(ctx, params)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "internal_error", "server error")
		return
	}
	if rows == nil {
		rows = []summary.StudyRow{}
	}

	httpx.JSONSuccess(r, w, rows, map[string]interface{}{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": (total + pageSize - 1) / pageSize,
	})
}

// GetByAccession serves GET /studies/{accession}.
func (h *StudyHandler) GetByAccession(w http.ResponseWriter, r *http.Request) {
	// crude path param extraction with net/http's ServeMux
	const prefix = "/studies/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	accession := strings.TrimPrefix(r.URL.Path, prefix)
	if accession == "" || strings.Contains(accession, "/") {
		http.NotFound(w, r)
		return
	}

	row, err := h.repo.GetByAccession(r.Context(), accession)
	switch {
	case err == nil:
		httpx.JSONSuccess(r, w, row, nil)
	case errors.Is(err, store.ErrNotFound):
		httpx.JSONError(r, w, http.StatusNotFound, "not_found", "study not found")
	default:
		httpx.JSONError(r, w, http.StatusInternalServerError, "internal_error", "server error")
	}
}
