package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"truthrecruit-engine/internal/apperr"
	"truthrecruit-engine/internal/store"
)

const msgReportNotFound = "Report not found"

type ReportsHandler struct {
	Store  store.Store
	Logger *zap.Logger
}

func reportIDFromPath(path string) (string, bool) {
	id := strings.TrimPrefix(path, "/api/reports/")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// storeErr maps a store failure onto an apperr kind, logging anything unexpected.
func (h ReportsHandler) storeErr(op, id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(msgReportNotFound)
	}
	h.Logger.Error(op, zap.String("id", id), zap.Error(err))
	return apperr.Internal(op, err)
}

func (h ReportsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := reportIDFromPath(r.URL.Path)
	if !ok {
		WriteAppError(w, r, apperr.NotFound(msgReportNotFound))
		return
	}

	a, err := h.Store.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, r, h.storeErr("get report", id, err))
		return
	}
	writeJSON(w, a)
}

func (h ReportsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := reportIDFromPath(r.URL.Path)
	if !ok {
		WriteAppError(w, r, apperr.NotFound(msgReportNotFound))
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		WriteAppError(w, r, h.storeErr("delete report", id, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Purge drops expired reports right away instead of waiting for the scheduler.
func (h ReportsHandler) Purge(w http.ResponseWriter, r *http.Request) {
	n, err := h.Store.PurgeExpired(r.Context())
	if err != nil {
		WriteAppError(w, r, h.storeErr("purge reports", "", err))
		return
	}
	writeJSON(w, map[string]any{"ok": true, "purged": n})
}
