package handler

import (
	"net/http"
	"strconv"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
)

// AuditLogHandler exposes the append-only operation log to staff.
type AuditLogHandler struct {
	Repo repository.AuditLogRepository
}

func (h AuditLogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/audit-logs", h.list)
}

func (h AuditLogHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	entries, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, map[string]any{
			"id":            strconv.FormatInt(e.ID, 10),
			"action":        e.Action,
			"description":   e.Description,
			"severity":      string(e.Severity),
			"type":          e.Type,
			"userId":        strconv.FormatInt(e.UserID, 10),
			"affectedId":    e.AffectedID,
			"affectedModel": e.AffectedModel,
			"performedAt":   e.PerformedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
