package handler

import (
	"net/http"
	"strconv"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/repository"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/server/authctx"
	"github.com/go-chi/chi/v5"
)

type FeedbackHandler struct {
	Repo repository.FeedbackRepository
}

func (h FeedbackHandler) RegisterRoutes(r chi.Router) {
	r.Post("/feedback", h.create)
}

func (h FeedbackHandler) RegisterStaffRoutes(r chi.Router) {
	r.Get("/feedback", h.list)
}

func (h FeedbackHandler) create(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	created, err := h.Repo.Create(r.Context(), domain.Feedback{
		UserID:  user.ID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFeedbackResponse(*created))
}

func (h FeedbackHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context(), 200)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, f := range items {
		resp = append(resp, toFeedbackResponse(f))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toFeedbackResponse(f domain.Feedback) map[string]any {
	return map[string]any{
		"id":        strconv.FormatInt(f.ID, 10),
		"userId":    strconv.FormatInt(f.UserID, 10),
		"rating":    f.Rating,
		"comment":   f.Comment,
		"createdAt": f.CreatedAt,
	}
}
