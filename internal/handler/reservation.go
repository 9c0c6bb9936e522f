package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/repository"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/server/authctx"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/service"
	"github.com/go-chi/chi/v5"
)

type ReservationHandler struct {
	Service *service.ReservationService
	Repo    repository.ReservationRepository
}

func (h ReservationHandler) RegisterRoutes(r chi.Router) {
	r.Post("/reservations", h.create)
	r.Get("/reservations/mine", h.listMine)
	r.Get("/reservations/{id}", h.get)
	r.Post("/reservations/{id}/cancel", h.cancel)
}

func (h ReservationHandler) RegisterStaffRoutes(r chi.Router) {
	r.Get("/reservations", h.listForDate)
	r.Put("/reservations/{id}/status", h.updateStatus)
}

func (h ReservationHandler) create(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		TableID         int64  `json:"tableId"`
		PartySize       int    `json:"partySize"`
		Date            string `json:"date"`
		StartTime       string `json:"startTime"`
		EndTime         string `json:"endTime"`
		CustomerName    string `json:"customerName"`
		CustomerEmail   string `json:"customerEmail"`
		CustomerPhone   string `json:"customerPhone"`
		SpecialRequests string `json:"specialRequests"`
		Occasion        string `json:"occasion"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date (YYYY-MM-DD)")
		return
	}

	res, err := h.Service.CreateReservation(r.Context(), service.CreateReservationInput{
		TableID:         req.TableID,
		PartySize:       req.PartySize,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		SpecialRequests: req.SpecialRequests,
		Occasion:        domain.Occasion(req.Occasion),
	}, user.Principal())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationResponse(*res))
}

func (h ReservationHandler) get(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	res, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := service.RequireOwnerOrRole(user.Principal(), res.UserID, domain.RoleAdmin, domain.RoleManager); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(*res))
}

func (h ReservationHandler) listMine(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	reservations, err := h.Repo.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponses(reservations))
}

func (h ReservationHandler) listForDate(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateQuery(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	if date == nil {
		now := time.Now()
		date = &now
	}
	reservations, err := h.Repo.ListActiveForDate(r.Context(), *date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponses(reservations))
}

func (h ReservationHandler) cancel(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	res, err := h.Service.CancelReservation(r.Context(), id, user.Principal())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(*res))
}

func (h ReservationHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Status string `json:"status"`
		Force  bool   `json:"force"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	res, err := h.Service.UpdateReservationStatus(r.Context(), id, domain.ReservationStatus(req.Status), req.Force, user.Principal())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(*res))
}

func toReservationResponses(reservations []domain.Reservation) []map[string]any {
	out := make([]map[string]any, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, toReservationResponse(res))
	}
	return out
}

func toReservationResponse(res domain.Reservation) map[string]any {
	return map[string]any{
		"id":              strconv.FormatInt(res.ID, 10),
		"userId":          strconv.FormatInt(res.UserID, 10),
		"tableId":         strconv.FormatInt(res.TableID, 10),
		"partySize":       res.PartySize,
		"date":            res.Date.Format(dateLayout),
		"startTime":       res.StartTime,
		"endTime":         res.EndTime,
		"durationHours":   res.DurationHours,
		"status":          string(res.Status),
		"customerName":    res.CustomerName,
		"customerEmail":   res.CustomerEmail,
		"customerPhone":   res.CustomerPhone,
		"specialRequests": res.SpecialRequests,
		"occasion":        string(res.Occasion),
		"createdAt":       res.CreatedAt,
	}
}
