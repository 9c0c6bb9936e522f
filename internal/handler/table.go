package handler

import (
	"net/http"
	"strconv"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/repository"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/server/authctx"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/service"
	"github.com/go-chi/chi/v5"
)

// TableHandler lists tables and answers availability queries.
type TableHandler struct {
	Repo         repository.TableRepository
	Reservations *service.ReservationService
}

func (h TableHandler) RegisterRoutes(r chi.Router) {
	r.Get("/tables", h.list)
	r.Get("/tables/availability", h.availability)
	r.Get("/tables/{id}", h.get)
}

func (h TableHandler) list(w http.ResponseWriter, r *http.Request) {
	tables, err := h.Repo.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponses(tables))
}

func (h TableHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	table, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(*table))
}

func (h TableHandler) availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	partySize, err := strconv.Atoi(q.Get("partySize"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid partySize")
		return
	}
	date, err := parseDateQuery(r, "date")
	if err != nil || date == nil {
		writeError(w, http.StatusBadRequest, "date is required (YYYY-MM-DD)")
		return
	}
	tables, err := h.Reservations.GetAvailableTables(r.Context(), partySize, *date, q.Get("startTime"), q.Get("endTime"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponses(tables))
}

// TableAdminHandler owns table mutations. Deletes stay admin-only and are
// registered separately.
type TableAdminHandler struct {
	Repo repository.TableRepository
}

func (h TableAdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/tables", h.create)
	r.Put("/tables/{id}", h.update)
}

func (h TableAdminHandler) RegisterAdminRoutes(r chi.Router) {
	r.Delete("/tables/{id}", h.delete)
}

type tablePayload struct {
	TableNumber int      `json:"tableNumber"`
	Capacity    int      `json:"capacity"`
	Location    string   `json:"location"`
	Status      string   `json:"status"`
	Features    []string `json:"features"`
}

func (p tablePayload) toInput(createdBy int64) (repository.CreateTableInput, error) {
	if p.TableNumber < 1 {
		return repository.CreateTableInput{}, domain.BadRequest("tableNumber must be at least 1")
	}
	if p.Capacity < 1 {
		return repository.CreateTableInput{}, domain.BadRequest("capacity must be at least 1")
	}
	location := domain.TableLocation(p.Location)
	if p.Location == "" {
		location = domain.LocationIndoor
	}
	if !location.Valid() {
		return repository.CreateTableInput{}, domain.BadRequestf("invalid location %q", p.Location)
	}
	status := domain.TableStatus(p.Status)
	if p.Status == "" {
		status = domain.TableAvailable
	}
	if !status.Valid() {
		return repository.CreateTableInput{}, domain.BadRequestf("invalid status %q", p.Status)
	}
	features := make([]domain.TableFeature, 0, len(p.Features))
	for _, f := range p.Features {
		feature := domain.TableFeature(f)
		if !feature.Valid() {
			return repository.CreateTableInput{}, domain.BadRequestf("invalid feature %q", f)
		}
		features = append(features, feature)
	}
	return repository.CreateTableInput{
		TableNumber: p.TableNumber,
		Capacity:    p.Capacity,
		Location:    location,
		Status:      status,
		Features:    features,
		CreatedBy:   createdBy,
	}, nil
}

func (h TableAdminHandler) create(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req tablePayload
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	in, err := req.toInput(user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	table, err := h.Repo.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTableResponse(*table))
}

func (h TableAdminHandler) update(w http.ResponseWriter, r *http.Request) {
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
	var req tablePayload
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	in, err := req.toInput(user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	table, err := h.Repo.Update(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponse(*table))
}

func (h TableAdminHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func toTableResponses(tables []domain.Table) []map[string]any {
	out := make([]map[string]any, 0, len(tables))
	for _, t := range tables {
		out = append(out, toTableResponse(t))
	}
	return out
}

func toTableResponse(t domain.Table) map[string]any {
	features := make([]string, 0, len(t.Features))
	for _, f := range t.Features {
		features = append(features, string(f))
	}
	return map[string]any{
		"id":          strconv.FormatInt(t.ID, 10),
		"tableNumber": t.TableNumber,
		"capacity":    t.Capacity,
		"location":    string(t.Location),
		"status":      string(t.Status),
		"features":    features,
	}
}
