package handler

import (
	"net/http"
	"strconv"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
)

// MenuHandler serves the public menu catalog.
type MenuHandler struct {
	Repo repository.MenuRepository
}

func (h MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/menu", h.list)
	r.Get("/menu/{id}", h.get)
}

func (h MenuHandler) list(w http.ResponseWriter, r *http.Request) {
	onlyAvailable := r.URL.Query().Get("all") == ""
	items, err := h.Repo.List(r.Context(), onlyAvailable)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponses(items))
}

func (h MenuHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	item, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(*item))
}

// MenuAdminHandler owns catalog mutations (manager/admin routes).
type MenuAdminHandler struct {
	Repo repository.MenuRepository
}

func (h MenuAdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/menu", h.create)
	r.Put("/menu/{id}", h.update)
	r.Delete("/menu/{id}", h.delete)
}

type menuItemPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	IsAvailable *bool  `json:"isAvailable"`
}

func (p menuItemPayload) toInput() (repository.CreateMenuItemInput, error) {
	if p.Name == "" {
		return repository.CreateMenuItemInput{}, domain.BadRequest("name is required")
	}
	if p.Price < 0 {
		return repository.CreateMenuItemInput{}, domain.BadRequest("price must not be negative")
	}
	category := domain.MenuCategory(p.Category)
	if !category.Valid() {
		return repository.CreateMenuItemInput{}, domain.BadRequestf("invalid category %q", p.Category)
	}
	available := true
	if p.IsAvailable != nil {
		available = *p.IsAvailable
	}
	return repository.CreateMenuItemInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    category,
		IsAvailable: available,
	}, nil
}

func (h MenuAdminHandler) create(w http.ResponseWriter, r *http.Request) {
	var req menuItemPayload
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	item, err := h.Repo.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMenuItemResponse(*item))
}

func (h MenuAdminHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req menuItemPayload
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	item, err := h.Repo.Update(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(*item))
}

func (h MenuAdminHandler) delete(w http.ResponseWriter, r *http.Request) {
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

func toMenuItemResponses(items []domain.MenuItem) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, toMenuItemResponse(it))
	}
	return out
}

func toMenuItemResponse(it domain.MenuItem) map[string]any {
	return map[string]any{
		"id":          strconv.FormatInt(it.ID, 10),
		"name":        it.Name,
		"description": it.Description,
		"price":       it.Price,
		"category":    string(it.Category),
		"isAvailable": it.IsAvailable,
	}
}
