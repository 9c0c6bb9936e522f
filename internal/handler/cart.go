package handler

import (
	"net/http"
	"strconv"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/server/authctx"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/service"
	"github.com/go-chi/chi/v5"
)

// CartHandler operates on the authenticated customer's cart. A cart is
// created on registration, so missing carts surface as 404s.
type CartHandler struct {
	Service service.CartService
}

func (h CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/cart", h.get)
	r.Post("/cart/items", h.addItem)
	r.Put("/cart/items/{menuItemId}", h.updateItem)
	r.Delete("/cart/items/{menuItemId}", h.removeItem)
	r.Delete("/cart/items", h.empty)
}

func (h CartHandler) get(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.ownCart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.ownCart(w, r)
	if !ok {
		return
	}
	var req struct {
		MenuItemID int64 `json:"menuItemId"`
		Quantity   int   `json:"quantity"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	updated, err := h.Service.AddItem(r.Context(), cart.ID, req.MenuItemID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(updated))
}

func (h CartHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.ownCart(w, r)
	if !ok {
		return
	}
	menuItemID, err := pathID(r, "menuItemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menuItemId")
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	updated, err := h.Service.UpdateItemQuantity(r.Context(), cart.ID, menuItemID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(updated))
}

func (h CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.ownCart(w, r)
	if !ok {
		return
	}
	menuItemID, err := pathID(r, "menuItemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menuItemId")
		return
	}
	updated, err := h.Service.RemoveItem(r.Context(), cart.ID, menuItemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(updated))
}

func (h CartHandler) empty(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.ownCart(w, r)
	if !ok {
		return
	}
	updated, err := h.Service.Empty(r.Context(), cart.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(updated))
}

// ownCart resolves the caller's cart, creating one if registration somehow
// did not.
func (h CartHandler) ownCart(w http.ResponseWriter, r *http.Request) (*domain.Cart, bool) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	cart, err := h.Service.GetByCustomer(r.Context(), user.ID)
	if err != nil {
		if domain.IsCode(err, domain.CodeNotFound) {
			cart, err = h.Service.Create(r.Context(), &user.ID)
			if err != nil {
				writeDomainError(w, err)
				return nil, false
			}
			return cart, true
		}
		writeDomainError(w, err)
		return nil, false
	}
	return cart, true
}

func toCartResponse(c *domain.Cart) map[string]any {
	items := make([]map[string]any, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, map[string]any{
			"menuItemId": strconv.FormatInt(it.MenuItemID, 10),
			"quantity":   it.Quantity,
		})
	}
	return map[string]any{
		"id":         strconv.FormatInt(c.ID, 10),
		"items":      items,
		"totalPrice": c.TotalPrice,
	}
}
