package handler

import (
	"net/http"
	"strconv"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/server/authctx"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	Service service.OrderService
}

func (h OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.create)
	r.Get("/orders/mine", h.listMine)
	r.Get("/orders/{id}", h.get)
}

func (h OrderHandler) RegisterStaffRoutes(r chi.Router) {
	r.Get("/orders", h.listAll)
	r.Put("/orders/{id}/status", h.updateStatus)
}

type orderLinePayload struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

func (h OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Items         []orderLinePayload `json:"items"`
		OrderType     string             `json:"orderType"`
		PaymentStatus string             `json:"paymentStatus"`
		CustomerNotes string             `json:"customerNotes"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	lines := make([]service.PriceLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, service.PriceLine{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}

	order, err := h.Service.CreateOrder(r.Context(), service.CreateOrderInput{
		CustomerID:    user.ID,
		Items:         lines,
		OrderType:     domain.OrderType(req.OrderType),
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
		CustomerNotes: req.CustomerNotes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(*order))
}

func (h OrderHandler) get(w http.ResponseWriter, r *http.Request) {
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
	order, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := service.RequireOwnerOrRole(user.Principal(), order.CustomerID, domain.RoleAdmin, domain.RoleManager); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*order))
}

func (h OrderHandler) listMine(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	orders, err := h.Service.ListByCustomer(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h OrderHandler) listAll(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	orders, err := h.Service.ListAll(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (h OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
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
		Status        *string `json:"status"`
		PaymentStatus *string `json:"paymentStatus"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	var status *domain.OrderStatus
	if req.Status != nil {
		s := domain.OrderStatus(*req.Status)
		status = &s
	}
	var payment *domain.PaymentStatus
	if req.PaymentStatus != nil {
		p := domain.PaymentStatus(*req.PaymentStatus)
		payment = &p
	}

	order, err := h.Service.UpdateStatus(r.Context(), id, status, payment, user.Principal())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*order))
}

func toOrderResponses(orders []domain.Order) []map[string]any {
	out := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toOrderResponse(o domain.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"menuItemId": it.MenuItemID,
			"name":       it.Name,
			"quantity":   it.Quantity,
			"unitPrice":  it.UnitPrice,
		})
	}
	return map[string]any{
		"id":            strconv.FormatInt(o.ID, 10),
		"customerId":    strconv.FormatInt(o.CustomerID, 10),
		"customerName":  o.CustomerName,
		"items":         items,
		"orderType":     string(o.OrderType),
		"status":        string(o.Status),
		"paymentStatus": string(o.PaymentStatus),
		"totalPrice":    o.TotalPrice,
		"customerNotes": o.CustomerNotes,
		"createdAt":     o.CreatedAt,
	}
}
