package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Jeffrey-hendell/shaypos/internal/checkout"
	"github.com/Jeffrey-hendell/shaypos/internal/domain"
	"github.com/go-chi/chi/v5"
)

// CheckoutService is the checkout engine surface the quick-sale routes use.
type CheckoutService interface {
	OpenSession() *checkout.Session
	View(sessionID string) (*checkout.SessionView, error)
	CancelSession(sessionID string) error
	AddItem(ctx context.Context, sessionID, productID string) error
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) error
	RemoveItem(sessionID, productID string) error
	SetCustomer(sessionID string, customer checkout.Customer) error
	SetPaymentMethod(sessionID string, method domain.PaymentMethod) error
	SetDiscount(sessionID string, percent float64) error
	SetNotes(sessionID, notes string) error
	Submit(ctx context.Context, sessionID string) (*domain.Sale, error)
}

type CheckoutHandler struct {
	service CheckoutService
}

func NewCheckoutHandler(service CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CheckoutDetailsRequestDTO struct {
	Customer        *checkout.Customer `json:"customer,omitempty"`
	PaymentMethod   *string            `json:"payment_method,omitempty"`
	DiscountPercent *float64           `json:"discount_percent,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
}

func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	session := h.service.OpenSession()
	view, err := h.service.View(session.ID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, view)
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.View(chi.URLParam(r, "session_id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelSession(chi.URLParam(r, "session_id")); err != nil {
		handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CheckoutHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	if err := h.service.AddItem(r.Context(), sessionID, req.ProductID); err != nil {
		handleDomainError(w, err)
		return
	}

	h.respondView(w, sessionID)
}

func (h *CheckoutHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), sessionID, productID, req.Quantity); err != nil {
		handleDomainError(w, err)
		return
	}

	h.respondView(w, sessionID)
}

func (h *CheckoutHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	if err := h.service.RemoveItem(sessionID, chi.URLParam(r, "product_id")); err != nil {
		handleDomainError(w, err)
		return
	}

	h.respondView(w, sessionID)
}

// SetDetails applies the checkout form fields: customer, payment method,
// discount, notes. Absent fields are left untouched.
func (h *CheckoutHandler) SetDetails(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	var req CheckoutDetailsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Customer != nil {
		if err := h.service.SetCustomer(sessionID, *req.Customer); err != nil {
			handleDomainError(w, err)
			return
		}
	}
	if req.PaymentMethod != nil {
		if err := h.service.SetPaymentMethod(sessionID, domain.PaymentMethod(*req.PaymentMethod)); err != nil {
			handleDomainError(w, err)
			return
		}
	}
	if req.DiscountPercent != nil {
		if err := h.service.SetDiscount(sessionID, *req.DiscountPercent); err != nil {
			handleDomainError(w, err)
			return
		}
	}
	if req.Notes != nil {
		if err := h.service.SetNotes(sessionID, *req.Notes); err != nil {
			handleDomainError(w, err)
			return
		}
	}

	h.respondView(w, sessionID)
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sale, err := h.service.Submit(r.Context(), chi.URLParam(r, "session_id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, sale)
}

func (h *CheckoutHandler) respondView(w http.ResponseWriter, sessionID string) {
	view, err := h.service.View(sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
