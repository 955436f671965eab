package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Jeffrey-hendell/shaypos/internal/sellers"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SellerStore interface {
	ListSellers(ctx context.Context) ([]*sellers.Seller, error)
	GetSeller(ctx context.Context, id string) (*sellers.Seller, error)
	CreateSeller(ctx context.Context, s *sellers.Seller) error
	UpdateSeller(ctx context.Context, s *sellers.Seller) error
	DeleteSeller(ctx context.Context, id string) error
}

type SellerHandler struct {
	store SellerStore
}

func NewSellerHandler(store SellerStore) *SellerHandler {
	return &SellerHandler{store: store}
}

type SellerRequestDTO struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

func (dto *SellerRequestDTO) validate() (string, bool) {
	if dto.Name == "" {
		return "name is required", false
	}
	if dto.Role != RoleAdmin && dto.Role != RoleSeller {
		return "role must be admin or seller", false
	}
	return "", true
}

func (h *SellerHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.ListSellers(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	if result == nil {
		result = []*sellers.Seller{}
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *SellerHandler) Get(w http.ResponseWriter, r *http.Request) {
	seller, err := h.store.GetSeller(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, seller)
}

func (h *SellerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SellerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	seller := &sellers.Seller{
		ID:     uuid.New().String(),
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Role:   req.Role,
		Active: req.Active,
	}

	if err := h.store.CreateSeller(r.Context(), seller); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, seller)
}

func (h *SellerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req SellerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	seller := &sellers.Seller{
		ID:     chi.URLParam(r, "id"),
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Role:   req.Role,
		Active: req.Active,
	}

	if err := h.store.UpdateSeller(r.Context(), seller); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, seller)
}

func (h *SellerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSeller(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
