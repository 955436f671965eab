package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Jeffrey-hendell/shaypos/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const defaultSalesLimit = 50

// SalesReader is the sales-history surface of the sales repository.
type SalesReader interface {
	GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	ListSales(ctx context.Context, limit int) ([]*domain.Sale, error)
}

type SalesHandler struct {
	repo SalesReader
}

func NewSalesHandler(repo SalesReader) *SalesHandler {
	return &SalesHandler{repo: repo}
}

func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultSalesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	result, err := h.repo.ListSales(r.Context(), limit)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	if result == nil {
		result = []*domain.Sale{}
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *SalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_sale_id", "sale id must be a UUID")
		return
	}

	sale, err := h.repo.GetSale(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sale)
}
