package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Jeffrey-hendell/shaypos/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CatalogService is what the product routes need from the catalog.
type CatalogService interface {
	Search(ctx context.Context, term string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type ProductHandler struct {
	catalog CatalogService
}

func NewProductHandler(catalog CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type ProductRequestDTO struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	SellingPrice    float64 `json:"selling_price"`
	DiscountPercent float64 `json:"discount_percent"`
	Stock           int     `json:"stock"`
	ImageURL        string  `json:"image_url"`
}

func (dto *ProductRequestDTO) validate() (string, bool) {
	if dto.Name == "" {
		return "name is required", false
	}
	if dto.SellingPrice < 0 {
		return "selling_price must not be negative", false
	}
	if dto.DiscountPercent < 0 || dto.DiscountPercent > 100 {
		return "discount_percent must be between 0 and 100", false
	}
	if dto.Stock < 0 {
		return "stock must not be negative", false
	}
	return "", true
}

// List serves the product picker: GET /products?q=term
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	if products == nil {
		products = []*domain.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	product := &domain.Product{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Category:        req.Category,
		SellingPrice:    req.SellingPrice,
		DiscountPercent: req.DiscountPercent,
		Stock:           req.Stock,
		ImageURL:        req.ImageURL,
	}

	if err := h.catalog.CreateProduct(r.Context(), product); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}

	product := &domain.Product{
		ID:              chi.URLParam(r, "id"),
		Name:            req.Name,
		Category:        req.Category,
		SellingPrice:    req.SellingPrice,
		DiscountPercent: req.DiscountPercent,
		Stock:           req.Stock,
		ImageURL:        req.ImageURL,
	}

	if err := h.catalog.UpdateProduct(r.Context(), product); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
