package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Jeffrey-hendell/shaypos/internal/catalog"
	"github.com/Jeffrey-hendell/shaypos/internal/checkout"
	"github.com/Jeffrey-hendell/shaypos/internal/sales"
	"github.com/Jeffrey-hendell/shaypos/internal/sellers"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: "",
	})
}

// handleDomainError maps the domain's sentinel errors to HTTP status codes.
func handleDomainError(w http.ResponseWriter, err error) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, checkout.ErrSessionNotFound),
		errors.Is(err, checkout.ErrLineNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, sales.ErrSaleNotFound),
		errors.Is(err, sellers.ErrSellerNotFound):
		httpStatus = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, checkout.ErrOutOfStock):
		httpStatus = http.StatusConflict
		code = "out_of_stock"
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		httpStatus = http.StatusConflict
		code = "submission_in_flight"
	case errors.Is(err, checkout.ErrEmptyCart):
		httpStatus = http.StatusBadRequest
		code = "empty_cart"
	case errors.Is(err, checkout.ErrMissingCustomerName):
		httpStatus = http.StatusBadRequest
		code = "missing_customer_name"
	case errors.Is(err, checkout.ErrInvalidDiscount):
		httpStatus = http.StatusBadRequest
		code = "invalid_discount"
	case errors.Is(err, checkout.ErrInvalidPayment):
		httpStatus = http.StatusBadRequest
		code = "invalid_payment_method"
	case errors.Is(err, checkout.ErrSubmissionFailed):
		httpStatus = http.StatusBadGateway
		code = "submission_failed"
	default:
		httpStatus = http.StatusInternalServerError
		code = "internal_error"
	}

	respondError(w, httpStatus, code, err.Error())
}
