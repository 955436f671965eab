package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jeffrey-hendell/shaypos/internal/checkout"
	"github.com/Jeffrey-hendell/shaypos/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CheckoutServiceMock struct {
	view *checkout.SessionView
	sale *domain.Sale
	err  error

	addedProductID  string
	updatedQuantity int
	removedID       string
	customer        *checkout.Customer
	paymentMethod   *domain.PaymentMethod
	discount        *float64
	notes           *string
	cancelled       string
}

func (m *CheckoutServiceMock) OpenSession() *checkout.Session {
	return &checkout.Session{ID: "session-1"}
}

func (m *CheckoutServiceMock) View(string) (*checkout.SessionView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *CheckoutServiceMock) CancelSession(id string) error {
	m.cancelled = id
	return m.err
}

func (m *CheckoutServiceMock) AddItem(_ context.Context, _, productID string) error {
	m.addedProductID = productID
	return m.err
}

func (m *CheckoutServiceMock) UpdateQuantity(_ context.Context, _, _ string, quantity int) error {
	m.updatedQuantity = quantity
	return m.err
}

func (m *CheckoutServiceMock) RemoveItem(_, productID string) error {
	m.removedID = productID
	return m.err
}

func (m *CheckoutServiceMock) SetCustomer(_ string, customer checkout.Customer) error {
	m.customer = &customer
	return m.err
}

func (m *CheckoutServiceMock) SetPaymentMethod(_ string, method domain.PaymentMethod) error {
	m.paymentMethod = &method
	return m.err
}

func (m *CheckoutServiceMock) SetDiscount(_ string, percent float64) error {
	m.discount = &percent
	return m.err
}

func (m *CheckoutServiceMock) SetNotes(_, notes string) error {
	m.notes = &notes
	return m.err
}

func (m *CheckoutServiceMock) Submit(context.Context, string) (*domain.Sale, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sale, nil
}

func emptyView() *checkout.SessionView {
	return &checkout.SessionView{
		ID:     "session-1",
		Status: checkout.StatusOpen,
		Lines:  []checkout.Line{},
	}
}

func withSessionParam(request *http.Request, sessionID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("session_id", sessionID)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))
}

func TestOpenSession(t *testing.T) {
	mock := &CheckoutServiceMock{view: emptyView()}
	handler := NewCheckoutHandler(mock)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/", nil)

	handler.Open(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response checkout.SessionView
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.ID != "session-1" {
		t.Errorf("Expected session id 'session-1', got '%s'", response.ID)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	mock := &CheckoutServiceMock{err: checkout.ErrSessionNotFound}
	handler := NewCheckoutHandler(mock)

	recorder := httptest.NewRecorder()
	request := withSessionParam(httptest.NewRequest("GET", "/missing", nil), "missing")

	handler.Get(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "not_found" {
		t.Errorf("Expected error code 'not_found', got '%s'", response.Code)
	}
}

func TestAddItem_ReturnsView(t *testing.T) {
	mock := &CheckoutServiceMock{
		view: &checkout.SessionView{
			ID:     "session-1",
			Status: checkout.StatusOpen,
			Lines:  []checkout.Line{{ProductID: "p1", Name: "Maillot", Quantity: 1, UnitPrice: 90}},
			Totals: checkout.Totals{Subtotal: 90, Total: 90},
		},
	}
	handler := NewCheckoutHandler(mock)

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: "p1"})
	recorder := httptest.NewRecorder()
	request := withSessionParam(httptest.NewRequest("POST", "/session-1/items", bytes.NewReader(body)), "session-1")

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.addedProductID != "p1" {
		t.Errorf("Expected added product 'p1', got '%s'", mock.addedProductID)
	}

	var response checkout.SessionView
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Lines) != 1 || response.Lines[0].UnitPrice != 90 {
		t.Errorf("Unexpected lines in response: %+v", response.Lines)
	}
}

func TestAddItem_MissingProductID(t *testing.T) {
	handler := NewCheckoutHandler(&CheckoutServiceMock{view: emptyView()})

	body, _ := json.Marshal(AddItemRequestDTO{})
	recorder := httptest.NewRecorder()
	request := withSessionParam(httptest.NewRequest("POST", "/session-1/items", bytes.NewReader(body)), "session-1")

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_product_id" {
		t.Errorf("Expected error code 'invalid_product_id', got '%s'", response.Code)
	}
}

func TestAddItem_InvalidJSON(t *testing.T) {
	handler := NewCheckoutHandler(&CheckoutServiceMock{view: emptyView()})

	recorder := httptest.NewRecorder()
	request := withSessionParam(httptest.NewRequest("POST", "/session-1/items", bytes.NewReader([]byte("not json"))), "session-1")

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestAddItem_OutOfStock(t *testing.T) {
	mock := &CheckoutServiceMock{err: checkout.ErrOutOfStock}
	handler := NewCheckoutHandler(mock)

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: "p1"})
	recorder := httptest.NewRecorder()
	request := withSessionParam(httptest.NewRequest("POST", "/session-1/items", bytes.NewReader(body)), "session-1")

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "out_of_stock" {
		t.Errorf("Expected error code 'out_of_stock', got '%s'", response.Code)
	}
}

func TestUpdateQuantity_PassesQuantity(t *testing.T) {
	mock := &CheckoutServiceMock{view: emptyView()}
	handler := NewCheckoutHandler(mock)

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 3})
	recorder := httptest.NewRecorder()
	request := withSessionParam(httptest.NewRequest("PUT", "/session-1/items/p1", bytes.NewReader(body)), "session-1")

	handler.UpdateQuantity(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.updatedQuantity != 3 {
		t.Errorf("Expected quantity 3, got %d", mock.updatedQuantity)
	}
}

func TestSetDetails_AppliesOnlyPresentFields(t *testing.T) {
	mock := &CheckoutServiceMock{view: emptyView()}
	handler := NewCheckoutHandler(mock)

	body := []byte(`{"customer":{"name":"Awa Diop"},"discount_percent":10}`)
	recorder := httptest.NewRecorder()
	request := withSessionParam(httptest.NewRequest("PUT", "/session-1/details", bytes.NewReader(body)), "session-1")

	handler.SetDetails(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.customer == nil || mock.customer.Name != "Awa Diop" {
		t.Errorf("Expected customer name 'Awa Diop', got %+v", mock.customer)
	}
	if mock.discount == nil || *mock.discount != 10 {
		t.Errorf("Expected discount 10, got %+v", mock.discount)
	}
	if mock.paymentMethod != nil {
		t.Errorf("Payment method should be untouched, got %+v", mock.paymentMethod)
	}
	if mock.notes != nil {
		t.Errorf("Notes should be untouched, got %+v", mock.notes)
	}
}

func TestSetDetails_InvalidPayment(t *testing.T) {
	mock := &CheckoutServiceMock{err: checkout.ErrInvalidPayment}
	handler := NewCheckoutHandler(mock)

	body := []byte(`{"payment_method":"bitcoin"}`)
	recorder := httptest.NewRecorder()
	request := withSessionParam(httptest.NewRequest("PUT", "/session-1/details", bytes.NewReader(body)), "session-1")

	handler.SetDetails(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestSubmit_Success(t *testing.T) {
	mock := &CheckoutServiceMock{
		sale: &domain.Sale{CustomerName: "Awa Diop", TotalAmount: 162},
	}
	handler := NewCheckoutHandler(mock)

	recorder := httptest.NewRecorder()
	request := withSessionParam(httptest.NewRequest("POST", "/session-1/submit", nil), "session-1")

	handler.Submit(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response domain.Sale
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.TotalAmount != 162 {
		t.Errorf("Expected total 162, got %v", response.TotalAmount)
	}
}

func TestSubmit_DomainErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedHTTP int
		expectedCode string
	}{
		{"empty cart", checkout.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
		{"missing customer name", checkout.ErrMissingCustomerName, http.StatusBadRequest, "missing_customer_name"},
		{"already submitting", checkout.ErrSubmissionInFlight, http.StatusConflict, "submission_in_flight"},
		{"submission failed", checkout.ErrSubmissionFailed, http.StatusBadGateway, "submission_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCheckoutHandler(&CheckoutServiceMock{err: tt.err})

			recorder := httptest.NewRecorder()
			request := withSessionParam(httptest.NewRequest("POST", "/session-1/submit", nil), "session-1")

			handler.Submit(recorder, request)

			if recorder.Code != tt.expectedHTTP {
				t.Errorf("Expected status code %d, got %d", tt.expectedHTTP, recorder.Code)
			}

			var response ErrorResponse
			json.NewDecoder(recorder.Body).Decode(&response)
			if response.Code != tt.expectedCode {
				t.Errorf("Expected error code '%s', got '%s'", tt.expectedCode, response.Code)
			}
		})
	}
}

func TestCancelSession(t *testing.T) {
	mock := &CheckoutServiceMock{}
	handler := NewCheckoutHandler(mock)

	recorder := httptest.NewRecorder()
	request := withSessionParam(httptest.NewRequest("DELETE", "/session-1", nil), "session-1")

	handler.Cancel(recorder, request)

	if recorder.Code != http.StatusNoContent {
		t.Errorf("Expected status code %d, got %d", http.StatusNoContent, recorder.Code)
	}
	if mock.cancelled != "session-1" {
		t.Errorf("Expected cancelled session 'session-1', got '%s'", mock.cancelled)
	}
}
