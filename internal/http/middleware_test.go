package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOperatorRoleMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"admin header", "admin", RoleAdmin},
		{"seller header", "seller", RoleSeller},
		{"missing header defaults to seller", "", RoleSeller},
		{"unknown role defaults to seller", "superuser", RoleSeller},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotRole string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotRole = getRole(r.Context())
			})

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				request.Header.Set("X-Operator-Role", tt.header)
			}

			OperatorRoleMiddleware(next).ServeHTTP(recorder, request)

			if gotRole != tt.expected {
				t.Errorf("Expected role '%s', got '%s'", tt.expected, gotRole)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := OperatorRoleMiddleware(RequireAdmin(next))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("X-Operator-Role", "admin")
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest("GET", "/", nil)
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusForbidden {
		t.Errorf("Expected status code %d, got %d", http.StatusForbidden, recorder.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("X-Request-ID", "req-abc")

	RequestIDMiddleware(next).ServeHTTP(recorder, request)

	if got := recorder.Header().Get("X-Request-ID"); got != "req-abc" {
		t.Errorf("Expected request id 'req-abc', got '%s'", got)
	}

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest("GET", "/", nil)

	RequestIDMiddleware(next).ServeHTTP(recorder, request)

	if recorder.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a generated request id")
	}
}
