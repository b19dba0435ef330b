package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/identity-core/auth-service/internal/core/domain"
)

func render(t *testing.T, err error) (int, map[string]map[string]string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		err  *domain.Error
		code string
	}{
		{domain.ErrUserExists, "USER_ALREADY_EXISTS"},
		{domain.ErrInvalidCredentials, "INVALID_CREDENTIALS"},
		{domain.ErrAccessDenied, "ACCESS_DENIED"},
		{domain.ErrInvalidInput, "INVALID_INPUT_VALUE"},
		{domain.ErrInvalidToken, "INVALID_TOKEN"},
		{domain.ErrInvalidAdminKey, "INVALID_ADMIN_KEY"},
		{domain.ErrUserNotFound, "USER_NOT_FOUND"},
	}

	for _, tt := range tests {
		status, body := render(t, tt.err)
		if status != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tt.code, status)
		}
		if body["error"]["code"] != tt.code {
			t.Fatalf("expected code %s, got %q", tt.code, body["error"]["code"])
		}
		if body["error"]["message"] == "" {
			t.Fatalf("%s: expected a message", tt.code)
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	status, body := render(t, errors.Join(errors.New("context"), domain.ErrInvalidToken))
	if status != http.StatusBadRequest || body["error"]["code"] != "INVALID_TOKEN" {
		t.Fatalf("wrapped domain error not unwrapped: %d %v", status, body)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	status, body := render(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if body["error"]["code"] != "UNAUTHORIZED" {
		t.Fatalf("unexpected code: %q", body["error"]["code"])
	}
	if body["error"]["message"] != "missing authorization header" {
		t.Fatalf("unexpected message: %q", body["error"]["message"])
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	status, body := render(t, errors.New("mongo blew up"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body["error"]["code"] != "INTERNAL_ERROR" {
		t.Fatalf("unexpected code: %q", body["error"]["code"])
	}
	// Internals must not leak to the client.
	if body["error"]["message"] != "internal server error" {
		t.Fatalf("unexpected message: %q", body["error"]["message"])
	}
}
