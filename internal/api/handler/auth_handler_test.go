package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cinevault/movie-catalog/internal/core/domain"
	"github.com/cinevault/movie-catalog/internal/core/ports"
)

type stubAuthService struct {
	registerResult *ports.AuthResult
	registerErr    error
	registerInput  ports.RegisterInput

	loginResult *ports.AuthResult
	loginErr    error
	loginEmail  string
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	s.registerInput = input
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registerResult, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (*ports.AuthResult, error) {
	s.loginEmail = email
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func newAuthContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	svc := &stubAuthService{
		registerResult: &ports.AuthResult{
			User:  &domain.User{ID: "user_1", Name: "Ana", Email: "ana@example.com"},
			Token: "signed-token",
		},
	}
	h := NewAuthHandler(svc)

	body := `{"name":"Ana","email":"ana@example.com","password":"secret1","confirmPassword":"secret1"}`
	c, rec := newAuthContext(http.MethodPost, "/auth/register", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Fatalf("expected token in response, got %q", resp.Token)
	}
	if _, leaked := resp.User["passwordHash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
	if svc.registerInput.Email != "ana@example.com" {
		t.Fatalf("service received %q", svc.registerInput.Email)
	}
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	body := `{"name":"Ana","email":"not-an-email","password":"secret1","confirmPassword":"secret1"}`
	c, rec := newAuthContext(http.MethodPost, "/auth/register", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.registerInput.Email != "" {
		t.Fatalf("service called despite invalid payload")
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	body := `{"name":"Ana","email":"ana@example.com","password":"abc","confirmPassword":"abc"}`
	c, rec := newAuthContext(http.MethodPost, "/auth/register", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_DuplicateEmailPropagates(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrUserExists}
	h := NewAuthHandler(svc)

	body := `{"name":"Ana","email":"ana@example.com","password":"secret1","confirmPassword":"secret1"}`
	c, _ := newAuthContext(http.MethodPost, "/auth/register", body)

	err := h.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		loginResult: &ports.AuthResult{
			User:  &domain.User{ID: "user_1", Email: "ana@example.com"},
			Token: "signed-token",
		},
	}
	h := NewAuthHandler(svc)

	body := `{"email":"ana@example.com","password":"secret1"}`
	c, rec := newAuthContext(http.MethodPost, "/auth/login", body)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.loginEmail != "ana@example.com" {
		t.Fatalf("service received %q", svc.loginEmail)
	}
}

func TestAuthHandler_Login_BadCredentialsPropagate(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	body := `{"email":"ana@example.com","password":"wrong-pass"}`
	c, _ := newAuthContext(http.MethodPost, "/auth/login", body)

	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newAuthContext(http.MethodPost, "/auth/login", `{"email":"ana@example.com"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
