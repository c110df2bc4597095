package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"localmarket/internal/dto/request"
	"localmarket/internal/dto/response"
	"localmarket/internal/usecase"
	"localmarket/pkg/utils"

	"go.uber.org/zap"
)

// stubAuthService returns canned results per call
type stubAuthService struct {
	sendErr   error
	verifyErr error
	loginRes  *response.LoginResponse
	loginErr  error
	sessRes   *response.SessionUser
	sessErr   error
}

func (s *stubAuthService) SendOTP(ctx context.Context, req *request.SendOTPRequest) error {
	return s.sendErr
}

func (s *stubAuthService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) error {
	return s.verifyErr
}

func (s *stubAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	return s.loginRes, s.loginErr
}

func (s *stubAuthService) Session(tokenString string) (*response.SessionUser, error) {
	return s.sessRes, s.sessErr
}

func newAuthTestHandler(stub *stubAuthService, env string) *AuthHandler {
	config := &utils.Config{App: utils.AppConfig{Env: env}}
	return NewAuthHandler(stub, config, zap.NewNop())
}

func TestSendOTPStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, http.StatusCreated},
		{"mail failure", usecase.ErrSendOTPEmail, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newAuthTestHandler(&stubAuthService{sendErr: tc.err}, "development")

			req := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp",
				strings.NewReader(`{"name":"Asha","email":"asha@example.com"}`))
			rec := httptest.NewRecorder()

			h.SendOTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestSendOTPMalformedBody(t *testing.T) {
	h := newAuthTestHandler(&stubAuthService{}, "development")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/send-otp", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.SendOTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestVerifyOTPStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, http.StatusOK},
		{"no pending code", usecase.ErrOTPNotFound, http.StatusNotFound},
		{"expired", usecase.ErrOTPExpired, http.StatusBadRequest},
		{"attempt ceiling", usecase.ErrOTPMaxAttempts, http.StatusBadRequest},
		{"wrong code", usecase.ErrOTPInvalid, http.StatusUnauthorized},
		{"unknown role", usecase.ErrInvalidRole, http.StatusBadRequest},
	}

	body := `{"name":"Asha","email":"asha@example.com","password":"secret123",` +
		`"mobile":"08123456789","address":"12 Market Street","role":"customer","enteredOtp":"123456"}`

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newAuthTestHandler(&stubAuthService{verifyErr: tc.err}, "development")

			req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp", strings.NewReader(body))
			rec := httptest.NewRecorder()

			h.VerifyOTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	stub := &stubAuthService{
		loginRes: &response.LoginResponse{
			User:      response.SessionUser{ID: "u1", Name: "Asha", Role: "customer"},
			Token:     "signed-token",
			ExpiresAt: time.Now().Add(24 * time.Hour),
		},
	}
	h := newAuthTestHandler(stub, "development")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"asha@example.com","password":"secret123","role":"customer"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}

	c := cookies[0]
	if c.Name != "token" || c.Value != "signed-token" {
		t.Errorf("unexpected cookie %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if c.SameSite != http.SameSiteLaxMode || c.Secure {
		t.Error("development cookie should be SameSite=Lax without Secure")
	}
}

func TestLoginCookieInProduction(t *testing.T) {
	stub := &stubAuthService{
		loginRes: &response.LoginResponse{
			Token:     "signed-token",
			ExpiresAt: time.Now().Add(24 * time.Hour),
		},
	}
	h := newAuthTestHandler(stub, "production")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"asha@example.com","password":"secret123","role":"customer"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	c := rec.Result().Cookies()[0]
	if c.SameSite != http.SameSiteNoneMode || !c.Secure {
		t.Error("production cookie should be SameSite=None with Secure")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	h := newAuthTestHandler(&stubAuthService{loginErr: usecase.ErrInvalidCredentials}, "development")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"asha@example.com","password":"bad","role":"customer"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no cookie should be set on failed login")
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := newAuthTestHandler(&stubAuthService{}, "development")

	// Logout succeeds with or without an existing session
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	c := rec.Result().Cookies()[0]
	if c.Value != "" || c.MaxAge != -1 {
		t.Errorf("cookie not cleared: value=%q maxAge=%d", c.Value, c.MaxAge)
	}
}

func TestSessionWithoutCookie(t *testing.T) {
	h := newAuthTestHandler(&stubAuthService{}, "development")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	rec := httptest.NewRecorder()

	h.Session(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionWithValidCookie(t *testing.T) {
	stub := &stubAuthService{
		sessRes: &response.SessionUser{ID: "u1", Name: "Asha", Role: "customer"},
	}
	h := newAuthTestHandler(stub, "development")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "signed-token"})
	rec := httptest.NewRecorder()

	h.Session(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"Asha"`) {
		t.Error("session body should carry the claims")
	}
}

func TestSessionWithBadToken(t *testing.T) {
	h := newAuthTestHandler(&stubAuthService{sessErr: usecase.ErrInvalidCredentials}, "development")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	rec := httptest.NewRecorder()

	h.Session(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
