package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"localmarket/internal/dto/request"
	"localmarket/internal/usecase"
	"localmarket/pkg/utils"

	"go.uber.org/zap"
)

const sessionCookieName = "token"

type AuthHandler struct {
	service usecase.AuthService
	config  *utils.Config
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, config *utils.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SendOTP handles POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SendOTP(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "send OTP")
		return
	}

	utils.ResponseCreated(w, "OTP sent to email", nil)
}

// VerifyOTP handles POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.VerifyOTP(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "verify OTP")
		return
	}

	utils.ResponseSuccess(w, "User registered successfully", nil)
}

// Login handles POST /api/auth/login and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	http.SetCookie(w, h.sessionCookie(result.Token, result.ExpiresAt))

	utils.ResponseSuccess(w, "Login successful", result.User)
}

// Logout handles POST /api/auth/logout; succeeds whether or not a
// session cookie was present
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.sessionCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	utils.ResponseSuccess(w, "Logged out successfully", nil)
}

// Session handles GET /api/auth/session by decoding the cookie token;
// no database read happens here
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		utils.ResponseUnauthorized(w, "Not logged in")
		return
	}

	user, err := h.service.Session(cookie.Value)
	if err != nil {
		utils.ResponseUnauthorized(w, "Invalid token")
		return
	}

	utils.ResponseSuccess(w, "Session active", user)
}

// sessionCookie builds the HTTP-only session cookie. Production uses
// SameSite=None with Secure so the cookie survives a cross-site frontend;
// development stays on Lax over plain HTTP.
func (h *AuthHandler) sessionCookie(value string, expiresAt time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
	}

	if h.config.App.IsProduction() {
		cookie.SameSite = http.SameSiteNoneMode
		cookie.Secure = true
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	return cookie
}
