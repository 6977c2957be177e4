package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

type AuthHandler struct {
	authSvc       service.AuthService
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	secureCookies bool
}

func NewAuthHandler(authSvc service.AuthService, accessExpiry, refreshExpiry time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authSvc:       authSvc,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		secureCookies: secureCookies,
	}
}

type signupRequest struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User      *domain.User `json:"user,omitempty"`
	CSRFToken string       `json:"csrf_token"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		badRequest(w, "name and email are required")
		return
	}

	user, pair, err := h.authSvc.Signup(r.Context(), domain.UserRole(req.Role), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	writeJSON(w, http.StatusCreated, sessionResponse{User: user, CSRFToken: pair.CSRFToken})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, pair, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	writeJSON(w, http.StatusOK, sessionResponse{User: user, CSRFToken: pair.CSRFToken})
}

// Refresh rotates the session tokens from the refresh cookie. It is
// exempt from auth and CSRF middleware since the expired access token is
// exactly what it exists to replace.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(RefreshCookie)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing refresh token", Code: "UNAUTHORIZED"})
		return
	}

	pair, err := h.authSvc.Refresh(r.Context(), c.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	writeJSON(w, http.StatusOK, sessionResponse{CSRFToken: pair.CSRFToken})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(RefreshCookie); err == nil {
		if err := h.authSvc.Logout(r.Context(), c.Value); err != nil {
			writeError(w, err)
			return
		}
	}

	h.clearSessionCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required", Code: "UNAUTHORIZED"})
		return
	}
	user, err := h.authSvc.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, pair *service.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(h.accessExpiry.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    pair.RefreshToken,
		Path:     "/api/v1/auth",
		MaxAge:   int(h.refreshExpiry.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	// The CSRF cookie is readable by the client script so it can echo
	// the value back in the X-CSRF-Token header.
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookie,
		Value:    pair.CSRFToken,
		Path:     "/",
		MaxAge:   int(h.refreshExpiry.Seconds()),
		HttpOnly: false,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookies(w http.ResponseWriter) {
	for _, c := range []http.Cookie{
		{Name: AccessCookie, Path: "/"},
		{Name: RefreshCookie, Path: "/api/v1/auth"},
		{Name: CSRFCookie, Path: "/"},
	} {
		c.MaxAge = -1
		http.SetCookie(w, &c)
	}
}
