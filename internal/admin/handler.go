package admin

import (
	"log/slog"
	"net/http"
	"time"

	"souveno-backend/internal/auth"
	"souveno-backend/internal/config"
	"souveno-backend/internal/httpx"
	"souveno-backend/internal/middleware"
	"souveno-backend/internal/transport"
	"souveno-backend/internal/validation"
)

type Handler struct {
	cfg *config.Config
	val *validation.Validator
	log *slog.Logger
}

func NewHandler(cfg *config.Config, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{cfg: cfg, val: val, log: log}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (h *Handler) manager() *auth.Manager {
	return &auth.Manager{
		Secret:     []byte(h.cfg.JWTSecret),
		AccessTTL:  time.Duration(h.cfg.AccessTTLMinutes) * time.Minute,
		RefreshTTL: time.Duration(h.cfg.RefreshTTLMinutes) * time.Minute,
		Issuer:     "souveno-backend",
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req LoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("staff login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("staff login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "Validation failed", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	if h.cfg.AdminPasswordHash == "" || h.cfg.JWTSecret == "" {
		log.Warn("staff login: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "Staff auth not configured", nil)
		return
	}

	if req.Username != h.cfg.AdminUser || auth.ComparePassword(h.cfg.AdminPasswordHash, req.Password) != nil {
		log.Warn("staff login: invalid credentials", slog.String("username", req.Username))
		transport.WriteError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	manager := h.manager()
	accessToken, err := manager.NewAccessToken(req.Username)
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Token error", nil)
		return
	}
	refreshToken, err := manager.NewRefreshToken(req.Username)
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Token error", nil)
		return
	}

	setAuthCookies(w, accessToken, refreshToken, manager.AccessTTL, manager.RefreshTTL, h.cfg.CookieSecure)
	log.Info("staff login: ok", slog.String("username", req.Username))
	transport.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if h.cfg.JWTSecret == "" {
		log.Warn("staff refresh: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "Staff auth not configured", nil)
		return
	}

	refreshCookie, err := r.Cookie(auth.RefreshCookie)
	if err != nil || refreshCookie.Value == "" {
		log.Warn("staff refresh: missing refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "Missing refresh token", nil)
		return
	}

	manager := h.manager()
	claims, err := manager.Parse(refreshCookie.Value)
	if err != nil || claims.Role != auth.RoleStaff {
		log.Warn("staff refresh: invalid refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "Invalid refresh token", nil)
		return
	}

	accessToken, err := manager.NewAccessToken(claims.Subject)
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Token error", nil)
		return
	}
	refreshToken, err := manager.NewRefreshToken(claims.Subject)
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Token error", nil)
		return
	}

	setAuthCookies(w, accessToken, refreshToken, manager.AccessTTL, manager.RefreshTTL, h.cfg.CookieSecure)
	log.Info("staff refresh: ok")
	transport.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	clearAuthCookies(w, h.cfg.CookieSecure)
	log.Info("staff logout: ok")
	transport.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(accessTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     auth.RefreshCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookies(w http.ResponseWriter, secure bool) {
	for _, name := range []string{auth.AccessCookie, auth.RefreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
