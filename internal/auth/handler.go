package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/frahmantamala/activity-tracker/internal"
	"github.com/frahmantamala/activity-tracker/internal/transport"
	"github.com/frahmantamala/activity-tracker/pkg/logger"
)

type ServiceAPI interface {
	Signup(dto SignupDTO) (*AuthResult, error)
	Login(dto LoginDTO) (*AuthResult, error)
	Logout() error
	ChangePassword(userID string, dto ChangePasswordDTO) error
	ValidateAccessToken(tokenString string) (*Claims, error)
}

// SessionValidator is the slice of the session manager the middleware
// needs.
type SessionValidator interface {
	IsValid() bool
	Touch() error
	CurrentUserID() string
	CurrentRole() string
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Sessions SessionValidator
}

func NewHandler(svc ServiceAPI, sessions SessionValidator) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Sessions:    sessions,
	}
}

// Signup handles POST /auth/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var dto SignupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Signup(dto)
	if err != nil {
		h.Logger.Error("Signup: failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Login(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// ChangePassword handles POST /auth/change-password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := apperrors.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(userID, dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

// Middleware authenticates the request: the bearer token must validate and
// the session slot must be live. A passing request slides the session
// window and gets the user identity attached to its context.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteAppError(w, apperrors.ErrInvalidToken)
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.WriteAppError(w, err)
			return
		}

		if !h.Sessions.IsValid() || h.Sessions.CurrentUserID() != claims.UserID {
			h.WriteAppError(w, apperrors.ErrSessionExpired)
			return
		}
		if err := h.Sessions.Touch(); err != nil {
			h.Logger.Error("failed to touch session", "error", err)
		}

		ctx := apperrors.ContextWithUserID(r.Context(), claims.UserID)
		ctx = apperrors.ContextWithRole(ctx, h.Sessions.CurrentRole())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a route on the session role.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apperrors.RoleFromContext(r.Context()) != "admin" {
			h.WriteAppError(w, apperrors.ErrAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}
