package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	apperrors "github.com/frahmantamala/activity-tracker/internal"
	"github.com/frahmantamala/activity-tracker/internal/transport"
	"github.com/frahmantamala/activity-tracker/pkg/logger"
)

type ServiceAPI interface {
	GetAll() []*User
	GetByID(id string) (*User, error)
	UpdateProfile(userID string, dto UpdateProfileDTO) (*User, error)
	PromoteToAdmin(userID string) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// writeServiceError translates the package sentinels into their API errors
// before falling back to the generic mapping.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		h.WriteAppError(w, apperrors.ErrUserNotFound)
	case errors.Is(err, ErrDuplicateEmail):
		h.WriteAppError(w, apperrors.ErrDuplicateEmail)
	default:
		h.WriteAppError(w, err)
	}
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := apperrors.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(userID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: lookup failed", "user_id", userID, "error", err)
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// UpdateProfile handles PATCH /users/me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := apperrors.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.UpdateProfile(userID, dto)
	if err != nil {
		h.Logger.Error("UpdateProfile: update failed", "user_id", userID, "error", err)
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// ListUsers handles GET /users (admin only)
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if apperrors.RoleFromContext(r.Context()) != string(RoleAdmin) {
		h.WriteAppError(w, apperrors.ErrAdminOnly)
		return
	}

	h.WriteJSON(w, http.StatusOK, h.Service.GetAll())
}

// GetUser handles GET /users/{id} (admin only)
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	if apperrors.RoleFromContext(r.Context()) != string(RoleAdmin) {
		h.WriteAppError(w, apperrors.ErrAdminOnly)
		return
	}

	u, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// PromoteUser handles POST /users/{id}/promote (admin only)
func (h *Handler) PromoteUser(w http.ResponseWriter, r *http.Request) {
	if apperrors.RoleFromContext(r.Context()) != string(RoleAdmin) {
		h.WriteAppError(w, apperrors.ErrAdminOnly)
		return
	}

	targetID := chi.URLParam(r, "id")
	u, err := h.Service.PromoteToAdmin(targetID)
	if err != nil {
		h.Logger.Error("PromoteUser: promotion failed", "user_id", targetID, "error", err)
		h.writeServiceError(w, err)
		return
	}

	h.Logger.Info("PromoteUser: user promoted", "user_id", targetID)
	h.WriteJSON(w, http.StatusOK, u)
}
