package activity

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

// ListFilters narrows a listing; zero values do not constrain. Dates are
// YYYY-MM-DD and bound createdAt inclusively.
type ListFilters struct {
	Type      string
	StartDate string
	EndDate   string
}

type ServiceAPI interface {
	List(userID string, filters ListFilters) []*Activity
	GetByID(actorID, actorRole, id string) (*Activity, error)
	Create(userID string, dto CreateActivityDTO) (*Activity, error)
	Update(actorID, actorRole, id string, dto UpdateActivityDTO) (*Activity, error)
	RemoveImage(actorID, actorRole, id string, field ImageField) (*Activity, error)
	Delete(actorID, actorRole, id string) error
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

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		h.WriteAppError(w, apperrors.ErrActivityNotFound)
	case errors.Is(err, ErrInvalidImage):
		h.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.WriteAppError(w, err)
	}
}

// ListActivities handles GET /activities. Admins may scope to any user via
// the userId parameter; employees are always pinned to their own records.
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	userID := apperrors.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	params := r.URL.Query()
	scope := userID
	if apperrors.RoleFromContext(r.Context()) == roleAdmin {
		scope = params.Get("userId")
	}

	activities := h.Service.List(scope, ListFilters{
		Type:      params.Get("type"),
		StartDate: params.Get("startDate"),
		EndDate:   params.Get("endDate"),
	})
	if activities == nil {
		activities = []*Activity{}
	}

	h.WriteJSON(w, http.StatusOK, activities)
}

// GetActivity handles GET /activities/{id}
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	userID := apperrors.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	a, err := h.Service.GetByID(userID, apperrors.RoleFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

// CreateActivity handles POST /activities
func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	userID := apperrors.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Create(userID, dto)
	if err != nil {
		h.Logger.Error("CreateActivity: create failed", "user_id", userID, "error", err)
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

// UpdateActivity handles PATCH /activities/{id}
func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	userID := apperrors.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.Update(userID, apperrors.RoleFromContext(r.Context()), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.Logger.Error("UpdateActivity: update failed", "activity_id", chi.URLParam(r, "id"), "error", err)
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

// RemoveActivityImage handles DELETE /activities/{id}/images/{field}
func (h *Handler) RemoveActivityImage(w http.ResponseWriter, r *http.Request) {
	userID := apperrors.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	field := ImageField(chi.URLParam(r, "field"))
	a, err := h.Service.RemoveImage(userID, apperrors.RoleFromContext(r.Context()), chi.URLParam(r, "id"), field)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

// DeleteActivity handles DELETE /activities/{id}
func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID := apperrors.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Delete(userID, apperrors.RoleFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
