package appstate

import (
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/frahmantamala/activity-tracker/internal"
	"github.com/frahmantamala/activity-tracker/internal/activity"
	"github.com/frahmantamala/activity-tracker/internal/query"
	"github.com/frahmantamala/activity-tracker/internal/transport"
	"github.com/frahmantamala/activity-tracker/pkg/logger"
)

// Handler serves the dashboard views computed from the app-state mirror.
// Employees see their own slice, admins see the organization.
type Handler struct {
	*transport.BaseHandler
	State *Facade
}

func NewHandler(state *Facade) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		State:       state,
	}
}

// filtersFromRequest builds the query filters. Non-admins are always
// pinned to their own records regardless of the userId parameter.
func filtersFromRequest(r *http.Request) query.Filters {
	q := r.URL.Query()
	filters := query.Filters{
		UserID:    q.Get("userId"),
		Type:      activity.Type(q.Get("type")),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}
	if apperrors.RoleFromContext(r.Context()) != "admin" {
		filters.UserID = apperrors.UserIDFromContext(r.Context())
	}
	return filters
}

// Summary handles GET /dashboard/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	filters := filtersFromRequest(r)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"counts": h.State.CountsByType(filters),
		"recent": h.State.RecentActivities(filters, limit),
	})
}

// TypeDistribution handles GET /dashboard/charts/types
func (h *Handler) TypeDistribution(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.State.TypeDistribution(filtersFromRequest(r)))
}

// DailyTrend handles GET /dashboard/charts/trend
func (h *Handler) DailyTrend(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			days = n
		}
	}
	h.WriteJSON(w, http.StatusOK, h.State.DailyTrend(filtersFromRequest(r), days))
}

// EmployeeComparison handles GET /dashboard/charts/employees (admin only)
func (h *Handler) EmployeeComparison(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.State.EmployeeComparison())
}

// EmployeeTypeBreakdown handles GET /dashboard/charts/breakdown (admin
// only)
func (h *Handler) EmployeeTypeBreakdown(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.State.EmployeeTypeBreakdown())
}

// Refresh handles POST /dashboard/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.State.Refresh()
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
