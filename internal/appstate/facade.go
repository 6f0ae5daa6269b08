// Package appstate mirrors the users and activities tables in memory so
// derived views never hit storage on the read path. The cache is loaded
// once at construction and kept current optimistically: every mutation
// goes to the underlying service first and is applied to the cache only
// after it persisted.
//
// Last write wins at table granularity when several processes share one
// backing store; Refresh reloads the mirror for callers that care.
package appstate

import (
	"log/slog"
	"sync"

	"github.com/frahmantamala/activity-tracker/internal/activity"
	"github.com/frahmantamala/activity-tracker/internal/query"
	"github.com/frahmantamala/activity-tracker/internal/user"
)

type userService interface {
	GetAll() []*user.User
	GetByID(id string) (*user.User, error)
	UpdateProfile(userID string, dto user.UpdateProfileDTO) (*user.User, error)
	PromoteToAdmin(userID string) (*user.User, error)
}

type activityService interface {
	GetAll() []*activity.Activity
	GetByID(actorID, actorRole, id string) (*activity.Activity, error)
	Create(userID string, dto activity.CreateActivityDTO) (*activity.Activity, error)
	Update(actorID, actorRole, id string, dto activity.UpdateActivityDTO) (*activity.Activity, error)
	RemoveImage(actorID, actorRole, id string, field activity.ImageField) (*activity.Activity, error)
	Delete(actorID, actorRole, id string) error
}

type Facade struct {
	mu         sync.RWMutex
	users      userService
	activities activityService
	logger     *slog.Logger

	cachedUsers      []*user.User
	cachedActivities []*activity.Activity
}

func New(users userService, activities activityService, logger *slog.Logger) *Facade {
	f := &Facade{users: users, activities: activities, logger: logger}
	f.Refresh()
	return f
}

// Refresh reloads both mirrors from storage.
func (f *Facade) Refresh() {
	users := f.users.GetAll()
	activities := f.activities.GetAll()

	f.mu.Lock()
	f.cachedUsers = users
	f.cachedActivities = activities
	f.mu.Unlock()

	f.logger.Debug("app state refreshed", "users", len(users), "activities", len(activities))
}

// AllUsers returns a snapshot copy of the user mirror.
func (f *Facade) AllUsers() []*user.User {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]*user.User(nil), f.cachedUsers...)
}

// AllActivities returns a snapshot copy of the activity mirror, newest
// first.
func (f *Facade) AllActivities() []*activity.Activity {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]*activity.Activity(nil), f.cachedActivities...)
}

// UserCreated prepends a user persisted outside the facade (signup).
func (f *Facade) UserCreated(u *user.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cachedUsers = append([]*user.User{u}, f.cachedUsers...)
}

func (f *Facade) replaceUser(u *user.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cached := range f.cachedUsers {
		if cached.ID == u.ID {
			f.cachedUsers[i] = u
			return
		}
	}
	f.cachedUsers = append([]*user.User{u}, f.cachedUsers...)
}

func (f *Facade) prependActivity(a *activity.Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cachedActivities = append([]*activity.Activity{a}, f.cachedActivities...)
}

func (f *Facade) replaceActivity(a *activity.Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cached := range f.cachedActivities {
		if cached.ID == a.ID {
			f.cachedActivities[i] = a
			return
		}
	}
	f.cachedActivities = append([]*activity.Activity{a}, f.cachedActivities...)
}

func (f *Facade) removeActivity(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	remaining := f.cachedActivities[:0]
	for _, cached := range f.cachedActivities {
		if cached.ID != id {
			remaining = append(remaining, cached)
		}
	}
	f.cachedActivities = remaining
}

// Users returns the facade's user-facing view; it satisfies the user
// handler's service interface so profile mutations keep the mirror
// current.
func (f *Facade) Users() *UserView {
	return &UserView{f: f}
}

// Activities returns the activity-facing view for the activity handler.
func (f *Facade) Activities() *ActivityView {
	return &ActivityView{f: f}
}

type UserView struct {
	f *Facade
}

func (v *UserView) GetAll() []*user.User {
	return v.f.AllUsers()
}

func (v *UserView) GetByID(id string) (*user.User, error) {
	return v.f.users.GetByID(id)
}

func (v *UserView) UpdateProfile(userID string, dto user.UpdateProfileDTO) (*user.User, error) {
	updated, err := v.f.users.UpdateProfile(userID, dto)
	if err != nil {
		return nil, err
	}
	v.f.replaceUser(updated)
	return updated, nil
}

func (v *UserView) PromoteToAdmin(userID string) (*user.User, error) {
	promoted, err := v.f.users.PromoteToAdmin(userID)
	if err != nil {
		return nil, err
	}
	v.f.replaceUser(promoted)
	return promoted, nil
}

type ActivityView struct {
	f *Facade
}

// List reads from the mirror; an empty userID does not constrain, which is
// how admins see every record.
func (v *ActivityView) List(userID string, f activity.ListFilters) []*activity.Activity {
	return v.f.FilterActivities(query.Filters{
		UserID:    userID,
		Type:      activity.Type(f.Type),
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	})
}

func (v *ActivityView) GetByID(actorID, actorRole, id string) (*activity.Activity, error) {
	return v.f.activities.GetByID(actorID, actorRole, id)
}

func (v *ActivityView) Create(userID string, dto activity.CreateActivityDTO) (*activity.Activity, error) {
	created, err := v.f.activities.Create(userID, dto)
	if err != nil {
		return nil, err
	}
	v.f.prependActivity(created)
	return created, nil
}

func (v *ActivityView) Update(actorID, actorRole, id string, dto activity.UpdateActivityDTO) (*activity.Activity, error) {
	updated, err := v.f.activities.Update(actorID, actorRole, id, dto)
	if err != nil {
		return nil, err
	}
	v.f.replaceActivity(updated)
	return updated, nil
}

func (v *ActivityView) RemoveImage(actorID, actorRole, id string, field activity.ImageField) (*activity.Activity, error) {
	updated, err := v.f.activities.RemoveImage(actorID, actorRole, id, field)
	if err != nil {
		return nil, err
	}
	v.f.replaceActivity(updated)
	return updated, nil
}

func (v *ActivityView) Delete(actorID, actorRole, id string) error {
	if err := v.f.activities.Delete(actorID, actorRole, id); err != nil {
		return err
	}
	v.f.removeActivity(id)
	return nil
}

// FilterActivities applies the query filters over the mirror.
func (f *Facade) FilterActivities(filters query.Filters) []*activity.Activity {
	return query.Filter(f.AllActivities(), filters)
}

// CountsByType counts the (optionally filtered) mirror per type.
func (f *Facade) CountsByType(filters query.Filters) map[activity.Type]int {
	return query.CountsByType(f.FilterActivities(filters))
}

// RecentActivities returns the newest records for the filters.
func (f *Facade) RecentActivities(filters query.Filters, limit int) []*activity.Activity {
	return query.Recent(f.FilterActivities(filters), limit)
}

// TypeDistribution returns the non-zero per-type counts for the filters.
func (f *Facade) TypeDistribution(filters query.Filters) []query.TypeCount {
	return query.TypeDistribution(f.FilterActivities(filters))
}

// DailyTrend returns the zero-filled per-day counts for the trailing
// window.
func (f *Facade) DailyTrend(filters query.Filters, days int) []query.DatePoint {
	return query.DailyTrend(f.FilterActivities(filters), days)
}

// EmployeeComparison ranks employees by activity count.
func (f *Facade) EmployeeComparison() []query.EmployeeCount {
	return query.EmployeeComparison(f.AllActivities(), f.AllUsers())
}

// EmployeeTypeBreakdown ranks employees with per-type subtotals.
func (f *Facade) EmployeeTypeBreakdown() []query.EmployeeBreakdown {
	return query.EmployeeTypeBreakdown(f.AllActivities(), f.AllUsers())
}
