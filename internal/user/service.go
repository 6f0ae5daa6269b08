package user

import (
	"log/slog"

	apperrors "github.com/frahmantamala/activity-tracker/internal"
)

// SessionCache is the slice of the session manager the user service needs:
// after a profile update of the logged-in user, the cached current-user
// record has to be refreshed so a reload sees the new profile.
type SessionCache interface {
	CurrentUserID() string
	CacheCurrentUser(u *User) error
}

type Service struct {
	store    *Store
	sessions SessionCache
	logger   *slog.Logger
}

func NewService(store *Store, sessions SessionCache, logger *slog.Logger) *Service {
	return &Service{store: store, sessions: sessions, logger: logger}
}

func (s *Service) GetAll() []*User {
	return s.store.GetAll()
}

func (s *Service) GetByID(id string) (*User, error) {
	return s.store.GetByID(id)
}

// UpdateProfile merges the mutable profile fields. An email change is
// re-checked for uniqueness against every other user before the merge.
func (s *Service) UpdateProfile(userID string, dto UpdateProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("profile validation failed", "error", err, "user_id", userID)
		return nil, apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	if dto.Email != "" {
		if existing, err := s.store.GetByEmail(dto.Email); err == nil && existing.ID != userID {
			s.logger.Warn("profile update rejected: email taken", "user_id", userID)
			return nil, ErrDuplicateEmail
		}
	}

	updated, err := s.store.Update(userID, dto.ToUpdate())
	if err != nil {
		return nil, err
	}

	if s.sessions != nil && s.sessions.CurrentUserID() == userID {
		if err := s.sessions.CacheCurrentUser(updated); err != nil {
			s.logger.Warn("failed to refresh cached current user", "error", err, "user_id", userID)
		}
	}

	s.logger.Info("profile updated", "user_id", userID)
	return updated, nil
}

// PromoteToAdmin is the only path that changes a user's role.
func (s *Service) PromoteToAdmin(userID string) (*User, error) {
	promoted, err := s.store.SetRole(userID, RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user promoted to admin", "user_id", userID)
	return promoted, nil
}
