package activity

import (
	"log/slog"

	apperrors "github.com/frahmantamala/activity-tracker/internal"
)

const roleAdmin = "admin"

type Service struct {
	store  *Store
	logger *slog.Logger
}

func NewService(store *Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func (s *Service) GetAll() []*Activity {
	return s.store.GetAll()
}

// GetByID enforces visibility: employees see only their own records,
// admins see everything.
func (s *Service) GetByID(actorID, actorRole, id string) (*Activity, error) {
	a, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a.UserID != actorID && actorRole != roleAdmin {
		return nil, apperrors.ErrAdminOnly
	}
	return a, nil
}

func (s *Service) Create(userID string, dto CreateActivityDTO) (*Activity, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("activity validation failed", "error", err, "type", dto.Type, "user_id", userID)
		if err == ErrInvalidType {
			return nil, apperrors.NewValidationError("unknown activity type", apperrors.ErrCodeValidationFailed)
		}
		return nil, apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	a := dto.ToActivity(userID)
	if err := s.store.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update merges payload fields into an existing record. Only the owner or
// an admin may touch a record.
func (s *Service) Update(actorID, actorRole, id string, dto UpdateActivityDTO) (*Activity, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("activity update validation failed", "error", err, "activity_id", id)
		return nil, apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	if err := s.authorize(actorID, actorRole, id); err != nil {
		return nil, err
	}
	return s.store.Update(id, dto)
}

func (s *Service) RemoveImage(actorID, actorRole, id string, field ImageField) (*Activity, error) {
	if err := s.authorize(actorID, actorRole, id); err != nil {
		return nil, err
	}
	return s.store.RemoveImage(id, field)
}

func (s *Service) Delete(actorID, actorRole, id string) error {
	if err := s.authorize(actorID, actorRole, id); err != nil {
		return err
	}
	return s.store.Delete(id)
}

func (s *Service) authorize(actorID, actorRole, id string) error {
	a, err := s.store.GetByID(id)
	if err != nil {
		return err
	}
	if a.UserID != actorID && actorRole != roleAdmin {
		s.logger.Warn("activity access denied", "activity_id", id, "actor_id", actorID)
		return apperrors.ErrAdminOnly
	}
	return nil
}
