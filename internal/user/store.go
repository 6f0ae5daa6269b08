package user

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	userDatamodel "github.com/frahmantamala/activity-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/activity-tracker/internal/storage"
)

// Store is the user record store. Every operation reads the whole users
// table, applies the change in memory and writes the table back; uniqueness
// and existence are enforced here because the underlying store has no
// constraints of its own.
type Store struct {
	adapter *storage.Adapter
	logger  *slog.Logger
}

func NewStore(adapter *storage.Adapter, logger *slog.Logger) *Store {
	return &Store{adapter: adapter, logger: logger}
}

func (s *Store) GetAll() []*User {
	return FromDataModelSlice(s.adapter.ReadUsers())
}

func (s *Store) GetByID(id string) (*User, error) {
	for _, record := range s.adapter.ReadUsers() {
		if record.ID == id {
			return FromDataModel(record), nil
		}
	}
	return nil, ErrNotFound
}

// GetByEmail matches case-insensitively; email uniqueness is defined over
// the lowercased address.
func (s *Store) GetByEmail(email string) (*User, error) {
	needle := strings.ToLower(email)
	for _, record := range s.adapter.ReadUsers() {
		if strings.ToLower(record.Email) == needle {
			return FromDataModel(record), nil
		}
	}
	return nil, ErrNotFound
}

// Create assigns the id and creation time, rejects duplicate emails and
// appends the record. Role defaults to employee when unset.
func (s *Store) Create(u *User) error {
	if _, err := s.GetByEmail(u.Email); err == nil {
		return ErrDuplicateEmail
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleEmployee
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	records := s.adapter.ReadUsers()
	records = append(records, ToDataModel(u))
	if err := s.adapter.WriteUsers(records); err != nil {
		return err
	}

	s.logger.Info("user created", "user_id", u.ID, "role", string(u.Role))
	return nil
}

// Update merges the provided fields into the stored record, last write wins
// per field. Returns the updated user.
func (s *Store) Update(id string, update Update) (*User, error) {
	records := s.adapter.ReadUsers()
	idx := -1
	for i := range records {
		if records[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotFound
	}

	applyUserUpdate(&records[idx], update)

	if err := s.adapter.WriteUsers(records); err != nil {
		return nil, err
	}
	return FromDataModel(records[idx]), nil
}

// SetRole is the explicit admin-promotion path; profile merges never touch
// the role.
func (s *Store) SetRole(id string, role Role) (*User, error) {
	records := s.adapter.ReadUsers()
	for i := range records {
		if records[i].ID == id {
			records[i].Role = string(role)
			if err := s.adapter.WriteUsers(records); err != nil {
				return nil, err
			}
			s.logger.Info("user role changed", "user_id", id, "role", string(role))
			return FromDataModel(records[i]), nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) Delete(id string) error {
	records := s.adapter.ReadUsers()
	remaining := make([]userDatamodel.User, 0, len(records))
	for _, record := range records {
		if record.ID != id {
			remaining = append(remaining, record)
		}
	}
	return s.adapter.WriteUsers(remaining)
}

func applyUserUpdate(record *userDatamodel.User, update Update) {
	if update.FirstName != nil {
		record.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		record.LastName = *update.LastName
	}
	if update.Email != nil {
		record.Email = *update.Email
	}
	if update.PhoneNumber != nil {
		record.PhoneNumber = *update.PhoneNumber
	}
	if update.Gender != nil {
		record.Gender = string(*update.Gender)
	}
}
