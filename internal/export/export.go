// Package export produces and consumes full-state snapshots of the users
// and activities tables.
package export

import (
	"encoding/json"
	"log/slog"
	"time"

	apperrors "github.com/frahmantamala/activity-tracker/internal"
	activityDatamodel "github.com/frahmantamala/activity-tracker/internal/core/datamodel/activity"
	userDatamodel "github.com/frahmantamala/activity-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/activity-tracker/internal/storage"
)

// Document is the snapshot wire shape. ExportDate records when the
// snapshot was taken; import ignores it.
type Document struct {
	Users      []userDatamodel.User         `json:"users"`
	Activities []activityDatamodel.Activity `json:"activities"`
	ExportDate time.Time                    `json:"exportDate"`
}

// envelope mirrors Document with raw payloads so import can distinguish
// "absent" and "not an array" from decodable content.
type envelope struct {
	Users      json.RawMessage `json:"users"`
	Activities json.RawMessage `json:"activities"`
}

type Service struct {
	adapter *storage.Adapter
	logger  *slog.Logger
}

func NewService(adapter *storage.Adapter, logger *slog.Logger) *Service {
	return &Service{adapter: adapter, logger: logger}
}

// Export snapshots both tables. Missing tables export as empty arrays,
// not null.
func (s *Service) Export() *Document {
	users := s.adapter.ReadUsers()
	if users == nil {
		users = []userDatamodel.User{}
	}
	activities := s.adapter.ReadActivities()
	if activities == nil {
		activities = []activityDatamodel.Activity{}
	}

	s.logger.Info("state exported", "users", len(users), "activities", len(activities))
	return &Document{
		Users:      users,
		Activities: activities,
		ExportDate: time.Now(),
	}
}

// Import replaces both tables with the document's content. The document
// must carry users and activities as arrays; anything else fails with
// InvalidFormat before any table is touched.
func (s *Service) Import(data []byte) (*Document, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, apperrors.ErrInvalidFormat
	}
	if !isJSONArray(env.Users) || !isJSONArray(env.Activities) {
		return nil, apperrors.ErrInvalidFormat
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.ErrInvalidFormat
	}

	if err := s.adapter.WriteUsers(doc.Users); err != nil {
		return nil, err
	}
	if err := s.adapter.WriteActivities(doc.Activities); err != nil {
		return nil, err
	}

	s.logger.Info("state imported", "users", len(doc.Users), "activities", len(doc.Activities))
	return &doc, nil
}

func isJSONArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
