package activity

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	activityDatamodel "github.com/frahmantamala/activity-tracker/internal/core/datamodel/activity"
	"github.com/frahmantamala/activity-tracker/internal/storage"
)

// Store is the activity record store, whole-table read-modify-write over
// the activities table like the user store.
type Store struct {
	adapter *storage.Adapter
	logger  *slog.Logger
}

func NewStore(adapter *storage.Adapter, logger *slog.Logger) *Store {
	return &Store{adapter: adapter, logger: logger}
}

func (s *Store) GetAll() []*Activity {
	return FromDataModelSlice(s.adapter.ReadActivities())
}

func (s *Store) GetByID(id string) (*Activity, error) {
	for _, record := range s.adapter.ReadActivities() {
		if record.ID == id {
			return FromDataModel(record), nil
		}
	}
	return nil, ErrNotFound
}

// GetByUserID returns the user's activities in storage order.
func (s *Store) GetByUserID(userID string) []*Activity {
	var result []*Activity
	for _, record := range s.adapter.ReadActivities() {
		if record.UserID == userID {
			result = append(result, FromDataModel(record))
		}
	}
	return result
}

// Create assigns the id and both timestamps, then appends the record.
func (s *Store) Create(a *Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	records := s.adapter.ReadActivities()
	records = append(records, ToDataModel(a))
	if err := s.adapter.WriteActivities(records); err != nil {
		return err
	}

	s.logger.Info("activity created", "activity_id", a.ID, "type", string(a.Type), "user_id", a.UserID)
	return nil
}

// Update merges the payload fields into the stored record. Type, owner and
// creation time never change; updatedAt is bumped on every successful
// update, merged fields or not.
func (s *Store) Update(id string, dto UpdateActivityDTO) (*Activity, error) {
	records := s.adapter.ReadActivities()
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

	applyActivityUpdate(&records[idx], dto)
	records[idx].UpdatedAt = time.Now()

	if err := s.adapter.WriteActivities(records); err != nil {
		return nil, err
	}
	return FromDataModel(records[idx]), nil
}

// RemoveImage blanks one image field. Blanking counts as a content change,
// so updatedAt is bumped here too.
func (s *Store) RemoveImage(id string, field ImageField) (*Activity, error) {
	records := s.adapter.ReadActivities()
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

	switch field {
	case ImageReceipt:
		records[idx].ReceiptImage = ""
	case ImageMachineBefore:
		records[idx].MachineImageBefore = ""
	case ImageMachineAfter:
		records[idx].MachineImageAfter = ""
	default:
		return nil, ErrInvalidImage
	}
	records[idx].UpdatedAt = time.Now()

	if err := s.adapter.WriteActivities(records); err != nil {
		return nil, err
	}
	return FromDataModel(records[idx]), nil
}

func (s *Store) Delete(id string) error {
	records := s.adapter.ReadActivities()
	remaining := make([]activityDatamodel.Activity, 0, len(records))
	found := false
	for _, record := range records {
		if record.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, record)
	}
	if !found {
		return ErrNotFound
	}

	if err := s.adapter.WriteActivities(remaining); err != nil {
		return err
	}

	s.logger.Info("activity deleted", "activity_id", id)
	return nil
}

func applyActivityUpdate(record *activityDatamodel.Activity, dto UpdateActivityDTO) {
	if dto.ReceiptImage != nil {
		record.ReceiptImage = *dto.ReceiptImage
	}
	if dto.Description != nil {
		record.Description = *dto.Description
	}
	if dto.Date != nil {
		record.Date = *dto.Date
	}
	if dto.Time != nil {
		record.Time = *dto.Time
	}
	if dto.ServingEmployee != nil {
		record.ServingEmployee = *dto.ServingEmployee
	}
	if dto.BuyerName != nil {
		record.BuyerName = *dto.BuyerName
	}
	if dto.CustomerName != nil {
		record.CustomerName = *dto.CustomerName
	}
	if dto.ServiceDate != nil {
		record.ServiceDate = *dto.ServiceDate
	}
	if dto.ServiceType != nil {
		record.ServiceType = *dto.ServiceType
	}
	if dto.Notes != nil {
		record.Notes = *dto.Notes
	}
	if dto.RawMaterialWeight != nil {
		record.RawMaterialWeight = *dto.RawMaterialWeight
	}
	if dto.WeightUnit != nil {
		record.WeightUnit = *dto.WeightUnit
	}
	if dto.MachineImageBefore != nil {
		record.MachineImageBefore = *dto.MachineImageBefore
	}
	if dto.MachineImageAfter != nil {
		record.MachineImageAfter = *dto.MachineImageAfter
	}
	if dto.Location != nil {
		record.Location = *dto.Location
	}
	if dto.ItemDescription != nil {
		record.ItemDescription = *dto.ItemDescription
	}
	if dto.Quantity != nil {
		record.Quantity = *dto.Quantity
	}
	if dto.Condition != nil {
		record.Condition = *dto.Condition
	}
}
