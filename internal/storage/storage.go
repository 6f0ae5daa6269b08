// Package storage implements the key-value persistence layer: a small set
// of logical tables, each serialized as one JSON document and replaced
// wholesale on every write. There are no row-level updates and no
// transactions; concurrent writers race at table granularity and the last
// write wins. Callers that need stronger guarantees must serialize above
// this layer.
package storage

import (
	"encoding/json"
	"errors"
	"log/slog"

	apperrors "github.com/frahmantamala/activity-tracker/internal"
	activityDatamodel "github.com/frahmantamala/activity-tracker/internal/core/datamodel/activity"
	sessionDatamodel "github.com/frahmantamala/activity-tracker/internal/core/datamodel/session"
	userDatamodel "github.com/frahmantamala/activity-tracker/internal/core/datamodel/user"
)

// Table names are part of the on-disk format and must not change.
type Table string

const (
	TableUsers       Table = "users"
	TableActivities  Table = "activities"
	TableCurrentUser Table = "currentUser"
	TableSession     Table = "session"
	TableCredentials Table = "credentials"

	// probeTable is the scratch key used by the pre-write availability check.
	probeTable Table = "__storage_test__"
)

// AllTables lists every logical table, in a stable order.
var AllTables = []Table{TableUsers, TableActivities, TableCurrentUser, TableSession, TableCredentials}

// ErrQuotaExceeded is returned by backends when the underlying store is out
// of capacity. The adapter maps it to the user-facing StorageFull error.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Backend is the raw byte-level store beneath the adapter. Get reports
// presence explicitly so a missing table is distinguishable from an empty one.
type Backend interface {
	Get(table Table) (data []byte, ok bool, err error)
	Set(table Table, data []byte) error
	Remove(table Table) error
	Ping() error
}

// SoftLimitBytes is the informational warning threshold for a single table
// payload; browser local storage tops out around 5MB so the product warns
// at 4MB.
const SoftLimitBytes = 4 << 20

// Adapter provides typed access to the logical tables with JSON
// serialization, a pre-write availability probe and tolerant reads.
type Adapter struct {
	backend Backend
	logger  *slog.Logger
}

func NewAdapter(backend Backend, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{backend: backend, logger: logger}
}

// checkAvailable verifies the backend accepts a small write before the real
// payload is attempted, so a full store fails the operation up front instead
// of truncating data mid-write.
func (a *Adapter) checkAvailable() error {
	if err := a.backend.Set(probeTable, []byte("test")); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return apperrors.ErrStorageFull
		}
		return apperrors.ErrStorageUnavailable.WithCause(err)
	}
	if err := a.backend.Remove(probeTable); err != nil {
		return apperrors.ErrStorageUnavailable.WithCause(err)
	}
	return nil
}

func (a *Adapter) write(table Table, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewInternalError("failed to serialize table", err)
	}

	if err := a.checkAvailable(); err != nil {
		return err
	}

	a.logger.Debug("storing table", "table", string(table), "bytes", len(data))
	if len(data) > SoftLimitBytes {
		a.logger.Warn("table payload approaching storage capacity",
			"table", string(table),
			"bytes", len(data),
			"soft_limit", SoftLimitBytes)
	}

	if err := a.backend.Set(table, data); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return apperrors.ErrStorageFull
		}
		return apperrors.ErrStorageUnavailable.WithCause(err)
	}
	return nil
}

// read unmarshals a table into out. Missing or corrupt content leaves out
// untouched and returns false; the caller supplies the documented default.
func (a *Adapter) read(table Table, out interface{}) bool {
	data, ok, err := a.backend.Get(table)
	if err != nil || !ok {
		if err != nil {
			a.logger.Warn("failed to read table, using default", "table", string(table), "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		a.logger.Warn("corrupt table content, using default", "table", string(table), "error", err)
		return false
	}
	return true
}

// ReadUsers returns the users table, or an empty sequence when the table is
// missing or unreadable.
func (a *Adapter) ReadUsers() []userDatamodel.User {
	var users []userDatamodel.User
	if !a.read(TableUsers, &users) || users == nil {
		return []userDatamodel.User{}
	}
	return users
}

func (a *Adapter) WriteUsers(users []userDatamodel.User) error {
	return a.write(TableUsers, users)
}

// ReadActivities returns the activities table, or an empty sequence when the
// table is missing or unreadable.
func (a *Adapter) ReadActivities() []activityDatamodel.Activity {
	var activities []activityDatamodel.Activity
	if !a.read(TableActivities, &activities) || activities == nil {
		return []activityDatamodel.Activity{}
	}
	return activities
}

func (a *Adapter) WriteActivities(activities []activityDatamodel.Activity) error {
	return a.write(TableActivities, activities)
}

// ReadSession returns the session record or nil when absent.
func (a *Adapter) ReadSession() *sessionDatamodel.Session {
	var sess sessionDatamodel.Session
	if !a.read(TableSession, &sess) {
		return nil
	}
	return &sess
}

func (a *Adapter) WriteSession(sess *sessionDatamodel.Session) error {
	return a.write(TableSession, sess)
}

func (a *Adapter) RemoveSession() error {
	return a.backend.Remove(TableSession)
}

// ReadCurrentUser returns the cached logged-in user or nil when absent.
func (a *Adapter) ReadCurrentUser() *userDatamodel.User {
	var u userDatamodel.User
	if !a.read(TableCurrentUser, &u) {
		return nil
	}
	return &u
}

func (a *Adapter) WriteCurrentUser(u *userDatamodel.User) error {
	return a.write(TableCurrentUser, u)
}

func (a *Adapter) RemoveCurrentUser() error {
	return a.backend.Remove(TableCurrentUser)
}

// ReadCredentials returns the credentials table (lowercase email to password
// hash), or an empty mapping when missing or unreadable.
func (a *Adapter) ReadCredentials() map[string]string {
	var creds map[string]string
	if !a.read(TableCredentials, &creds) || creds == nil {
		return map[string]string{}
	}
	return creds
}

func (a *Adapter) WriteCredentials(creds map[string]string) error {
	return a.write(TableCredentials, creds)
}

// ClearAll removes every logical table.
func (a *Adapter) ClearAll() error {
	for _, table := range AllTables {
		if err := a.backend.Remove(table); err != nil {
			return apperrors.ErrStorageUnavailable.WithCause(err)
		}
	}
	return nil
}

// UsageInfo reports how much serialized data each table currently holds.
type UsageInfo struct {
	UsedBytes int64            `json:"usedBytes"`
	Available bool             `json:"available"`
	PerTable  map[string]int64 `json:"perTable"`
}

func (a *Adapter) Usage() UsageInfo {
	info := UsageInfo{Available: true, PerTable: make(map[string]int64)}
	for _, table := range AllTables {
		data, ok, err := a.backend.Get(table)
		if err != nil {
			info.Available = false
			continue
		}
		if ok {
			info.PerTable[string(table)] = int64(len(data))
			info.UsedBytes += int64(len(data))
		}
	}
	return info
}

// Ping reports whether the backend is reachable.
func (a *Adapter) Ping() error {
	return a.backend.Ping()
}
