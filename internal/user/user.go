package user

import (
	"errors"
	"strings"
	"time"

	userDatamodel "github.com/frahmantamala/activity-tracker/internal/core/datamodel/user"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func ValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

type User struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Gender      Gender    `json:"gender"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Update carries the mutable profile fields; nil means "leave unchanged".
// ID, role and creation time are never touched by a profile merge.
type Update struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	Gender      *Gender
}

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("an account with this email already exists")
)

func ToDataModel(u *User) userDatamodel.User {
	return userDatamodel.User{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Gender:      string(u.Gender),
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}

func FromDataModel(u userDatamodel.User) *User {
	return &User{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Gender:      Gender(u.Gender),
		Role:        Role(u.Role),
		CreatedAt:   u.CreatedAt,
	}
}

func FromDataModelSlice(users []userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i := range users {
		result[i] = FromDataModel(users[i])
	}
	return result
}
