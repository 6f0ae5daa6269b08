package user

import (
	"errors"
	"regexp"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// UpdateProfileDTO is the request payload for a profile update. Empty
// fields are left unchanged.
type UpdateProfileDTO struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

func (dto UpdateProfileDTO) Validate() error {
	if dto.FirstName != "" && len(dto.FirstName) < 2 {
		return errors.New("first name must be at least 2 characters")
	}
	if dto.LastName != "" && len(dto.LastName) < 2 {
		return errors.New("last name must be at least 2 characters")
	}
	if dto.Email != "" && !emailPattern.MatchString(dto.Email) {
		return errors.New("invalid email address")
	}
	if dto.PhoneNumber != "" && !phonePattern.MatchString(dto.PhoneNumber) {
		return errors.New("invalid phone number")
	}
	if dto.Gender != "" && !ValidGender(Gender(dto.Gender)) {
		return errors.New("gender must be male, female or other")
	}
	return nil
}

// ToUpdate converts the DTO into the explicit field-merge form used by the
// store.
func (dto UpdateProfileDTO) ToUpdate() Update {
	var update Update
	if dto.FirstName != "" {
		update.FirstName = &dto.FirstName
	}
	if dto.LastName != "" {
		update.LastName = &dto.LastName
	}
	if dto.Email != "" {
		update.Email = &dto.Email
	}
	if dto.PhoneNumber != "" {
		update.PhoneNumber = &dto.PhoneNumber
	}
	if dto.Gender != "" {
		gender := Gender(dto.Gender)
		update.Gender = &gender
	}
	return update
}
