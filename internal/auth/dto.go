package auth

import (
	"errors"
	"regexp"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

type SignupDTO struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Gender          string `json:"gender"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (dto SignupDTO) Validate() error {
	if len(dto.FirstName) < 2 {
		return errors.New("first name must be at least 2 characters")
	}
	if len(dto.LastName) < 2 {
		return errors.New("last name must be at least 2 characters")
	}
	if !emailPattern.MatchString(dto.Email) {
		return errors.New("invalid email address")
	}
	if dto.PhoneNumber != "" && !phonePattern.MatchString(dto.PhoneNumber) {
		return errors.New("invalid phone number")
	}
	if dto.Gender != "male" && dto.Gender != "female" && dto.Gender != "other" {
		return errors.New("gender must be male, female or other")
	}
	if err := validatePassword(dto.Password); err != nil {
		return err
	}
	if dto.Password != dto.ConfirmPassword {
		return errors.New("passwords do not match")
	}
	return nil
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if dto.Email == "" || dto.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

type ChangePasswordDTO struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (dto ChangePasswordDTO) Validate() error {
	if dto.OldPassword == "" {
		return errors.New("old password is required")
	}
	return validatePassword(dto.NewPassword)
}

// validatePassword enforces the minimum strength rules: at least 8
// characters with an uppercase letter, a lowercase letter and a digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain an uppercase letter, a lowercase letter and a digit")
	}
	return nil
}
