package user

import "time"

// User is the persisted record shape stored in the users table.
type User struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Gender      string    `json:"gender"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}
