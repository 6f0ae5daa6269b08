package session

// Session is the single-slot record stored in the session table.
// Role and Email are denormalized from the user at login time;
// LastActivity is unix milliseconds.
type Session struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	LastActivity int64  `json:"lastActivity"`
}
