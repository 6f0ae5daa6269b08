package auth

import (
	"errors"
	"log/slog"

	apperrors "github.com/frahmantamala/activity-tracker/internal"
	"github.com/frahmantamala/activity-tracker/internal/session"
	"github.com/frahmantamala/activity-tracker/internal/user"
)

// AuthResult is what a successful signup or login returns.
type AuthResult struct {
	User        *user.User `json:"user"`
	AccessToken string     `json:"accessToken"`
}

type Service struct {
	users         *user.Store
	credentials   *CredentialStore
	sessions      *session.Manager
	tokens        TokenGenerator
	logger        *slog.Logger
	onUserCreated func(*user.User)
}

// OnUserCreated registers a hook invoked after signup persists the user.
// The app-state cache uses it to stay current without re-reading storage.
func (s *Service) OnUserCreated(fn func(*user.User)) {
	s.onUserCreated = fn
}

func NewService(users *user.Store, credentials *CredentialStore, sessions *session.Manager, tokens TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		users:       users,
		credentials: credentials,
		sessions:    sessions,
		tokens:      tokens,
		logger:      logger,
	}
}

// Signup creates the user record and its credential, then logs the new
// user in.
func (s *Service) Signup(dto SignupDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("signup validation failed", "error", err)
		return nil, apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	newUser := &user.User{
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		Email:       dto.Email,
		PhoneNumber: dto.PhoneNumber,
		Gender:      user.Gender(dto.Gender),
		Role:        user.RoleEmployee,
	}
	if err := s.users.Create(newUser); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, err
	}

	hash, err := s.credentials.HashPassword(dto.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}
	if err := s.credentials.Store(newUser.Email, hash); err != nil {
		return nil, err
	}

	if s.onUserCreated != nil {
		s.onUserCreated(newUser)
	}

	return s.startSession(newUser)
}

// Login verifies the credential and starts a session. Unknown email and
// wrong password produce the same error.
func (s *Service) Login(dto LoginDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	if !s.credentials.Verify(dto.Email, dto.Password) {
		s.logger.Warn("login rejected")
		return nil, apperrors.ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		// credential without a user record means broken data, still
		// report invalid credentials outward
		s.logger.Error("credential exists for unknown user", "error", err)
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.startSession(u)
}

func (s *Service) startSession(u *user.User) (*AuthResult, error) {
	if err := s.sessions.Login(u); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue access token", err)
	}

	s.logger.Info("user authenticated", "user_id", u.ID)
	return &AuthResult{User: u, AccessToken: token}, nil
}

func (s *Service) Logout() error {
	return s.sessions.Logout()
}

// ChangePassword verifies the old password before storing the new hash.
func (s *Service) ChangePassword(userID string, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), apperrors.ErrCodeValidationFailed)
	}

	u, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}

	if !s.credentials.Verify(u.Email, dto.OldPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := s.credentials.HashPassword(dto.NewPassword)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}
	if err := s.credentials.Store(u.Email, hash); err != nil {
		return err
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}

// Sessions exposes the session manager to the transport middleware.
func (s *Service) Sessions() *session.Manager {
	return s.sessions
}
