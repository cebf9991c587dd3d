package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/cloudlibrary/cloudlib/internal/domain"
)

// Service validates form input and hands it to the auth provider.
// Passwords are never logged.
type Service struct {
	provider domain.Authenticator
	logger   *slog.Logger
}

// NewService creates a new auth service
func NewService(provider domain.Authenticator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, logger: logger}
}

// Login signs a user in
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := validateEmail(creds.Email); err != nil {
		return domain.User{}, err
	}
	if creds.Password == "" {
		return domain.User{}, fmt.Errorf("password is required")
	}

	user, err := s.provider.Login(ctx, creds)
	if err != nil {
		s.logger.Warn("login failed", "email", creds.Email, "error", err)
		return domain.User{}, err
	}
	s.logger.Info("login succeeded", "email", creds.Email)
	return user, nil
}

// Register creates an account and signs it in
func (s *Service) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.Name == "" {
		return domain.User{}, fmt.Errorf("name is required")
	}
	if err := validateEmail(reg.Email); err != nil {
		return domain.User{}, err
	}
	if len(reg.Password) < 6 {
		return domain.User{}, fmt.Errorf("password must be at least 6 characters")
	}

	user, err := s.provider.Register(ctx, reg)
	if err != nil {
		s.logger.Warn("registration failed", "email", reg.Email, "error", err)
		return domain.User{}, err
	}
	s.logger.Info("registration succeeded", "email", reg.Email)
	return user, nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}
