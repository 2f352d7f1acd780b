package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/core/domain/user"
	"github.com/vjiki/music-ui/internal/core/ports"
)

type AccountService struct {
	users  ports.UserRepository
	logger *logrus.Logger
}

func NewAccountService(users ports.UserRepository, logger *logrus.Logger) *AccountService {
	return &AccountService{users: users, logger: logger}
}

// Authenticate forwards credentials to the backend. Rejected credentials
// are a normal response, not an error.
func (s *AccountService) Authenticate(ctx context.Context, req user.AuthRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	resp, err := s.users.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"email":         req.Email,
			"authenticated": resp.Authenticated,
		}).Info("Authentication attempt")
	}
	return resp, nil
}

func (s *AccountService) Profile(ctx context.Context, userID string) (*user.User, error) {
	if user.IsGuest(userID) {
		return nil, fmt.Errorf("%w: a signed-in user id is required", ErrInvalidArgument)
	}
	return s.users.GetByID(ctx, userID)
}
