package repositories

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/core/domain/user"
	"github.com/vjiki/music-ui/internal/core/ports"
)

// UserRepository reads profiles and authenticates against the primary
// backend.
type UserRepository struct {
	api    ports.APIClient
	logger *logrus.Logger
}

func NewUserRepository(api ports.APIClient, logger *logrus.Logger) *UserRepository {
	return &UserRepository{api: api, logger: logger}
}

// GetByID retrieves a user profile
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*user.User, error) {
	var u user.User
	if err := r.api.GetJSON(ctx, "/api/v1/users/"+url.PathEscape(userID), nil, &u); err != nil {
		if r.logger != nil {
			r.logger.WithField("user_id", userID).WithError(err).Error("api: failed to get user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// Authenticate checks credentials. The password is never logged.
func (r *UserRepository) Authenticate(ctx context.Context, req user.AuthRequest) (*user.AuthResponse, error) {
	var resp user.AuthResponse
	if err := r.api.PostJSON(ctx, "/api/v1/auth/authenticate", req, &resp); err != nil {
		if r.logger != nil {
			r.logger.WithField("email", req.Email).WithError(err).Warn("api: authentication request failed")
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	return &resp, nil
}

type FollowerRepository struct {
	api    ports.APIClient
	logger *logrus.Logger
}

func NewFollowerRepository(api ports.APIClient, logger *logrus.Logger) *FollowerRepository {
	return &FollowerRepository{api: api, logger: logger}
}

func (r *FollowerRepository) ListByUser(ctx context.Context, userID string) ([]user.Follower, error) {
	var out []user.Follower
	if err := r.api.GetJSON(ctx, "/api/v1/followers/"+url.PathEscape(userID), nil, &out); err != nil {
		if r.logger != nil {
			r.logger.WithField("user_id", userID).WithError(err).Error("api: failed to list followers")
		}
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	if out == nil {
		out = []user.Follower{}
	}
	return out, nil
}
