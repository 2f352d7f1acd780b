package user

import (
	"errors"
	"strings"
)

// GuestID is the identifier the UI uses for a signed-out session.
const GuestID = "guest"

var ErrInvalidCredentials = errors.New("email and password are required")

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Nickname    string `json:"nickname,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	AccessLevel string `json:"accessLevel,omitempty"`
	IsActive    bool   `json:"isActive"`
	IsVerified  bool   `json:"isVerified"`
	LastLoginAt string `json:"lastLoginAt,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type Follower struct {
	FollowerID        string `json:"followerId"`
	FollowerEmail     string `json:"followerEmail"`
	FollowerNickname  string `json:"followerNickname"`
	FollowerAvatarURL string `json:"followerAvatarUrl,omitempty"`
	FollowedAt        string `json:"followedAt,omitempty"`
}

// AuthRequest represents the credentials sent to the backend.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r AuthRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return ErrInvalidCredentials
	}
	return nil
}

type AuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId"`
	Message       string `json:"message"`
}

// IsGuest reports whether id denotes no signed-in user.
func IsGuest(id string) bool {
	return id == "" || id == GuestID
}
