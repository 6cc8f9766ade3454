package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/identity"
)

// RegisterInput contains the data needed to create an account
type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
}

// LoginInput contains credentials for authentication
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains tokens and user info after successful authentication
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput identifies the session being closed
type LogoutInput struct {
	AccessToken string
}

// ForgotPasswordInput starts a password reset
type ForgotPasswordInput struct {
	Email string
}

// VerifyOtpInput checks a password reset code
type VerifyOtpInput struct {
	Email string
	Code  string
}

// ResetPasswordInput completes a password reset
type ResetPasswordInput struct {
	Email       string
	NewPassword string
}

// UserInfo is the public view of a user
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserInfo builds a UserInfo from the domain entity
func NewUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
