package identity

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/momohub/backend/internal/domain/identity"
	"github.com/momohub/backend/internal/domain/shared"
	"github.com/momohub/backend/internal/infrastructure/auth"
	"github.com/momohub/backend/internal/infrastructure/cache"
	"github.com/momohub/backend/internal/infrastructure/config"
	"github.com/momohub/backend/internal/infrastructure/mailer"
	"go.uber.org/zap"
)

// AuthService handles registration, authentication and password reset
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	otpStore   cache.OTPStore
	mailer     mailer.Mailer
	otpConfig  config.OTPConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	otpStore cache.OTPStore,
	m mailer.Mailer,
	otpConfig config.OTPConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		otpStore:   otpStore,
		mailer:     m,
		otpConfig:  otpConfig,
		logger:     logger,
	}
}

// Register creates a customer account
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserInfo, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register user")
	}
	if exists {
		s.logger.Warn("Registration with existing email", zap.String("email", input.Email))
		return nil, shared.NewDomainError("EMAIL_TAKEN", "User already exists")
	}

	user, err := identity.NewUser(input.Username, input.Email, input.Phone, input.Password)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register user")
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	info := NewUserInfo(user)
	return &info, nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("email", input.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  NewUserInfo(user),
	}, nil
}

// RefreshToken issues a fresh token pair from a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Failed to check token invalidation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh token")
	}
	if invalidated {
		return nil, shared.NewDomainError("TOKEN_REVOKED", "Session has been revoked. Please log in again")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", claims.UserID))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  NewUserInfo(user),
	}, nil
}

// Logout revokes the current access token
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	claims, err := s.jwtService.ValidateAccessToken(input.AccessToken)
	if err != nil {
		// an expired token needs no blacklisting
		if err == auth.ErrExpiredToken {
			return nil
		}
		return shared.NewDomainError("TOKEN_INVALID", "Invalid access token")
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// ForgotPassword generates a reset code and mails it to the user.
// For unknown emails it returns success without sending anything, so the
// endpoint cannot be used to probe which addresses are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, input ForgotPasswordInput) error {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Info("Password reset requested for unknown email", zap.String("email", input.Email))
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		s.logger.Error("Failed to generate reset code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to start password reset")
	}

	if err := s.otpStore.Put(ctx, user.Email, code, s.otpConfig.TTL); err != nil {
		s.logger.Error("Failed to store reset code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to start password reset")
	}

	if err := s.mailer.SendPasswordResetCode(user.Email, code); err != nil {
		s.logger.Error("Failed to send reset code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to send reset code")
	}

	s.logger.Info("Password reset code sent", zap.String("user_id", user.ID.String()))
	return nil
}

// VerifyOtp checks a reset code and unlocks the reset step
func (s *AuthService) VerifyOtp(ctx context.Context, input VerifyOtpInput) error {
	ok, err := s.otpStore.Verify(ctx, input.Email, input.Code, s.otpConfig.VerifiedTTL)
	if err != nil {
		s.logger.Error("Failed to verify reset code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify code")
	}
	if !ok {
		return shared.NewDomainError("INVALID_OTP", "Invalid or expired code")
	}
	return nil
}

// ResetPassword replaces the password after a verified reset code
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	verified, err := s.otpStore.ConsumeVerified(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check reset verification", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}
	if !verified {
		return shared.NewDomainError("OTP_NOT_VERIFIED", "Verify the reset code before setting a new password")
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.SetPassword(input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	// revoke existing sessions; the password change should log everyone out
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to revoke sessions after password reset", zap.Error(err))
	}

	s.logger.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}

// generateOTP returns a 4-digit code between 1000 and 9999
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}
