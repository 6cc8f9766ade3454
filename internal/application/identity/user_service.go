package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/identity"
	"github.com/momohub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles profile and admin user management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns the public view of one user
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := NewUserInfo(user)
	return &info, nil
}

// ListUsers returns all users except the requesting admin
func (s *UserService) ListUsers(ctx context.Context, requesterID uuid.UUID, filter shared.Filter) ([]UserInfo, error) {
	users, err := s.userRepo.FindAllExcept(ctx, requesterID, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}

	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = NewUserInfo(&users[i])
	}
	return infos, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, requesterID, userID uuid.UUID) error {
	if requesterID == userID {
		return shared.NewDomainError("SELF_DELETE", "You cannot delete your own account")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("User deleted",
		zap.String("user_id", userID.String()),
		zap.String("deleted_by", requesterID.String()))
	return nil
}
