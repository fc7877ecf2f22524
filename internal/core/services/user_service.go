package services

import (
	"context"
	"errors"

	"harambee-sacco/internal/adapters/persistence/models"
	"harambee-sacco/internal/adapters/persistence/repositories"
	"harambee-sacco/internal/core/domain"

	"gorm.io/gorm"
)

// UserService handles member account management
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID returns one user
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListMembers lists member accounts, newest first
func (s *UserService) ListMembers(ctx context.Context, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.ListMembers(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, total, nil
}

// DeleteMember removes a member account and their entire history.
// Staff and admin accounts cannot be deleted this way.
func (s *UserService) DeleteMember(ctx context.Context, id uint) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsStaff() {
		return domain.ErrUnauthorized
	}
	return s.userRepo.Delete(ctx, id)
}
