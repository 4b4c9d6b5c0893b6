package service

import (
	"log/slog"

	"github.com/daily-journal/backend-go/internal/database/models"
	"github.com/daily-journal/backend-go/internal/database/repository"
)

// UserService defines the interface for user business logic
type UserService interface {
	GetProfile(userID uint) (*models.User, error)
	ListUsers() ([]models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repository.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		s.logger.Error("❌ [UserService] Failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}
