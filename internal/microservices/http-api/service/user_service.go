package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"webtoonhub/internal/microservices/http-api/dto"
	"webtoonhub/internal/microservices/http-api/models"
	"webtoonhub/internal/microservices/http-api/repository"
	"webtoonhub/internal/middleware/auth"

	"gorm.io/gorm"
)

type UserService interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, actorID, targetID string, req dto.UpdateUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update edits the actor's own profile; username and email stay unique.
func (s *userService) Update(ctx context.Context, actorID, targetID string, req dto.UpdateUserRequest) (*models.User, error) {
	if actorID != targetID {
		return nil, ErrForbidden
	}
	user, err := s.Get(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username != user.Username {
			if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
				return nil, ErrNameInUse
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Username = username
		}
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
				return nil, ErrEmailInUse
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}

	if req.Bio != nil {
		user.Bio = req.Bio
	}

	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
