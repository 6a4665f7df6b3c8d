package services

import (
	"context"
	"strings"
	"time"

	"asset-tracker/internal/dto"
	"asset-tracker/internal/entities"
	"asset-tracker/internal/repositories"
	apperrors "asset-tracker/pkg/errors"
	"asset-tracker/pkg/types"
	"asset-tracker/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.UserFilter) ([]dto.UserDTO, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, logger: logger}
}

// UserToDTO скрывает хеш пароля и разворачивает nullable-поля.
func UserToDTO(u *entities.User) dto.UserDTO {
	res := dto.UserDTO{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		IsActive: u.IsActive,
		Email:    u.Email.Ptr(),
		FullName: u.FullName.Ptr(),
	}
	if u.CreatedAt != nil {
		res.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	if u.UpdatedAt != nil {
		res.UpdatedAt = u.UpdatedAt.Format(time.RFC3339)
	}
	return res
}

func nullableString(v *string) null.String {
	s := strings.TrimSpace(utils.SafeDeref(v))
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

func (s *UserService) GetUsers(ctx context.Context, filter types.UserFilter) ([]dto.UserDTO, error) {
	users, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, err
	}
	res := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		res = append(res, UserToDTO(&users[i]))
	}
	return res, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := UserToDTO(user)
	return &res, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	username := strings.TrimSpace(payload.Username)
	exists, err := s.userRepo.UsernameExists(ctx, username, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUsernameTaken
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.userRepo.CreateUser(ctx, &entities.User{
		Username:     username,
		PasswordHash: hash,
		Role:         payload.Role,
		IsActive:     true,
		Email:        nullableString(payload.Email),
		FullName:     nullableString(payload.FullName),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Создан пользователь",
		zap.Uint64("userID", created.ID),
		zap.String("username", created.Username),
		zap.String("by", utils.GetUsernameFromCtx(ctx)),
	)
	res := UserToDTO(created)
	return &res, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Username != nil {
		username := strings.TrimSpace(*payload.Username)
		if username != user.Username {
			exists, err := s.userRepo.UsernameExists(ctx, username, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, apperrors.ErrUsernameTaken
			}
			user.Username = username
		}
	}
	if payload.Role != nil {
		user.Role = *payload.Role
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}
	if payload.Email != nil {
		user.Email = nullableString(payload.Email)
	}
	if payload.FullName != nil {
		user.FullName = nullableString(payload.FullName)
	}

	updated, err := s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	if password := utils.SafeDeref(payload.Password); password != "" {
		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Пользователь обновлён", zap.Uint64("userID", id), zap.String("by", utils.GetUsernameFromCtx(ctx)))
	res := UserToDTO(updated)
	return &res, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	if currentID, err := utils.GetUserIDFromCtx(ctx); err == nil && currentID == id {
		return apperrors.ErrCannotDeleteSelf
	}
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Пользователь удалён", zap.Uint64("userID", id), zap.String("by", utils.GetUsernameFromCtx(ctx)))
	return nil
}
