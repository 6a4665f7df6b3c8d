// Файл: internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"asset-tracker/internal/dto"
	"asset-tracker/internal/entities"
	"asset-tracker/internal/repositories"
	apperrors "asset-tracker/pkg/errors"
	"asset-tracker/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error)
	GetUserByID(ctx context.Context, userID uint64) (*entities.User, error)
	ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error
}

type AuthService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) AuthServiceInterface {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login не различает "нет пользователя" и "неверный пароль", чтобы не раскрывать логины.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error) {
	username := strings.TrimSpace(payload.Username)
	logger := s.logger.With(zap.String("username", username))

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Warn("Попытка входа с несуществующим логином")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(user.PasswordHash, payload.Password); err != nil {
		logger.Warn("Неверный пароль при входе")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Warn("Вход в отключённую учётную запись")
		return nil, apperrors.ErrUserDisabled
	}

	logger.Info("Пользователь вошёл в систему", zap.Uint64("userID", user.ID))
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uint64) (*entities.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error {
	if payload.NewPassword != payload.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := utils.ComparePasswords(user.PasswordHash, payload.OldPassword); err != nil {
		return apperrors.ErrWrongOldPassword
	}

	hash, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info("Пароль изменён", zap.Uint64("userID", userID))
	return nil
}
