package utils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch - пароль не совпадает с сохранённым хешем пользователя.
var ErrPasswordMismatch = errors.New("неверный пароль пользователя")

// HashPassword хеширует пароль учётной записи перед сохранением в таблицу users.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("не удалось захешировать пароль учётной записи: %w", err)
	}
	return string(hash), nil
}

// ComparePasswords сверяет пароль при входе и смене пароля.
func ComparePasswords(passwordHash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// RequestValidator подключает validator к echo.Echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

func NewValidator(v *validator.Validate) *RequestValidator {
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(payload interface{}) error {
	return rv.validate.Struct(payload)
}
