package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT и сессия
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия сессии истёк")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("сессия отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверное имя пользователя или пароль")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ только для администратора")
	ErrUserDisabled       = fmt.Errorf("учётная запись отключена")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound       = fmt.Errorf("запись не найдена")
	ErrBadRequest     = fmt.Errorf("неверный запрос")
	ErrInternalServer = fmt.Errorf("внутренняя ошибка сервера")

	// Пользователи
	ErrUserNotFound     = fmt.Errorf("пользователь не найден: %w", ErrNotFound)
	ErrUsernameTaken    = fmt.Errorf("имя пользователя уже занято")
	ErrPasswordMismatch = fmt.Errorf("новый пароль и подтверждение не совпадают")
	ErrWrongOldPassword = fmt.Errorf("старый пароль указан неверно")
	ErrCannotDeleteSelf = fmt.Errorf("нельзя удалить собственную учётную запись")

	// Активы и справочники
	ErrAssetNotFound      = fmt.Errorf("актив не найден: %w", ErrNotFound)
	ErrColumnMissing      = fmt.Errorf("в листе отсутствует нужная колонка")
	ErrReferenceCodeTaken = fmt.Errorf("код справочника уже используется")
	ErrAlreadyDisposed    = fmt.Errorf("актив уже списан")
	ErrSameLocation       = fmt.Errorf("актив уже находится в этом помещении")
)

// HttpError несёт HTTP-статус и сообщение для клиента вместе с исходной ошибкой.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, nil, nil)
}

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
