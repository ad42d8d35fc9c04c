package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, запуск
	// уже завершенной сессии).
	ErrConflict = errors.New("resource state conflict")

	// ErrCodeExhausted используется, когда не удалось подобрать уникальный
	// код сессии за отведенное число попыток.
	ErrCodeExhausted = errors.New("unable to generate unique session code")
)
