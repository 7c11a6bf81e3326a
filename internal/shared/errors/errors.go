// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Авторизован, но прав на объект нет
	ErrForbidden = errors.New("forbidden")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Запрошенная страница за пределами выборки
	ErrInvalidPage = errors.New("invalid page")
	// ожидаемая ошибка (для тестов)
	ErrExpectedError = errors.New("expected error")
)

// восстановление доступа и подтверждение почты
var (
	ErrUnknownEmail      = errors.New("no account with this email")
	ErrInactiveAccount   = errors.New("account is not active")
	ErrAlreadyConfirmed  = errors.New("email already confirmed")
	ErrInvalidIdentifier = errors.New("invalid user identifier")
	ErrInvalidToken      = errors.New("invalid or expired token")
)

// ValidationError: ErrInvalidInput с описанием проблем по полям.
// errors.Is(err, ErrInvalidInput) для неё истинно.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Add запоминает первую ошибку для поля.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Err возвращает nil, если ошибок нет, иначе саму ValidationError.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Invalid: ValidationError для одного поля.
func Invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
