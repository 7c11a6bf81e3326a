// Package models содержит серверные доменные модели AdHub.
package models

import "time"

// Role: роль пользователя.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account: учётная запись пользователя.
//
// RecoveryTokenHash: sha256 от действующего одноразового токена
// (подтверждение почты или сброс пароля), nil если токена нет.
type Account struct {
	ID                int64
	Email             string
	PasswordHash      string
	Role              Role
	IsActive          bool
	RecoveryTokenHash *string
	TgID              *int64
	TgNick            string
	FirstName         string
	LastName          string
	Phone             *string
	Country           string
	Image             *string
	CreatedAt         time.Time
}

// NewAccount: данные для создания аккаунта.
type NewAccount struct {
	Email             string
	PasswordHash      string
	Role              Role
	IsActive          bool
	RecoveryTokenHash *string
	TgID              *int64
	TgNick            string
	FirstName         string
	LastName          string
	Phone             *string
	Country           string
}

// AccountPatch: изменяемые поля профиля. nil: поле не трогаем.
type AccountPatch struct {
	TgID         *int64
	TgNick       *string
	FirstName    *string
	LastName     *string
	Phone        *string // "" сбрасывает телефон в NULL
	Country      *string
	Image        *string // "" сбрасывает картинку в NULL
	PasswordHash *string
}

// AccountFilter: фильтр списка пользователей.
type AccountFilter struct {
	Email string // подстрока, без учёта регистра
}
