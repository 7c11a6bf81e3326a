// Package models содержит модели HTTP API AdHub, общие для сервера и клиента.
package models

import "time"

// ErrorResponse: тело ответа с ошибкой.
//
// Fields заполняется только для ошибок валидации: имя поля -> описание.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Page: страница списка.
//
// Next и Previous: абсолютные ссылки на соседние страницы или null.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// RegisterRequest: запрос регистрации.
//
// Используется в:
//
//	POST /users/register
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email,max=254"`
	Password  string  `json:"password" validate:"required,min=8"`
	TgID      *int64  `json:"tg_id,omitempty" validate:"omitempty,min=0"`
	TgNick    string  `json:"tg_nick,omitempty" validate:"max=50"`
	FirstName string  `json:"first_name,omitempty" validate:"max=150"`
	LastName  string  `json:"last_name,omitempty" validate:"max=150"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=35"`
	Country   string  `json:"country,omitempty" validate:"max=50"`
}

// LoginRequest: запрос логина.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest: запрос обновления пары токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse: пара токенов после логина или refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// PasswordResetRequest: запрос письма для сброса пароля.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirmRequest: установка нового пароля по ссылке из письма.
type PasswordResetConfirmRequest struct {
	UID         string `json:"uid" validate:"required"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// DetailResponse: ответ без данных, только сообщение.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Account: профиль пользователя. Пароль и токены наружу не отдаются.
type Account struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	TgID      *int64    `json:"tg_id"`
	TgNick    string    `json:"tg_nick"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	Phone     *string   `json:"phone"`
	Country   string    `json:"country"`
	Image     *string   `json:"image"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountUpdateRequest: изменение профиля (PUT и PATCH).
// Пустая строка в phone или image сбрасывает значение.
type AccountUpdateRequest struct {
	TgID      *int64  `json:"tg_id,omitempty" validate:"omitempty,min=0"`
	TgNick    *string `json:"tg_nick,omitempty" validate:"omitempty,max=50"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=35"`
	Country   *string `json:"country,omitempty" validate:"omitempty,max=50"`
	Image     *string `json:"image,omitempty"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// Ad: объявление.
type Ad struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	Author      int64     `json:"author"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AdRequest: создание объявления и полное обновление (PUT).
// Поле author, если клиент его пришлёт, игнорируется.
type AdRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Price       *int64  `json:"price" validate:"required,min=0"`
	Description string  `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// AdPatchRequest: частичное обновление объявления (PATCH).
type AdPatchRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,min=0"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Review: отзыв к объявлению.
type Review struct {
	ID        int64     `json:"id"`
	Ad        int64     `json:"ad"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	Author    int64     `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewRequest: создание отзыва и полное обновление (PUT).
// При PUT поле ad игнорируется: отзыв не переносится на другое объявление.
type ReviewRequest struct {
	Ad     int64  `json:"ad" validate:"omitempty,min=1"`
	Text   string `json:"text" validate:"required,max=2000"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

// ReviewPatchRequest: частичное обновление отзыва (PATCH).
type ReviewPatchRequest struct {
	Text   *string `json:"text,omitempty" validate:"omitempty,min=1,max=2000"`
	Rating *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// HealthResponse: ответ /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
