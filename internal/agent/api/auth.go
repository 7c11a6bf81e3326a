// В этом файле описаны методы клиента для работы с аккаунтом:
// регистрация, подтверждение почты, сброс пароля, вход, обновление токенов
// и профиль текущего пользователя.
package api

import (
	"context"
	"net/url"

	"github.com/Altair788/AdHub/internal/shared/models"
)

// Register выполняет регистрацию пользователя. Аккаунт создаётся неактивным,
// сервер отправляет письмо со ссылкой подтверждения.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	var resp models.Account
	err := c.PostJSON(ctx, "/users/register", req, &resp, "")
	return resp, err
}

// ConfirmEmail активирует аккаунт по токену из письма.
func (c *Client) ConfirmEmail(ctx context.Context, token string) error {
	return c.GetJSON(ctx, "/users/email-confirm/"+url.PathEscape(token), nil, "")
}

// PasswordReset запрашивает письмо со ссылкой сброса пароля.
func (c *Client) PasswordReset(ctx context.Context, email string) error {
	return c.PostJSON(ctx, "/users/password-reset", models.PasswordResetRequest{Email: email}, nil, "")
}

// PasswordResetConfirm устанавливает новый пароль по uid и token из письма.
func (c *Client) PasswordResetConfirm(ctx context.Context, req models.PasswordResetConfirmRequest) error {
	return c.PostJSON(ctx, "/users/password-reset-confirm", req, nil, "")
}

// Login выполняет вход пользователя и получает пару токенов.
func (c *Client) Login(ctx context.Context, email, password string) (models.TokenResponse, error) {
	var resp models.TokenResponse
	err := c.PostJSON(ctx, "/users/login", models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Refresh обновляет пару токенов по refresh токену.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (models.TokenResponse, error) {
	var resp models.TokenResponse
	err := c.PostJSON(ctx, "/users/token/refresh", models.RefreshRequest{RefreshToken: refreshToken}, &resp, "")
	return resp, err
}

// Me запрашивает профиль текущего пользователя.
func (c *Client) Me(ctx context.Context, accessToken string) (models.Account, error) {
	var resp models.Account
	err := c.GetJSON(ctx, "/users/me", &resp, accessToken)
	return resp, err
}

// Health запрашивает /healthz. 503 возвращается как *APIError.
func (c *Client) Health(ctx context.Context) (models.HealthResponse, error) {
	var resp models.HealthResponse
	err := c.GetJSON(ctx, "/healthz", &resp, "")
	return resp, err
}
