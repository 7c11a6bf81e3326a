// HTTP-хендлеры регистрации, подтверждения почты, сброса пароля, логина и refresh токенов
package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Altair788/AdHub/internal/server/service"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/models"
)

// Register обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: аккаунт создан, письмо со ссылкой подтверждения отправлено;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 409 Conflict: email уже занят;
//   - 500 Internal Server Error: прочие ошибки, в том числе сбой отправки письма.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "register", err)
		return
	}

	acc, err := h.Svc.Auth.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		TgID:      req.TgID,
		TgNick:    req.TgNick,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Country:   req.Country,
	})
	if err != nil {
		h.fail(w, r, "register", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAccount(acc))
}

// ConfirmEmail активирует аккаунт по токену из письма.
//
// Ответы:
//   - 200 OK: почта подтверждена;
//   - 400 Bad Request: почта уже подтверждена;
//   - 404 Not Found: токен неизвестен или уже использован.
func (h *Handler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Svc.Auth.ConfirmEmail(r.Context(), chi.URLParam(r, "token")); err != nil {
		h.fail(w, r, "confirm email", err)
		return
	}
	render.JSON(w, r, models.DetailResponse{Detail: "email confirmed"})
}

// PasswordReset отправляет письмо со ссылкой сброса пароля.
//
// Ответы:
//   - 200 OK: письмо отправлено;
//   - 400 Bad Request: email неизвестен или аккаунт не активирован.
func (h *Handler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "password reset", err)
		return
	}

	if err := h.Svc.Auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.fail(w, r, "password reset", err)
		return
	}
	render.JSON(w, r, models.DetailResponse{Detail: "password reset email sent"})
}

// PasswordResetConfirm устанавливает новый пароль.
//
// uid и token берутся из тела или, если маршрут их содержит, из пути ссылки в письме.
//
// Ответы:
//   - 200 OK: пароль изменён, все refresh-сессии отозваны;
//   - 400 Bad Request: подделанный uid, неверный токен, неактивный аккаунт, слабый пароль.
func (h *Handler) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetConfirmRequest
	if uid := chi.URLParam(r, "uid"); uid != "" {
		req.UID = uid
		req.Token = chi.URLParam(r, "token")
	}
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "password reset confirm", err)
		return
	}

	err := h.Svc.Auth.ConfirmPasswordReset(r.Context(), req.UID, req.Token, req.NewPassword)
	if err != nil {
		if errors.Is(err, serr.ErrInactiveAccount) {
			WriteError(w, r, http.StatusBadRequest, models.ErrorResponse{Error: "must confirm email first"})
			return
		}
		h.fail(w, r, "password reset confirm", err)
		return
	}
	render.JSON(w, r, models.DetailResponse{Detail: "password has been reset"})
}

// Login обрабатывает вход пользователя и выдачу пары токенов.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 401 Unauthorized: неверные учётные данные или аккаунт не активирован;
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "login", err)
		return
	}

	pair, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, serr.ErrInactiveAccount) {
			WriteError(w, r, http.StatusUnauthorized, models.ErrorResponse{Error: serr.ErrInactiveAccount.Error()})
			return
		}
		h.fail(w, r, "login", err)
		return
	}

	render.JSON(w, r, models.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh обрабатывает обновление access-токена по refresh-токену.
//
// Ответы:
//   - 200 OK: успешное обновление токенов;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 401 Unauthorized: refresh токен недействителен/просрочен/отозван;
//   - 500 Internal Server Error: прочие ошибки.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "refresh", err)
		return
	}

	pair, err := h.Svc.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.fail(w, r, "refresh", err)
		return
	}

	render.JSON(w, r, models.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
