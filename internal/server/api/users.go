package api

import (
	"net/http"

	"github.com/go-chi/render"

	domain "github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/server/service"
	"github.com/Altair788/AdHub/internal/shared/models"
)

// ListUsers: GET /users?email=&page=&page_size=
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		h.fail(w, r, "list users", err)
		return
	}

	res, err := h.Svc.Accounts.List(r.Context(), principal(r), domain.AccountFilter{Email: r.URL.Query().Get("email")}, page, size)
	if err != nil {
		h.fail(w, r, "list users", err)
		return
	}
	render.JSON(w, r, toPage(h, r, res, toAccount))
}

// GetUser: GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "get user", err)
		return
	}

	acc, err := h.Svc.Accounts.Get(r.Context(), principal(r), id)
	if err != nil {
		h.fail(w, r, "get user", err)
		return
	}
	render.JSON(w, r, toAccount(acc))
}

// Me: профиль текущего пользователя.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	acc, err := h.Svc.Accounts.Get(r.Context(), p, p.ID)
	if err != nil {
		h.fail(w, r, "me", err)
		return
	}
	render.JSON(w, r, toAccount(acc))
}

// UpdateUser: PUT и PATCH /users/{id}. Все поля профиля необязательны,
// поэтому оба метода меняют только присланные поля.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "update user", err)
		return
	}

	var req models.AccountUpdateRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "update user", err)
		return
	}

	acc, err := h.Svc.Accounts.Update(r.Context(), principal(r), id, service.AccountUpdate{
		TgID:      req.TgID,
		TgNick:    req.TgNick,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Country:   req.Country,
		Image:     req.Image,
		Password:  req.Password,
	})
	if err != nil {
		h.fail(w, r, "update user", err)
		return
	}
	render.JSON(w, r, toAccount(acc))
}

// DeleteUser: DELETE /users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "delete user", err)
		return
	}

	if err := h.Svc.Accounts.Delete(r.Context(), principal(r), id); err != nil {
		h.fail(w, r, "delete user", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
