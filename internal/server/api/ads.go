// HTTP-хендлеры объявлений
package api

import (
	"net/http"

	"github.com/go-chi/render"

	domain "github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/shared/models"
)

// CreateAd обрабатывает создание объявления.
//
// Ответы:
//   - 201 Created: объявление создано, автор: текущий пользователь;
//   - 400 Bad Request: неверный JSON или невалидные поля;
//   - 401 Unauthorized: запрос без токена.
func (h *Handler) CreateAd(w http.ResponseWriter, r *http.Request) {
	var req models.AdRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "create ad", err)
		return
	}

	ad, err := h.Svc.Ads.Create(r.Context(), principal(r), domain.Ad{
		Title:       req.Title,
		Price:       *req.Price,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		h.fail(w, r, "create ad", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAd(ad))
}

// ListAds: публичный список объявлений, новые первыми.
//
// Query: title (подстрока без учёта регистра), page, page_size.
func (h *Handler) ListAds(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		h.fail(w, r, "list ads", err)
		return
	}

	res, err := h.Svc.Ads.List(r.Context(), domain.AdFilter{Title: r.URL.Query().Get("title")}, page, size)
	if err != nil {
		h.fail(w, r, "list ads", err)
		return
	}
	render.JSON(w, r, toPage(h, r, res, toAd))
}

// GetAd: карточка объявления, только для аутентифицированных.
func (h *Handler) GetAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "get ad", err)
		return
	}

	ad, err := h.Svc.Ads.Get(r.Context(), principal(r), id)
	if err != nil {
		h.fail(w, r, "get ad", err)
		return
	}
	render.JSON(w, r, toAd(ad))
}

// ReplaceAd обрабатывает PUT. Нужны все обязательные поля, незаданные необязательные сбрасываются.
func (h *Handler) ReplaceAd(w http.ResponseWriter, r *http.Request) {
	var req models.AdRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "replace ad", err)
		return
	}

	image := ""
	if req.Image != nil {
		image = *req.Image
	}
	h.updateAd(w, r, domain.AdPatch{
		Title:       &req.Title,
		Price:       req.Price,
		Description: &req.Description,
		Image:       &image,
	})
}

// PatchAd обрабатывает PATCH: меняются только присланные поля.
func (h *Handler) PatchAd(w http.ResponseWriter, r *http.Request) {
	var req models.AdPatchRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "patch ad", err)
		return
	}

	h.updateAd(w, r, domain.AdPatch{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
	})
}

func (h *Handler) updateAd(w http.ResponseWriter, r *http.Request, patch domain.AdPatch) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "update ad", err)
		return
	}

	ad, err := h.Svc.Ads.Update(r.Context(), principal(r), id, patch)
	if err != nil {
		h.fail(w, r, "update ad", err)
		return
	}
	render.JSON(w, r, toAd(ad))
}

// DeleteAd удаляет объявление вместе с отзывами. 204 при успехе.
func (h *Handler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "delete ad", err)
		return
	}

	if err := h.Svc.Ads.Delete(r.Context(), principal(r), id); err != nil {
		h.fail(w, r, "delete ad", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
