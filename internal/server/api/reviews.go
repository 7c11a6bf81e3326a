// HTTP-хендлеры отзывов
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	domain "github.com/Altair788/AdHub/internal/server/models"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/models"
)

func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "create review", err)
		return
	}

	rv, err := h.Svc.Reviews.Create(r.Context(), principal(r), domain.Review{
		AdID:   req.Ad,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		h.fail(w, r, "create review", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toReview(rv))
}

// ListReviews: GET /reviews?ad=&page=&page_size=
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	page, size, err := pageParams(r)
	if err != nil {
		h.fail(w, r, "list reviews", err)
		return
	}

	var f domain.ReviewFilter
	if s := r.URL.Query().Get("ad"); s != "" {
		adID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			h.fail(w, r, "list reviews", serr.Invalid("ad", "must be an integer"))
			return
		}
		f.AdID = &adID
	}

	res, err := h.Svc.Reviews.List(r.Context(), principal(r), f, page, size)
	if err != nil {
		h.fail(w, r, "list reviews", err)
		return
	}
	render.JSON(w, r, toPage(h, r, res, toReview))
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "get review", err)
		return
	}

	rv, err := h.Svc.Reviews.Get(r.Context(), principal(r), id)
	if err != nil {
		h.fail(w, r, "get review", err)
		return
	}
	render.JSON(w, r, toReview(rv))
}

// ReplaceReview обрабатывает PUT. text и rating обязательны, ad игнорируется.
func (h *Handler) ReplaceReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "replace review", err)
		return
	}
	h.updateReview(w, r, domain.ReviewPatch{Text: &req.Text, Rating: &req.Rating})
}

func (h *Handler) PatchReview(w http.ResponseWriter, r *http.Request) {
	var req models.ReviewPatchRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, "patch review", err)
		return
	}
	h.updateReview(w, r, domain.ReviewPatch{Text: req.Text, Rating: req.Rating})
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request, patch domain.ReviewPatch) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "update review", err)
		return
	}

	rv, err := h.Svc.Reviews.Update(r.Context(), principal(r), id, patch)
	if err != nil {
		h.fail(w, r, "update review", err)
		return
	}
	render.JSON(w, r, toReview(rv))
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "delete review", err)
		return
	}

	if err := h.Svc.Reviews.Delete(r.Context(), principal(r), id); err != nil {
		h.fail(w, r, "delete review", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
