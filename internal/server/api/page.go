package api

import (
	"net/http"
	"net/url"
	"strconv"

	domain "github.com/Altair788/AdHub/internal/server/models"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/models"
	"github.com/Altair788/AdHub/internal/shared/utils"
)

// pageParams читает page и page_size из query.
// Без page отдаётся первая страница, нечисловой page считается несуществующей страницей.
func pageParams(r *http.Request) (page, size int, err error) {
	q := r.URL.Query()

	page = 1
	if s := q.Get("page"); s != "" {
		page, err = strconv.Atoi(s)
		if err != nil {
			return 0, 0, serr.ErrInvalidPage
		}
	}
	// некорректный page_size равнозначен размеру по умолчанию
	size, _ = strconv.Atoi(q.Get("page_size"))
	return page, size, nil
}

// toPage собирает ответ со ссылками на соседние страницы.
func toPage[T, U any](h *Handler, r *http.Request, p domain.Page[T], conv func(T) U) models.Page[U] {
	out := models.Page[U]{
		Count:   p.Count,
		Results: make([]U, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		out.Results = append(out.Results, conv(it))
	}
	if p.HasNext() {
		out.Next = h.pageURL(r, p.Request.Page+1)
	}
	if p.HasPrevious() {
		out.Previous = h.pageURL(r, p.Request.Page-1)
	}
	return out
}

// pageURL повторяет текущий запрос с другим номером страницы.
// Для первой страницы параметр page опускается.
func (h *Handler) pageURL(r *http.Request, page int) *string {
	q := r.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
	base := h.publicURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return utils.StrPtr(base + u.String())
}
