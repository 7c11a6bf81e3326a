package service

import (
	"math"

	"github.com/Altair788/AdHub/internal/server/models"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
)

// Paginator переводит page/page_size из запроса в PageRequest.
type Paginator struct {
	size int
	max  int
}

func NewPaginator(size, max int) Paginator {
	if size <= 0 {
		size = 4
	}
	if max < size {
		max = size
	}
	return Paginator{size: size, max: max}
}

// Request нормализует запрошенную страницу. Номер меньше 1 или такой, что
// page*size не помещается в int, даёт ErrInvalidPage. size <= 0 заменяется
// размером по умолчанию, больше максимального обрезается.
func (p Paginator) Request(page, size int) (models.PageRequest, error) {
	if page < 1 {
		return models.PageRequest{}, serr.ErrInvalidPage
	}
	if size <= 0 {
		size = p.size
	}
	if size > p.max {
		size = p.max
	}
	if page > math.MaxInt/size {
		return models.PageRequest{}, serr.ErrInvalidPage
	}
	return models.PageRequest{Page: page, Size: size}, nil
}

// finishPage проверяет, что страница существует, и запоминает запрос.
// Первая страница существует всегда, даже пустая.
func finishPage[T any](page models.Page[T], req models.PageRequest) (models.Page[T], error) {
	if req.Page > 1 && req.Offset() >= page.Count {
		return models.Page[T]{}, serr.ErrInvalidPage
	}
	page.Request = req
	return page, nil
}
