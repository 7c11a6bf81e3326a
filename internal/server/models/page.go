package models

// PageRequest: запрошенная страница списка, нумерация с 1.
type PageRequest struct {
	Page int
	Size int
}

// Offset: смещение первой записи страницы.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// Page: одна страница результатов и общее число записей под фильтром.
// Request заполняет сервисный слой: по нему api строит ссылки next/previous.
type Page[T any] struct {
	Items   []T
	Count   int
	Request PageRequest
}

// HasNext сообщает, есть ли записи после этой страницы.
func (p Page[T]) HasNext() bool {
	return p.Request.Page*p.Request.Size < p.Count
}

func (p Page[T]) HasPrevious() bool {
	return p.Request.Page > 1
}
