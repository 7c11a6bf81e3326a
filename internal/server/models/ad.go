package models

import "time"

// Ad: объявление. Автор и дата создания не меняются после создания.
type Ad struct {
	ID          int64
	Title       string
	Price       int64
	Description string
	Image       *string
	AuthorID    int64
	CreatedAt   time.Time
}

// AdPatch: изменяемые поля объявления. nil: поле не трогаем.
type AdPatch struct {
	Title       *string
	Price       *int64
	Description *string
	Image       *string // "" сбрасывает картинку в NULL
}

// AdFilter: фильтр списка объявлений.
type AdFilter struct {
	Title string // подстрока в названии, без учёта регистра
}
