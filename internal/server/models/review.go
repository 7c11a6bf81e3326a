package models

import "time"

// Review: отзыв к объявлению.
type Review struct {
	ID        int64
	Text      string
	Rating    int
	AdID      int64
	AuthorID  int64
	CreatedAt time.Time
}

type ReviewPatch struct {
	Text   *string
	Rating *int
}

// ReviewFilter: фильтр списка отзывов.
type ReviewFilter struct {
	AdID *int64
}
