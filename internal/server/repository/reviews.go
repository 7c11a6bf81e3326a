package repository

import (
	"context"
	"database/sql"

	"github.com/Altair788/AdHub/internal/server/models"
)

const reviewColumns = `id, text, rating, ad_id, author_id, created_at`

// ReviewsRepository хранит отзывы к объявлениям.
type ReviewsRepository struct {
	db *sql.DB
}

func NewReviewsRepository(db *sql.DB) *ReviewsRepository {
	return &ReviewsRepository{db: db}
}

func scanReview(row rowScanner) (models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.Text, &rv.Rating, &rv.AdID, &rv.AuthorID, &rv.CreatedAt)
	return rv, err
}

// Create сохраняет отзыв. Несуществующее объявление даёт ErrInvalidInput (FK).
func (r *ReviewsRepository) Create(ctx context.Context, in models.Review) (models.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx,
		`INSERT INTO reviews (text, rating, ad_id, author_id)
		 VALUES ($1,$2,$3,$4)
		 RETURNING `+reviewColumns,
		in.Text, in.Rating, in.AdID, in.AuthorID))
	if err != nil {
		return models.Review{}, mapError("reviews.Create", err)
	}
	return rv, nil
}

func (r *ReviewsRepository) GetByID(ctx context.Context, id int64) (models.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id=$1`, id))
	if err != nil {
		return models.Review{}, mapError("reviews.GetByID", err)
	}
	return rv, nil
}

// List возвращает страницу отзывов, новые первыми; опционально по одному объявлению.
func (r *ReviewsRepository) List(ctx context.Context, f models.ReviewFilter, p models.PageRequest) (models.Page[models.Review], error) {
	var page models.Page[models.Review]
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM reviews WHERE ($1::bigint IS NULL OR ad_id = $1)`, f.AdID,
	).Scan(&page.Count); err != nil {
		return page, mapError("reviews.List", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews
		  WHERE ($1::bigint IS NULL OR ad_id = $1)
		  ORDER BY created_at DESC, id DESC
		  LIMIT $2 OFFSET $3`,
		f.AdID, p.Size, p.Offset())
	if err != nil {
		return page, mapError("reviews.List", err)
	}
	defer rows.Close()

	page.Items = make([]models.Review, 0, p.Size)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return page, mapError("reviews.List", err)
		}
		page.Items = append(page.Items, rv)
	}
	if err := rows.Err(); err != nil {
		return page, mapError("reviews.List", err)
	}
	return page, nil
}

func (r *ReviewsRepository) Update(ctx context.Context, id int64, p models.ReviewPatch) (models.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx,
		`UPDATE reviews SET
		        text   = COALESCE($2, text),
		        rating = COALESCE($3, rating)
		  WHERE id = $1
		 RETURNING `+reviewColumns,
		id, p.Text, p.Rating))
	if err != nil {
		return models.Review{}, mapError("reviews.Update", err)
	}
	return rv, nil
}

func (r *ReviewsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return mapError("reviews.Delete", err)
	}
	return expectAffected("reviews.Delete", res)
}
