package repository

import (
	"context"
	"database/sql"

	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/shared/utils"
)

const adColumns = `id, title, price, description, image, author_id, created_at`

// AdsRepository хранит объявления.
type AdsRepository struct {
	db *sql.DB
}

func NewAdsRepository(db *sql.DB) *AdsRepository {
	return &AdsRepository{db: db}
}

func scanAd(row rowScanner) (models.Ad, error) {
	var (
		ad    models.Ad
		image sql.NullString
	)
	if err := row.Scan(&ad.ID, &ad.Title, &ad.Price, &ad.Description, &image, &ad.AuthorID, &ad.CreatedAt); err != nil {
		return models.Ad{}, err
	}
	ad.Image = utils.PtrIf(image.String, image.Valid)
	return ad, nil
}

// Create сохраняет объявление. id и created_at проставляет БД.
func (r *AdsRepository) Create(ctx context.Context, in models.Ad) (models.Ad, error) {
	ad, err := scanAd(r.db.QueryRowContext(ctx,
		`INSERT INTO ads (title, price, description, image, author_id)
		 VALUES ($1,$2,$3,$4,$5)
		 RETURNING `+adColumns,
		in.Title, in.Price, in.Description, in.Image, in.AuthorID))
	if err != nil {
		return models.Ad{}, mapError("ads.Create", err)
	}
	return ad, nil
}

func (r *AdsRepository) GetByID(ctx context.Context, id int64) (models.Ad, error) {
	ad, err := scanAd(r.db.QueryRowContext(ctx,
		`SELECT `+adColumns+` FROM ads WHERE id=$1`, id))
	if err != nil {
		return models.Ad{}, mapError("ads.GetByID", err)
	}
	return ad, nil
}

// List возвращает страницу объявлений, новые первыми.
// Фильтр по названию: подстрока без учёта регистра.
func (r *AdsRepository) List(ctx context.Context, f models.AdFilter, p models.PageRequest) (models.Page[models.Ad], error) {
	pattern := containsPattern(f.Title)

	var page models.Page[models.Ad]
	if err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM ads WHERE ($1 = '' OR title ILIKE $1 ESCAPE '\')`, pattern,
	).Scan(&page.Count); err != nil {
		return page, mapError("ads.List", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+adColumns+` FROM ads
		  WHERE ($1 = '' OR title ILIKE $1 ESCAPE '\')
		  ORDER BY created_at DESC, id DESC
		  LIMIT $2 OFFSET $3`,
		pattern, p.Size, p.Offset())
	if err != nil {
		return page, mapError("ads.List", err)
	}
	defer rows.Close()

	page.Items = make([]models.Ad, 0, p.Size)
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return page, mapError("ads.List", err)
		}
		page.Items = append(page.Items, ad)
	}
	if err := rows.Err(); err != nil {
		return page, mapError("ads.List", err)
	}
	return page, nil
}

// Update меняет только переданные поля. Автор и created_at не трогаются.
func (r *AdsRepository) Update(ctx context.Context, id int64, p models.AdPatch) (models.Ad, error) {
	ad, err := scanAd(r.db.QueryRowContext(ctx,
		`UPDATE ads SET
		        title       = COALESCE($2, title),
		        price       = COALESCE($3, price),
		        description = COALESCE($4, description),
		        image       = CASE WHEN $5::text IS NULL THEN image ELSE NULLIF($5::text, '') END
		  WHERE id = $1
		 RETURNING `+adColumns,
		id, p.Title, p.Price, p.Description, p.Image))
	if err != nil {
		return models.Ad{}, mapError("ads.Update", err)
	}
	return ad, nil
}

// Delete удаляет объявление вместе с отзывами.
func (r *AdsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ads WHERE id=$1`, id)
	if err != nil {
		return mapError("ads.Delete", err)
	}
	return expectAffected("ads.Delete", res)
}
