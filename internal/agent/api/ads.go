package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Altair788/AdHub/internal/shared/models"
)

// ListAds возвращает страницу объявлений. title: фильтр по названию, page 0: первая страница.
func (c *Client) ListAds(ctx context.Context, title string, page int, accessToken string) (models.Page[models.Ad], error) {
	q := url.Values{}
	if title != "" {
		q.Set("title", title)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}

	path := "/ads"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp models.Page[models.Ad]
	err := c.GetJSON(ctx, path, &resp, accessToken)
	return resp, err
}

func (c *Client) GetAd(ctx context.Context, id int64, accessToken string) (models.Ad, error) {
	var resp models.Ad
	err := c.GetJSON(ctx, "/ads/"+strconv.FormatInt(id, 10), &resp, accessToken)
	return resp, err
}

func (c *Client) CreateAd(ctx context.Context, req models.AdRequest, accessToken string) (models.Ad, error) {
	var resp models.Ad
	err := c.PostJSON(ctx, "/ads", req, &resp, accessToken)
	return resp, err
}

// UpdateAd меняет только переданные поля (PATCH).
func (c *Client) UpdateAd(ctx context.Context, id int64, req models.AdPatchRequest, accessToken string) (models.Ad, error) {
	var resp models.Ad
	err := c.PatchJSON(ctx, "/ads/"+strconv.FormatInt(id, 10), req, &resp, accessToken)
	return resp, err
}

func (c *Client) DeleteAd(ctx context.Context, id int64, accessToken string) error {
	return c.DeleteJSON(ctx, "/ads/"+strconv.FormatInt(id, 10), accessToken)
}
