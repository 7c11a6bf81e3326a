package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Altair788/AdHub/internal/shared/models"
)

// ListReviews возвращает страницу отзывов. adID 0: отзывы ко всем объявлениям.
func (c *Client) ListReviews(ctx context.Context, adID int64, page int, accessToken string) (models.Page[models.Review], error) {
	q := url.Values{}
	if adID > 0 {
		q.Set("ad", strconv.FormatInt(adID, 10))
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}

	path := "/reviews"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp models.Page[models.Review]
	err := c.GetJSON(ctx, path, &resp, accessToken)
	return resp, err
}

func (c *Client) CreateReview(ctx context.Context, req models.ReviewRequest, accessToken string) (models.Review, error) {
	var resp models.Review
	err := c.PostJSON(ctx, "/reviews", req, &resp, accessToken)
	return resp, err
}

func (c *Client) DeleteReview(ctx context.Context, id int64, accessToken string) error {
	return c.DeleteJSON(ctx, "/reviews/"+strconv.FormatInt(id, 10), accessToken)
}
