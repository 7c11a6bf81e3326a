package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/server/permission"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
)

// ReviewsService: отзывы к объявлениям.
// Отзыв видят только его автор и администратор.
type ReviewsService struct {
	repo  ReviewsRepo
	pager Paginator
}

func NewReviewsService(repo ReviewsRepo, pager Paginator) *ReviewsService {
	return &ReviewsService{repo: repo, pager: pager}
}

func checkRating(v *serr.ValidationError, rating int) {
	if rating < 1 || rating > 5 {
		v.Add("rating", "must be between 1 and 5")
	}
}

func (s *ReviewsService) Create(ctx context.Context, p permission.Principal, in models.Review) (models.Review, error) {
	if err := permission.Check(p, 0, permission.CanCreate); err != nil {
		return models.Review{}, err
	}

	in.Text = strings.TrimSpace(in.Text)
	var v serr.ValidationError
	checkLength(&v, "text", in.Text, 1, 2000)
	checkRating(&v, in.Rating)
	if in.AdID <= 0 {
		v.Add("ad", "required")
	}
	if err := v.Err(); err != nil {
		return models.Review{}, err
	}

	in.ID = 0
	in.AuthorID = p.ID
	rv, err := s.repo.Create(ctx, in)
	if err != nil {
		// объявление не существует
		if errors.Is(err, serr.ErrInvalidInput) {
			return models.Review{}, serr.Invalid("ad", "ad does not exist")
		}
		return models.Review{}, err
	}
	return rv, nil
}

func (s *ReviewsService) List(ctx context.Context, p permission.Principal, f models.ReviewFilter, page, size int) (models.Page[models.Review], error) {
	if err := permission.Require(p); err != nil {
		return models.Page[models.Review]{}, err
	}
	req, err := s.pager.Request(page, size)
	if err != nil {
		return models.Page[models.Review]{}, err
	}
	res, err := s.repo.List(ctx, f, req)
	if err != nil {
		return models.Page[models.Review]{}, err
	}
	return finishPage(res, req)
}

func (s *ReviewsService) Get(ctx context.Context, p permission.Principal, id int64) (models.Review, error) {
	if err := permission.Require(p); err != nil {
		return models.Review{}, err
	}
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Review{}, err
	}
	if err := permission.Check(p, rv.AuthorID, permission.CanRetrieveReview); err != nil {
		return models.Review{}, err
	}
	return rv, nil
}

func (s *ReviewsService) Update(ctx context.Context, p permission.Principal, id int64, patch models.ReviewPatch) (models.Review, error) {
	if err := permission.Require(p); err != nil {
		return models.Review{}, err
	}
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Review{}, err
	}
	if err := permission.Check(p, rv.AuthorID, permission.CanModify); err != nil {
		return models.Review{}, err
	}

	var v serr.ValidationError
	if patch.Text != nil {
		t := strings.TrimSpace(*patch.Text)
		patch.Text = &t
		checkLength(&v, "text", t, 1, 2000)
	}
	if patch.Rating != nil {
		checkRating(&v, *patch.Rating)
	}
	if err := v.Err(); err != nil {
		return models.Review{}, err
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *ReviewsService) Delete(ctx context.Context, p permission.Principal, id int64) error {
	if err := permission.Require(p); err != nil {
		return err
	}
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := permission.Check(p, rv.AuthorID, permission.CanModify); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
