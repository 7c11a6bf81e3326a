package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/server/permission"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/logger"
)

// AdsService: объявления. Карточка объявления читается через кэш,
// изменения и удаление сбрасывают запись в кэше.
type AdsService struct {
	repo  AdsRepo
	cache AdCache
	log   *logger.HTTPLogger
	pager Paginator
}

func NewAdsService(repo AdsRepo, cache AdCache, log *logger.HTTPLogger, pager Paginator) *AdsService {
	if log == nil {
		log = logger.NewNop()
	}
	if cache == nil {
		cache = noCache{}
	}
	return &AdsService{repo: repo, cache: cache, log: log, pager: pager}
}

// Create публикует объявление от имени текущего пользователя.
// Автор из входных данных игнорируется.
func (s *AdsService) Create(ctx context.Context, p permission.Principal, in models.Ad) (models.Ad, error) {
	if err := permission.Check(p, 0, permission.CanCreate); err != nil {
		return models.Ad{}, err
	}

	in.Title = strings.TrimSpace(in.Title)
	var v serr.ValidationError
	checkLength(&v, "title", in.Title, 1, 200)
	if in.Price < 0 {
		v.Add("price", "must be >= 0")
	}
	if err := v.Err(); err != nil {
		return models.Ad{}, err
	}

	in.ID = 0
	in.AuthorID = p.ID
	if in.Image != nil && *in.Image == "" {
		in.Image = nil
	}
	return s.repo.Create(ctx, in)
}

// List доступен без аутентификации. Новые объявления первыми.
func (s *AdsService) List(ctx context.Context, f models.AdFilter, page, size int) (models.Page[models.Ad], error) {
	req, err := s.pager.Request(page, size)
	if err != nil {
		return models.Page[models.Ad]{}, err
	}
	res, err := s.repo.List(ctx, f, req)
	if err != nil {
		return models.Page[models.Ad]{}, err
	}
	return finishPage(res, req)
}

func (s *AdsService) Get(ctx context.Context, p permission.Principal, id int64) (models.Ad, error) {
	if err := permission.Check(p, 0, permission.CanRetrieveAd); err != nil {
		return models.Ad{}, err
	}

	if ad, ok, err := s.cache.GetAd(ctx, id); err != nil {
		s.log.Warn("ad cache get failed", zap.Int64("ad_id", id), zap.Error(err))
	} else if ok {
		return ad, nil
	}

	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Ad{}, err
	}
	if err := s.cache.SetAd(ctx, ad); err != nil {
		s.log.Warn("ad cache set failed", zap.Int64("ad_id", id), zap.Error(err))
	}
	return ad, nil
}

// Update применяет патч; PUT на уровне api заполняет все обязательные поля.
func (s *AdsService) Update(ctx context.Context, p permission.Principal, id int64, patch models.AdPatch) (models.Ad, error) {
	if err := permission.Require(p); err != nil {
		return models.Ad{}, err
	}
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Ad{}, err
	}
	if err := permission.Check(p, ad.AuthorID, permission.CanModify); err != nil {
		return models.Ad{}, err
	}

	var v serr.ValidationError
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		patch.Title = &t
		checkLength(&v, "title", t, 1, 200)
	}
	if patch.Price != nil && *patch.Price < 0 {
		v.Add("price", "must be >= 0")
	}
	if err := v.Err(); err != nil {
		return models.Ad{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return models.Ad{}, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *AdsService) Delete(ctx context.Context, p permission.Principal, id int64) error {
	if err := permission.Require(p); err != nil {
		return err
	}
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := permission.Check(p, ad.AuthorID, permission.CanModify); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *AdsService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.InvalidateAd(ctx, id); err != nil {
		s.log.Warn("ad cache invalidate failed", zap.Int64("ad_id", id), zap.Error(err))
	}
}

type noCache struct{}

func (noCache) GetAd(context.Context, int64) (models.Ad, bool, error) { return models.Ad{}, false, nil }
func (noCache) SetAd(context.Context, models.Ad) error                 { return nil }
func (noCache) InvalidateAd(context.Context, int64) error              { return nil }
func (noCache) InvalidateAuthor(context.Context, int64) error          { return nil }
