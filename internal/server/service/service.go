// Package service содержит бизнес-логику приложения (AdHub).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/shared/logger"
)

// Repositories: набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users    UsersRepo
	Sessions SessionsRepo
	Ads      AdsRepo
	Reviews  ReviewsRepo
	Health   HealthRepo
}

// Deps: внешние зависимости, не относящиеся к БД.
type Deps struct {
	Mailer Mailer
	Cache  AdCache
	Log    *logger.HTTPLogger
}

// Services: агрегатор всех сервисов приложения.
type Services struct {
	Auth     *AuthService
	Accounts *AccountsService
	Ads      *AdsService
	Reviews  *ReviewsService
	Health   *HealthService
}

// NewServices собирает все сервисы приложения.
func NewServices(repos Repositories, deps Deps, cfg *config.Config) *Services {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	pager := NewPaginator(cfg.Pagination.PageSize, cfg.Pagination.MaxPageSize)

	return &Services{
		Auth:     NewAuthService(repos.Users, repos.Sessions, deps.Mailer, deps.Log, cfg),
		Accounts: NewAccountsService(repos.Users, deps.Cache, deps.Log, NewHasher(cfg), cfg.Password.MinLength, pager),
		Ads:      NewAdsService(repos.Ads, deps.Cache, deps.Log, pager),
		Reviews:  NewReviewsService(repos.Reviews, pager),
		Health:   NewHealthService(repos.Health),
	}
}

// HealthRepo: минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo: репозиторий учётных записей.
type UsersRepo interface {
	Create(ctx context.Context, in models.NewAccount) (models.Account, error)
	GetByID(ctx context.Context, id int64) (models.Account, error)
	GetByEmail(ctx context.Context, email string) (models.Account, error)
	GetByRecoveryHash(ctx context.Context, tokenHash string) (models.Account, error)
	SetRecoveryHash(ctx context.Context, id int64, tokenHash string) error
	Activate(ctx context.Context, tokenHash string) (models.Account, error)
	ResetPassword(ctx context.Context, id int64, tokenHash, passwordHash string) error
	List(ctx context.Context, f models.AccountFilter, p models.PageRequest) (models.Page[models.Account], error)
	Update(ctx context.Context, id int64, p models.AccountPatch) (models.Account, error)
	Delete(ctx context.Context, id int64) error
	UpsertAdmin(ctx context.Context, email, passwordHash string) (models.Account, error)
}

type SessionsRepo interface {
	Create(ctx context.Context, userID int64, refreshHash string, expiresAt time.Time) (uuid.UUID, error)
	GetByRefreshHash(ctx context.Context, refreshHash string) (models.Session, error)
	RevokeAndReplace(ctx context.Context, oldID, newID uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	PruneForUser(ctx context.Context, userID int64, keep int) error
}

type AdsRepo interface {
	Create(ctx context.Context, in models.Ad) (models.Ad, error)
	GetByID(ctx context.Context, id int64) (models.Ad, error)
	List(ctx context.Context, f models.AdFilter, p models.PageRequest) (models.Page[models.Ad], error)
	Update(ctx context.Context, id int64, p models.AdPatch) (models.Ad, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewsRepo interface {
	Create(ctx context.Context, in models.Review) (models.Review, error)
	GetByID(ctx context.Context, id int64) (models.Review, error)
	List(ctx context.Context, f models.ReviewFilter, p models.PageRequest) (models.Page[models.Review], error)
	Update(ctx context.Context, id int64, p models.ReviewPatch) (models.Review, error)
	Delete(ctx context.Context, id int64) error
}

// Mailer отправляет письма со ссылками подтверждения и сброса.
type Mailer interface {
	SendActivation(ctx context.Context, to, link string) error
	SendPasswordReset(ctx context.Context, to, link string) error
}

// AdCache: кэш карточек объявлений. Ошибки кэша не ломают запрос.
// После InvalidateAd и InvalidateAuthor ключ какое-то время не принимает SetAd.
type AdCache interface {
	GetAd(ctx context.Context, id int64) (models.Ad, bool, error)
	SetAd(ctx context.Context, ad models.Ad) error
	InvalidateAd(ctx context.Context, id int64) error
	InvalidateAuthor(ctx context.Context, authorID int64) error
}
