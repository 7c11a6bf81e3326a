package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Altair788/AdHub/internal/server/crypto"
	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/server/permission"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/logger"
)

// AccountsService: просмотр и редактирование профилей.
// Менять профиль может только сам пользователь или администратор.
type AccountsService struct {
	users       UsersRepo
	cache       AdCache
	log         *logger.HTTPLogger
	hasher      crypto.PasswordHasher
	minPassword int
	pager       Paginator
}

// AccountUpdate: изменяемые поля профиля. nil: поле не трогаем.
type AccountUpdate struct {
	TgID      *int64
	TgNick    *string
	FirstName *string
	LastName  *string
	Phone     *string
	Country   *string
	Image     *string
	Password  *string
}

func NewAccountsService(users UsersRepo, cache AdCache, log *logger.HTTPLogger, hasher crypto.PasswordHasher, minPassword int, pager Paginator) *AccountsService {
	if log == nil {
		log = logger.NewNop()
	}
	if cache == nil {
		cache = noCache{}
	}
	return &AccountsService{users: users, cache: cache, log: log, hasher: hasher, minPassword: minPassword, pager: pager}
}

// Principal загружает актуальную роль пользователя для middleware.
// Удалённый или неактивный аккаунт: ErrUnauthorized.
func (s *AccountsService) Principal(ctx context.Context, userID int64) (permission.Principal, error) {
	acc, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return permission.Anonymous, serr.ErrUnauthorized
		}
		return permission.Anonymous, err
	}
	if !acc.IsActive {
		return permission.Anonymous, serr.ErrUnauthorized
	}
	return permission.Principal{ID: acc.ID, Role: acc.Role}, nil
}

func (s *AccountsService) List(ctx context.Context, p permission.Principal, f models.AccountFilter, page, size int) (models.Page[models.Account], error) {
	if err := permission.Require(p); err != nil {
		return models.Page[models.Account]{}, err
	}
	req, err := s.pager.Request(page, size)
	if err != nil {
		return models.Page[models.Account]{}, err
	}
	res, err := s.users.List(ctx, f, req)
	if err != nil {
		return models.Page[models.Account]{}, err
	}
	return finishPage(res, req)
}

func (s *AccountsService) Get(ctx context.Context, p permission.Principal, id int64) (models.Account, error) {
	if err := permission.Require(p); err != nil {
		return models.Account{}, err
	}
	return s.users.GetByID(ctx, id)
}

// Update меняет профиль. Для профиля «автор»: сам пользователь.
func (s *AccountsService) Update(ctx context.Context, p permission.Principal, id int64, in AccountUpdate) (models.Account, error) {
	if err := permission.Require(p); err != nil {
		return models.Account{}, err
	}
	acc, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.Account{}, err
	}
	if err := permission.Check(p, acc.ID, permission.CanModify); err != nil {
		return models.Account{}, err
	}

	var v serr.ValidationError
	checkProfile(&v, in.TgID, in.TgNick, in.FirstName, in.LastName, in.Phone, in.Country)
	if in.Password != nil {
		checkPassword(&v, "password", *in.Password, s.minPassword)
	}
	if err := v.Err(); err != nil {
		return models.Account{}, err
	}

	patch := models.AccountPatch{
		TgID:      in.TgID,
		TgNick:    in.TgNick,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Country:   in.Country,
		Image:     in.Image,
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return models.Account{}, fmt.Errorf("hash password: %w: %w", serr.ErrInternal, err)
		}
		patch.PasswordHash = &hash
	}
	return s.users.Update(ctx, acc.ID, patch)
}

// Delete удаляет аккаунт вместе с его объявлениями, отзывами и сессиями.
// Объявления удаляются каскадом в БД, поэтому их карточки сбрасываются из кэша отдельно.
func (s *AccountsService) Delete(ctx context.Context, p permission.Principal, id int64) error {
	if err := permission.Require(p); err != nil {
		return err
	}
	acc, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := permission.Check(p, acc.ID, permission.CanModify); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, acc.ID); err != nil {
		return err
	}
	if err := s.cache.InvalidateAuthor(ctx, acc.ID); err != nil {
		s.log.Warn("ad cache invalidate failed", zap.Int64("author_id", acc.ID), zap.Error(err))
	}
	return nil
}

// checkProfile проверяет необязательные поля профиля; nil пропускается.
func checkProfile(v *serr.ValidationError, tgID *int64, tgNick, firstName, lastName, phone, country *string) {
	if tgID != nil && *tgID < 0 {
		v.Add("tg_id", "must be >= 0")
	}
	maxLen := func(field string, s *string, n int) {
		if s != nil && utf8.RuneCountInString(*s) > n {
			v.Add(field, "too long")
		}
	}
	maxLen("tg_nick", tgNick, 50)
	maxLen("first_name", firstName, 150)
	maxLen("last_name", lastName, 150)
	maxLen("phone", phone, 35)
	maxLen("country", country, 50)

	if phone != nil && *phone != "" {
		for _, r := range strings.TrimPrefix(*phone, "+") {
			if (r < '0' || r > '9') && r != ' ' && r != '-' && r != '(' && r != ')' {
				v.Add("phone", "invalid phone")
				break
			}
		}
	}
}
