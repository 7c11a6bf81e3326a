package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/server/crypto"
	"github.com/Altair788/AdHub/internal/server/models"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/logger"
)

// AuthService реализует регистрацию, подтверждение почты, сброс пароля
// и управление сессиями.
//
// Ответственность:
//   - регистрация пользователей и письмо с активацией
//   - аутентификация (логин)
//   - выпуск access / refresh токенов
//   - rotation refresh токенов и reuse detection
//   - сброс пароля по подписанному идентификатору и одноразовому токену
type AuthService struct {
	users    UsersRepo
	sessions SessionsRepo
	mailer   Mailer
	log      *logger.HTTPLogger

	hasher      crypto.PasswordHasher
	minPassword int
	jwt         crypto.JWTConfig

	recoveryKey string
	publicURL   string

	refreshTTL     time.Duration
	rotateRefresh  bool
	reuseDetection bool
	maxSessions    int
}

// TokenPair представляет пару access / refresh токенов.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput: данные формы регистрации.
type RegisterInput struct {
	Email     string
	Password  string
	TgID      *int64
	TgNick    string
	FirstName string
	LastName  string
	Phone     *string
	Country   string
}

// NewHasher выбирает алгоритм хэширования паролей по конфигу.
func NewHasher(cfg *config.Config) crypto.PasswordHasher {
	return crypto.NewPasswordHasher(cfg.Password.Hasher, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	}, cfg.Password.Bcrypt.Cost)
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, sessions SessionsRepo, mailer Mailer, log *logger.HTTPLogger, cfg *config.Config) *AuthService {
	if log == nil {
		log = logger.NewNop()
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		mailer:   mailer,
		log:      log,

		hasher:      NewHasher(cfg),
		minPassword: cfg.Password.MinLength,
		jwt: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			AccessTTL:  cfg.Auth.AccessTTL,
		},

		recoveryKey: cfg.Recovery.SigningKey,
		publicURL:   strings.TrimRight(cfg.Recovery.PublicURL, "/"),

		refreshTTL:     cfg.Auth.RefreshTTL,
		rotateRefresh:  cfg.Auth.Sessions.RotateRefresh,
		reuseDetection: cfg.Auth.Sessions.ReuseDetection,
		maxSessions:    cfg.Auth.Sessions.MaxSessionsPerUser,
	}
}

// Register регистрирует нового неактивного пользователя и отправляет письмо
// со ссылкой подтверждения.
//
// Ошибки:
//   - ErrInvalidInput (ValidationError) при некорректных данных
//   - ErrAlreadyExists, если email или телефон уже заняты
//   - ErrInternal, если письмо не ушло (аккаунт при этом остаётся)
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.Account, error) {
	in.Email = normalizeEmail(in.Email)

	var v serr.ValidationError
	checkEmail(&v, in.Email)
	checkPassword(&v, "password", in.Password, s.minPassword)
	checkProfile(&v, in.TgID, &in.TgNick, &in.FirstName, &in.LastName, in.Phone, &in.Country)
	if err := v.Err(); err != nil {
		return models.Account{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w: %w", serr.ErrInternal, err)
	}

	token, err := crypto.NewRecoveryToken()
	if err != nil {
		return models.Account{}, fmt.Errorf("recovery token: %w: %w", serr.ErrInternal, err)
	}
	tokenHash := crypto.HashToken(token)

	phone := in.Phone
	if phone != nil && strings.TrimSpace(*phone) == "" {
		phone = nil
	}

	acc, err := s.users.Create(ctx, models.NewAccount{
		Email:             in.Email,
		PasswordHash:      hash,
		Role:              models.RoleUser,
		RecoveryTokenHash: &tokenHash,
		TgID:              in.TgID,
		TgNick:            in.TgNick,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Phone:             phone,
		Country:           in.Country,
	})
	if err != nil {
		return models.Account{}, err
	}

	link := s.publicURL + "/users/email-confirm/" + token
	if err := s.mailer.SendActivation(ctx, acc.Email, link); err != nil {
		s.log.Error("failed to send activation email", s.log.Email(acc.Email), zap.Int64("user_id", acc.ID), zap.Error(err))
		return models.Account{}, fmt.Errorf("send activation: %w: %w", serr.ErrInternal, err)
	}

	s.log.Info("user registered", s.log.Email(acc.Email), zap.Int64("user_id", acc.ID))
	return acc, nil
}

// ConfirmEmail активирует аккаунт по токену из письма.
//
// Ошибки:
//   - ErrNotFound: токен неизвестен или уже использован
//   - ErrAlreadyConfirmed: аккаунт уже активен
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (models.Account, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Account{}, serr.ErrNotFound
	}
	hash := crypto.HashToken(token)

	acc, err := s.users.GetByRecoveryHash(ctx, hash)
	if err != nil {
		return models.Account{}, err
	}
	if acc.IsActive {
		return models.Account{}, serr.ErrAlreadyConfirmed
	}

	// при гонке второй запрос получит ErrNotFound
	acc, err = s.users.Activate(ctx, hash)
	if err != nil {
		return models.Account{}, err
	}

	s.log.Info("email confirmed", zap.Int64("user_id", acc.ID))
	return acc, nil
}

// RequestPasswordReset выпускает токен сброса и отправляет письмо со ссылкой
// {public_url}/users/password-reset-confirm/{uid}/{token}.
//
// Ошибки:
//   - ErrUnknownEmail: аккаунта с таким email нет
//   - ErrInactiveAccount: почта не подтверждена; токен не сохраняется, письмо не уходит
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	var v serr.ValidationError
	checkEmail(&v, email)
	if err := v.Err(); err != nil {
		return err
	}

	acc, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return serr.ErrUnknownEmail
		}
		return err
	}
	if !acc.IsActive {
		return serr.ErrInactiveAccount
	}

	token, err := crypto.NewRecoveryToken()
	if err != nil {
		return fmt.Errorf("recovery token: %w: %w", serr.ErrInternal, err)
	}
	if err := s.users.SetRecoveryHash(ctx, acc.ID, crypto.HashToken(token)); err != nil {
		return err
	}

	uid, err := crypto.SignIdentifier(acc.ID, s.recoveryKey)
	if err != nil {
		return fmt.Errorf("sign identifier: %w: %w", serr.ErrInternal, err)
	}

	link := s.publicURL + "/users/password-reset-confirm/" + uid + "/" + token
	if err := s.mailer.SendPasswordReset(ctx, acc.Email, link); err != nil {
		s.log.Error("failed to send password reset email", s.log.Email(acc.Email), zap.Int64("user_id", acc.ID), zap.Error(err))
		return fmt.Errorf("send password reset: %w: %w", serr.ErrInternal, err)
	}
	return nil
}

// ConfirmPasswordReset устанавливает новый пароль по ссылке из письма
// и отзывает все refresh-сессии пользователя.
//
// Подделанный uid отбрасывается до обращения к БД.
//
// Ошибки:
//   - ErrInvalidIdentifier: uid битый, подделан или указывает на несуществующий аккаунт
//   - ErrInvalidInput: новый пароль не проходит проверку
//   - ErrInactiveAccount: почта не подтверждена
//   - ErrInvalidToken: токен не совпал, уже использован или не выпускался
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error {
	userID, err := crypto.ParseIdentifier(strings.TrimSpace(uid), s.recoveryKey)
	if err != nil {
		return serr.ErrInvalidIdentifier
	}

	var v serr.ValidationError
	checkPassword(&v, "new_password", newPassword, s.minPassword)
	if err := v.Err(); err != nil {
		return err
	}

	acc, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return serr.ErrInvalidIdentifier
		}
		return err
	}
	if !acc.IsActive {
		return serr.ErrInactiveAccount
	}

	token = strings.TrimSpace(token)
	tokenHash := crypto.HashToken(token)
	if token == "" || acc.RecoveryTokenHash == nil ||
		subtle.ConstantTimeCompare([]byte(*acc.RecoveryTokenHash), []byte(tokenHash)) != 1 {
		return serr.ErrInvalidToken
	}

	passHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w: %w", serr.ErrInternal, err)
	}

	// токен гасится тем же UPDATE, поэтому повторно его не использовать
	if err := s.users.ResetPassword(ctx, acc.ID, tokenHash, passHash); err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return serr.ErrInvalidToken
		}
		return err
	}

	if err := s.sessions.RevokeAllForUser(ctx, acc.ID); err != nil {
		return err
	}

	s.log.Info("password reset", zap.Int64("user_id", acc.ID))
	return nil
}

// Login аутентифицирует пользователя и выдаёт пару токенов.
//
// Поведение:
//   - не раскрывает факт существования email
//   - неактивный аккаунт получает ErrInactiveAccount только при верном пароле
//   - при успехе создаёт refresh-сессию и обрезает лишние старые сессии
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
//   - ErrInactiveAccount
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return TokenPair{}, serr.ErrInvalidInput
	}
	// получаем юзера по email
	acc, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return TokenPair{}, serr.ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	// проверяем пароль
	ok, err := s.hasher.Verify(password, acc.PasswordHash)
	if err != nil {
		return TokenPair{}, fmt.Errorf("verify password: %w: %w", serr.ErrInternal, err)
	}
	if !ok {
		return TokenPair{}, serr.ErrInvalidCredentials
	}
	if !acc.IsActive {
		return TokenPair{}, serr.ErrInactiveAccount
	}

	return s.issue(ctx, acc, time.Now())
}

// issue выпускает access и новую refresh-сессию.
func (s *AuthService) issue(ctx context.Context, acc models.Account, now time.Time) (TokenPair, error) {
	access, err := crypto.NewAccessToken(acc.ID, string(acc.Role), s.jwt)
	if err != nil {
		return TokenPair{}, fmt.Errorf("access token: %w: %w", serr.ErrInternal, err)
	}
	refresh, err := crypto.NewRefreshToken()
	if err != nil {
		return TokenPair{}, fmt.Errorf("refresh token: %w: %w", serr.ErrInternal, err)
	}

	if _, err := s.sessions.Create(ctx, acc.ID, crypto.HashToken(refresh), now.Add(s.refreshTTL)); err != nil {
		return TokenPair{}, err
	}
	if s.maxSessions > 0 {
		if err := s.sessions.PruneForUser(ctx, acc.ID, s.maxSessions); err != nil {
			return TokenPair{}, err
		}
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh обновляет access токен по refresh токену.
//
// Поддерживает:
//   - rotation refresh токенов
//   - reuse detection (отзыв всех сессий при атаке)
//
// Роль в новом access-токене берётся из БД, удалённый или неактивный
// аккаунт получает ErrUnauthorized.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return TokenPair{}, serr.ErrInvalidInput
	}

	hash := crypto.HashToken(refreshToken)

	sess, err := s.sessions.GetByRefreshHash(ctx, hash)
	if err != nil {
		return TokenPair{}, err
	}

	now := time.Now()
	if sess.ExpiresAt.Before(now) {
		return TokenPair{}, serr.ErrUnauthorized
	}

	// если токен уже отозван: значит кто-то пытается переиспользовать
	if sess.RevokedAt != nil {
		if s.reuseDetection {
			s.log.Warn("refresh token reuse detected", zap.Int64("user_id", sess.UserID))
			if err := s.sessions.RevokeAllForUser(ctx, sess.UserID); err != nil {
				return TokenPair{}, err
			}
		}
		return TokenPair{}, serr.ErrUnauthorized
	}

	acc, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return TokenPair{}, serr.ErrUnauthorized
		}
		return TokenPair{}, err
	}
	if !acc.IsActive {
		return TokenPair{}, serr.ErrUnauthorized
	}

	access, err := crypto.NewAccessToken(acc.ID, string(acc.Role), s.jwt)
	if err != nil {
		return TokenPair{}, fmt.Errorf("access token: %w: %w", serr.ErrInternal, err)
	}

	// если rotate_refresh выключен: возвращаем только новый access, refresh тот же
	if !s.rotateRefresh {
		return TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
	}

	// rotation: выдаём новый refresh, старый отзываем
	newRefresh, err := crypto.NewRefreshToken()
	if err != nil {
		return TokenPair{}, fmt.Errorf("refresh token: %w: %w", serr.ErrInternal, err)
	}

	newID, err := s.sessions.Create(ctx, acc.ID, crypto.HashToken(newRefresh), now.Add(s.refreshTTL))
	if err != nil {
		return TokenPair{}, err
	}

	// пометить старый как revoked и связать с новым
	if err := s.sessions.RevokeAndReplace(ctx, sess.ID, newID); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: newRefresh}, nil
}

// EnsureAdmin создаёт активного администратора или повышает существующий аккаунт.
// Пароль существующего аккаунта не меняется.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (models.Account, error) {
	email = normalizeEmail(email)

	var v serr.ValidationError
	checkEmail(&v, email)
	checkPassword(&v, "password", password, s.minPassword)
	if err := v.Err(); err != nil {
		return models.Account{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w: %w", serr.ErrInternal, err)
	}
	acc, err := s.users.UpsertAdmin(ctx, email, hash)
	if err != nil {
		return models.Account{}, err
	}

	s.log.Info("admin ensured", s.log.Email(acc.Email), zap.Int64("user_id", acc.ID))
	return acc, nil
}
