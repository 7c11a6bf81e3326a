// Package crypto содержит криптографические примитивы сервера AdHub.
//
// В частности, пакет отвечает за:
//   - генерацию и разбор JWT access-токенов;
//   - подписанный идентификатор пользователя для ссылки сброса пароля;
//   - хэширование паролей (argon2id, bcrypt);
//   - одноразовые токены (refresh, подтверждение почты, сброс пароля).
package crypto

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig описывает параметры генерации JWT access-токена.
type JWTConfig struct {
	// Issuer: значение поля iss (кто выдал токен).
	Issuer string
	// Audience: значение поля aud (для кого предназначен токен).
	Audience string
	// SigningKey: секретный ключ для подписи токена (HS256).
	SigningKey string
	// AccessTTL: срок жизни access-токена.
	AccessTTL time.Duration
}

// AccessClaims: claims access-токена. Роль носит информационный характер:
// middleware всё равно перечитывает аккаунт из БД.
type AccessClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewAccessToken создаёт и подписывает JWT access-токен для пользователя.
//
// Токен содержит стандартные RegisteredClaims (iss, aud, sub, iat, exp)
// и роль пользователя. Используется алгоритм подписи HS256.
func NewAccessToken(userID int64, role string, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  []string{cfg.Audience},
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// ParseAccessToken проверяет подпись, срок жизни, issuer и audience токена
// и возвращает ID пользователя из sub.
func ParseAccessToken(tokenStr string, cfg JWTConfig) (int64, *AccessClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &AccessClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, nil, ErrTokenExpired
		}
		return 0, nil, ErrTokenInvalid
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, nil, ErrTokenInvalid
	}
	return id, claims, nil
}
