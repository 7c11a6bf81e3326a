package crypto

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// identifierAudience отделяет подписанный идентификатор от access-токенов,
// даже если ключи по ошибке совпадут.
const identifierAudience = "password-reset"

// ErrInvalidIdentifier возвращается для подделанного или битого идентификатора.
var ErrInvalidIdentifier = errors.New("invalid identifier")

type identifierClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// SignIdentifier кодирует ID пользователя в компактную строку с HMAC-подписью.
//
// Содержимое читаемо (это не шифрование), подпись защищает только от подмены.
// Срока жизни у идентификатора нет: одноразовость обеспечивает токен сброса.
func SignIdentifier(userID int64, key string) (string, error) {
	claims := identifierClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience: []string{identifierAudience},
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
}

// ParseIdentifier проверяет подпись и возвращает ID пользователя.
func ParseIdentifier(s, key string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidIdentifier
	}

	claims := &identifierClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithAudience(identifierAudience),
	)
	if _, err := parser.ParseWithClaims(s, claims, func(t *jwt.Token) (any, error) {
		return []byte(key), nil
	}); err != nil {
		return 0, ErrInvalidIdentifier
	}
	if claims.UserID <= 0 {
		return 0, ErrInvalidIdentifier
	}
	return claims.UserID, nil
}
