// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/Altair788/AdHub/internal/server/crypto"
	"github.com/Altair788/AdHub/internal/server/permission"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/models"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// principalKey: ключ контекста, под которым хранится текущий пользователь.
const principalKey ctxKey = "principal"

// PrincipalLoader загружает актуальные роль и статус пользователя по ID из токена.
type PrincipalLoader interface {
	Principal(ctx context.Context, userID int64) (permission.Principal, error)
}

// JWTVerifier инкапсулирует параметры проверки JWT access-токенов.
//
// Используется в HTTP middleware для:
//   - проверки подписи токена
//   - валидации issuer и audience
//   - извлечения userID из claims.Subject
//   - загрузки роли пользователя через PrincipalLoader
type JWTVerifier struct {
	cfg    crypto.JWTConfig
	loader PrincipalLoader
}

// NewJWTVerifier создаёт новый JWTVerifier с заданными параметрами.
func NewJWTVerifier(signingKey, issuer, audience string, loader PrincipalLoader) *JWTVerifier {
	return &JWTVerifier{
		cfg:    crypto.JWTConfig{SigningKey: signingKey, Issuer: issuer, Audience: audience},
		loader: loader,
	}
}

// WithPrincipal кладёт пользователя в контекст.
func WithPrincipal(ctx context.Context, p permission.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext возвращает текущего пользователя или Anonymous.
func PrincipalFromContext(ctx context.Context) permission.Principal {
	p, ok := ctx.Value(principalKey).(permission.Principal)
	if !ok {
		return permission.Anonymous
	}
	return p
}

// UserIDFromContext извлекает userID аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - userID
//   - false, если пользователь не аутентифицирован
func UserIDFromContext(ctx context.Context) (int64, bool) {
	p := PrincipalFromContext(ctx)
	return p.ID, p.Authenticated()
}

// Authenticate: необязательная аутентификация.
//
// Middleware:
//   - без заголовка Authorization пропускает запрос как анонимный
//   - с заголовком ожидает Authorization: Bearer <token>
//   - валидирует подпись и claims токена
//   - перечитывает пользователя, чтобы роль и активность были актуальны
//
// Битый, просроченный токен или неактивный аккаунт дают 401.
func (v *JWTVerifier) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if strings.TrimSpace(header) == "" {
			next.ServeHTTP(w, r)
			return
		}

		p, status, msg := v.principal(r.Context(), header)
		if status != 0 {
			writeError(w, r, status, msg)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireAuthenticated отклоняет анонимные запросы.
// Ставится после Authenticate, когда токен уже разобран.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !PrincipalFromContext(r.Context()).Authenticated() {
			writeError(w, r, http.StatusUnauthorized, "missing bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (v *JWTVerifier) principal(ctx context.Context, header string) (permission.Principal, int, string) {
	tokenStr := ExtractBearer(header)
	if tokenStr == "" {
		return permission.Anonymous, http.StatusUnauthorized, "missing bearer token"
	}

	userID, _, err := crypto.ParseAccessToken(tokenStr, v.cfg)
	if err != nil {
		if errors.Is(err, crypto.ErrTokenExpired) {
			return permission.Anonymous, http.StatusUnauthorized, "token expired"
		}
		return permission.Anonymous, http.StatusUnauthorized, "invalid token"
	}

	p, err := v.loader.Principal(ctx, userID)
	if err != nil {
		if errors.Is(err, serr.ErrUnauthorized) {
			return permission.Anonymous, http.StatusUnauthorized, "account is not active"
		}
		return permission.Anonymous, http.StatusInternalServerError, "internal error"
	}
	return p, 0, ""
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, models.ErrorResponse{Error: msg})
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
