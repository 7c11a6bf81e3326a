package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Altair788/AdHub/internal/server/api"
	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/server/crypto"
	"github.com/Altair788/AdHub/internal/server/middleware"
	"github.com/Altair788/AdHub/internal/server/models"
	nethttp "github.com/Altair788/AdHub/internal/server/net/http"
	"github.com/Altair788/AdHub/internal/server/service"
	svcmocks "github.com/Altair788/AdHub/internal/server/service/mocks"
	shared "github.com/Altair788/AdHub/internal/shared/models"
	"github.com/Altair788/AdHub/internal/shared/logger"
)

const (
	testJWTKey      = "supersecretkeysupersecretkey123456"
	testRecoveryKey = "recoverykeyrecoverykeyrecoverykey1"
)

var argon = config.Argon2Config{Time: 1, MemoryKiB: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

// Конфиг с минимальными параметрами для сервисов
func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:     "issuer",
			Audience:   "audience",
			AccessTTL:  time.Minute,
			RefreshTTL: 24 * time.Hour,
			JWT:        config.JWTConfig{Algorithm: "HS256", SigningKey: testJWTKey},
			Sessions: config.SessionsConfig{
				RotateRefresh:      true,
				ReuseDetection:     true,
				MaxSessionsPerUser: 5,
			},
		},
		Recovery: config.RecoveryConfig{SigningKey: testRecoveryKey, PublicURL: "https://adhub.test"},
		Password: config.PasswordConfig{Hasher: "argon2id", MinLength: 8, Argon2: argon},
		Pagination: config.PaginationConfig{PageSize: 4, MaxPageSize: 4},
	}
}

// env: роутер, собранный на моках репозиториев.
type env struct {
	t       *testing.T
	router  http.Handler
	users   *svcmocks.MockUsersRepo
	sess    *svcmocks.MockSessionsRepo
	ads     *svcmocks.MockAdsRepo
	reviews *svcmocks.MockReviewsRepo
	health  *svcmocks.MockHealthRepo
	mailer  *svcmocks.MockMailer
}

// newEnv создаёт Handler с моками и конфигом через dependency injection
func newEnv(t *testing.T) *env {
	t.Helper()

	ctrl := gomock.NewController(t)
	e := &env{
		t:       t,
		users:   svcmocks.NewMockUsersRepo(ctrl),
		sess:    svcmocks.NewMockSessionsRepo(ctrl),
		ads:     svcmocks.NewMockAdsRepo(ctrl),
		reviews: svcmocks.NewMockReviewsRepo(ctrl),
		health:  svcmocks.NewMockHealthRepo(ctrl),
		mailer:  svcmocks.NewMockMailer(ctrl),
	}

	cfg := testConfig()
	log := logger.NewNop()
	svc := service.NewServices(service.Repositories{
		Users:    e.users,
		Sessions: e.sess,
		Ads:      e.ads,
		Reviews:  e.reviews,
		Health:   e.health,
	}, service.Deps{Mailer: e.mailer, Log: log}, cfg)

	verifier := middleware.NewJWTVerifier(cfg.Auth.JWT.SigningKey, cfg.Auth.Issuer, cfg.Auth.Audience, svc.Accounts)
	h := api.NewHandler(svc, log, verifier, api.Options{})
	e.router = nethttp.NewRouter(h, nethttp.Options{})
	return e
}

// as возвращает Authorization для активного пользователя с заданной ролью.
func (e *env) as(id int64, role models.Role) string {
	e.t.Helper()
	e.users.EXPECT().GetByID(gomock.Any(), id).Return(account(id, role, true), nil).AnyTimes()
	return bearer(e.t, id, role)
}

func bearer(t *testing.T, id int64, role models.Role) string {
	t.Helper()
	tok, err := crypto.NewAccessToken(id, string(role), crypto.JWTConfig{
		Issuer: "issuer", Audience: "audience", SigningKey: testJWTKey, AccessTTL: time.Minute,
	})
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *env) do(method, target, auth string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(e.t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func account(id int64, role models.Role, active bool) models.Account {
	return models.Account{
		ID:        id,
		Email:     "user@example.com",
		Role:      role,
		IsActive:  active,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	h, err := crypto.HashPassword(password, crypto.Argon2Params{
		Time: argon.Time, MemoryKiB: argon.MemoryKiB, Threads: argon.Threads, KeyLen: argon.KeyLen, SaltLen: argon.SaltLen,
	})
	require.NoError(t, err)
	return h
}
