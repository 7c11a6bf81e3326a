package tests

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/server/crypto"
	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/server/permission"
	"github.com/Altair788/AdHub/internal/server/service"
	"github.com/Altair788/AdHub/internal/server/service/mocks"
)

const (
	testJWTKey      = "test-jwt-signing-key-0123456789abcdef"
	testRecoveryKey = "test-recovery-signing-key-0123456789ab"
	testPublicURL   = "https://adhub.test"
)

// Тестовый конфиг
func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:     "test",
			Audience:   "test",
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
			Sessions: config.SessionsConfig{
				RotateRefresh:      true,
				ReuseDetection:     true,
				MaxSessionsPerUser: 5,
			},
			JWT: config.JWTConfig{
				SigningKey: testJWTKey,
			},
		},
		Recovery: config.RecoveryConfig{
			SigningKey: testRecoveryKey,
			PublicURL:  testPublicURL + "/",
		},
		Password: config.PasswordConfig{
			Hasher:    "argon2id",
			MinLength: 8,
			Argon2: config.Argon2Config{
				Time:      1,
				MemoryKiB: 8 * 1024,
				Threads:   1,
				KeyLen:    32,
				SaltLen:   16,
			},
		},
		Pagination: config.PaginationConfig{PageSize: 4, MaxPageSize: 4},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	cfg := testConfig()
	h, err := crypto.HashPassword(password, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	})
	if err != nil {
		t.Fatal(err)
	}
	return h
}

var (
	anon  = permission.Anonymous
	alice = permission.Principal{ID: 1, Role: models.RoleUser}
	bob   = permission.Principal{ID: 2, Role: models.RoleUser}
	admin = permission.Principal{ID: 9, Role: models.RoleAdmin}
)

type authDeps struct {
	users    *mocks.MockUsersRepo
	sessions *mocks.MockSessionsRepo
	mailer   *mocks.MockMailer
}

// создаём сервис
func newAuthService(t *testing.T) (*service.AuthService, authDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := authDeps{
		users:    mocks.NewMockUsersRepo(ctrl),
		sessions: mocks.NewMockSessionsRepo(ctrl),
		mailer:   mocks.NewMockMailer(ctrl),
	}
	return service.NewAuthService(d.users, d.sessions, d.mailer, nil, testConfig()), d
}
